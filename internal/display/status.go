package display

// StatusKind selects which field a status code came from. It decides the
// fallback when the backend sends no code.
type StatusKind int

const (
	Onboarding StatusKind = iota
	Payment
)

// Tone is the visual weight of a status badge.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneWarn    Tone = "warn"
	ToneNeutral Tone = "neutral"
)

// Badge is a rendered status.
type Badge struct {
	Code  string
	Label string
	Tone  Tone
}

var defaultLabels = map[string]string{
	"completed": "Onboarding complete",
	"paid":      "Paid",
	"trial":     "Trial",
	"pending":   "Waiting",
}

// Labeler maps status codes to display text. Unknown codes are shown as is.
type Labeler struct {
	labels map[string]string
}

// NewLabeler returns a Labeler with the built-in labels, overridden by any
// entries in overrides.
func NewLabeler(overrides map[string]string) *Labeler {
	labels := make(map[string]string, len(defaultLabels)+len(overrides))
	for k, v := range defaultLabels {
		labels[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			labels[k] = v
		}
	}
	return &Labeler{labels: labels}
}

// Badge renders a status code. An empty onboarding code counts as pending
// and an empty payment code as trial.
func (l *Labeler) Badge(kind StatusKind, code string) Badge {
	if code == "" {
		if kind == Payment {
			code = "trial"
		} else {
			code = "pending"
		}
	}

	label, ok := l.labels[code]
	if !ok {
		label = code
	}

	return Badge{Code: code, Label: label, Tone: toneOf(code)}
}

func toneOf(code string) Tone {
	switch code {
	case "completed", "paid":
		return ToneGood
	case "trial", "pending":
		return ToneWarn
	default:
		return ToneNeutral
	}
}
