// Package adminclient is a typed client for the wws admin backend.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/wws/adminconsole/internal/config"
)

const (
	// RequestIDHeader carries a per-request id to the backend.
	RequestIDHeader = "X-Request-ID"

	tracerName = "github.com/wws/adminconsole/internal/adminclient"
)

// localTimestamp is ISO-8601 without a zone offset, as some backends emit.
const localTimestamp = "2006-01-02T15:04:05.999999999"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		return isTimestamp(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// isTimestamp accepts RFC 3339 with or without fractional seconds, and the
// same layout without an offset.
func isTimestamp(s string) bool {
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	_, err := time.Parse(localTimestamp, s)
	return err == nil
}

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder receives one observation per backend operation. Operations that
// never reach the backend are counted without a duration.
type Recorder interface {
	ObserveRequest(operation, outcome string, d time.Duration)
	CountRequest(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, string, time.Duration) {}
func (nopRecorder) CountRequest(string, string) {}

// Client issues admin operations against the backend named in its config.
type Client struct {
	baseURL  string
	token    string
	features config.FeatureConfig
	http     HTTPDoer
	recorder Recorder
	tracer   trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// WithRecorder reports every operation to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a client. The configuration is copied; later changes to cfg
// have no effect on the client.
func New(cfg *config.APIConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		features: cfg.Features,
		http:     http.DefaultClient,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Features returns which optional backend routes this client uses.
func (c *Client) Features() config.FeatureConfig {
	return c.features
}

// FetchAdminStats builds a stats snapshot from the KPI summary and the tenant
// list. TotalDevices is always zero: no backend route reports it.
func (c *Client) FetchAdminStats(ctx context.Context) (*AdminStats, error) {
	ctx, span := c.tracer.Start(ctx, "adminclient.FetchAdminStats")
	defer span.End()

	var (
		kpis    KPIs
		tenants []Tenant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.do(gctx, "fetch_kpis", http.MethodGet, "/api/admin/kpis", nil, &kpis); err != nil {
			return err
		}
		return validateKPIs(&kpis)
	})
	g.Go(func() error {
		if err := c.do(gctx, "fetch_tenants", http.MethodGet, "/api/admin/tenants", nil, &tenants); err != nil {
			return err
		}
		return validateTenants(tenants)
	})
	if err := g.Wait(); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if tenants == nil {
		tenants = []Tenant{}
	}

	return &AdminStats{
		TotalTenants: len(tenants),
		TotalUsers:   *kpis.Team.ActiveUsers,
		TotalDevices: 0,
		Tenants:      tenants,
	}, nil
}

// CreateTenant asks the backend to provision a tenant. The created tenant is
// not returned; callers refetch.
func (c *Client) CreateTenant(ctx context.Context, t NewTenant) error {
	ctx, span := c.tracer.Start(ctx, "adminclient.CreateTenant")
	defer span.End()

	if err := validateInput(t); err != nil {
		recordSpanError(span, err)
		return err
	}

	if err := c.do(ctx, "create_tenant", http.MethodPost, "/api/admin/tenants", t, nil); err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}

// CreateTenantUser provisions a user inside the given tenant.
func (c *Client) CreateTenantUser(ctx context.Context, tenantID int64, u NewUser) error {
	ctx, span := c.tracer.Start(ctx, "adminclient.CreateTenantUser",
		trace.WithAttributes(attribute.Int64("tenant.id", tenantID)))
	defer span.End()

	if tenantID <= 0 {
		recordSpanError(span, ErrInvalidTenantID)
		return ErrInvalidTenantID
	}
	if err := validateInput(u); err != nil {
		recordSpanError(span, err)
		return err
	}

	body := newUserRequest{NewUser: u, TenantID: tenantID}
	if err := c.do(ctx, "create_tenant_user", http.MethodPost, "/api/admin/users", body, nil); err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}

// ListActiveDevices returns the active devices of a tenant. When the backend
// has no device route it returns an empty list with OutcomeUnavailable.
func (c *Client) ListActiveDevices(ctx context.Context, tenantID int64) ([]ActiveDevice, Outcome, error) {
	const op = "list_active_devices"

	ctx, span := c.tracer.Start(ctx, "adminclient.ListActiveDevices",
		trace.WithAttributes(attribute.Int64("tenant.id", tenantID)))
	defer span.End()

	if !c.features.Devices {
		c.unavailable(span, op)
		return []ActiveDevice{}, OutcomeUnavailable, nil
	}
	if tenantID <= 0 {
		recordSpanError(span, ErrInvalidTenantID)
		return []ActiveDevice{}, OutcomeFailed, ErrInvalidTenantID
	}

	var devices []ActiveDevice
	if err := c.do(ctx, op, http.MethodGet, tenantPath(tenantID, "devices"), nil, &devices); err != nil {
		recordSpanError(span, err)
		return []ActiveDevice{}, OutcomeFailed, err
	}
	if err := validateDevices(devices); err != nil {
		recordSpanError(span, err)
		return []ActiveDevice{}, OutcomeFailed, err
	}
	if devices == nil {
		devices = []ActiveDevice{}
	}
	return devices, OutcomeApplied, nil
}

// RemoveActiveDevice signs a device out of a tenant, addressed by its device id.
func (c *Client) RemoveActiveDevice(ctx context.Context, tenantID int64, deviceID string) (Outcome, error) {
	const op = "remove_active_device"

	ctx, span := c.tracer.Start(ctx, "adminclient.RemoveActiveDevice",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.String("device.id", deviceID),
		))
	defer span.End()

	if !c.features.Devices {
		c.unavailable(span, op)
		return OutcomeUnavailable, nil
	}
	if tenantID <= 0 {
		recordSpanError(span, ErrInvalidTenantID)
		return OutcomeFailed, ErrInvalidTenantID
	}
	if deviceID == "" {
		recordSpanError(span, ErrMissingDeviceID)
		return OutcomeFailed, ErrMissingDeviceID
	}

	path := tenantPath(tenantID, "devices", deviceID)
	if err := c.do(ctx, op, http.MethodDelete, path, nil, nil); err != nil {
		recordSpanError(span, err)
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// UpdateTenantLimits replaces both quotas of a tenant. Negative limits are
// rejected whether or not the backend supports the operation.
func (c *Client) UpdateTenantLimits(ctx context.Context, tenantID int64, limits Limits) (Outcome, error) {
	const op = "update_tenant_limits"

	ctx, span := c.tracer.Start(ctx, "adminclient.UpdateTenantLimits",
		trace.WithAttributes(
			attribute.Int64("tenant.id", tenantID),
			attribute.Int("limits.max_users", limits.MaxUsers),
			attribute.Int("limits.max_devices", limits.MaxDevices),
		))
	defer span.End()

	if tenantID <= 0 {
		recordSpanError(span, ErrInvalidTenantID)
		return OutcomeFailed, ErrInvalidTenantID
	}
	if err := validateInput(limits); err != nil {
		recordSpanError(span, err)
		return OutcomeFailed, err
	}
	if !c.features.Limits {
		c.unavailable(span, op)
		return OutcomeUnavailable, nil
	}

	if err := c.do(ctx, op, http.MethodPut, tenantPath(tenantID, "limits"), limits, nil); err != nil {
		recordSpanError(span, err)
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// FetchTeamMembers returns the admin user listing as untyped records.
func (c *Client) FetchTeamMembers(ctx context.Context) ([]TeamMember, error) {
	ctx, span := c.tracer.Start(ctx, "adminclient.FetchTeamMembers")
	defer span.End()

	var members []TeamMember
	if err := c.do(ctx, "fetch_team_members", http.MethodGet, "/api/admin/users", nil, &members); err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	if members == nil {
		members = []TeamMember{}
	}
	return members, nil
}

// Ping checks that the backend answers authenticated requests. The response
// body is discarded.
func (c *Client) Ping(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "adminclient.Ping")
	defer span.End()

	if err := c.do(ctx, "ping", http.MethodGet, "/api/admin/tenants", nil, nil); err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		c.recorder.ObserveRequest(op, outcome, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			outcome = "encode_error"
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("building %s request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("reading %s response: %w", op, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		outcome = "decode_error"
		return &DecodeError{Operation: op, Err: err}
	}
	return nil
}

func (c *Client) unavailable(span trace.Span, op string) {
	span.SetAttributes(attribute.String("outcome", OutcomeUnavailable.String()))
	c.recorder.CountRequest(op, OutcomeUnavailable.String())
}

// statusText returns the reason phrase of a response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func tenantPath(tenantID int64, segments ...string) string {
	var b strings.Builder
	b.WriteString("/api/admin/tenants/")
	b.WriteString(strconv.FormatInt(tenantID, 10))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateKPIs(k *KPIs) error {
	if err := validate.Struct(k); err != nil {
		return &DecodeError{Operation: "fetch_kpis", Err: err}
	}
	return nil
}

func validateTenants(tenants []Tenant) error {
	for i := range tenants {
		if err := validate.Struct(&tenants[i]); err != nil {
			return &DecodeError{Operation: "fetch_tenants", Err: fmt.Errorf("tenant %d: %w", i, err)}
		}
	}
	return nil
}

func validateDevices(devices []ActiveDevice) error {
	for i := range devices {
		if err := validate.Struct(&devices[i]); err != nil {
			return &DecodeError{Operation: "list_active_devices", Err: fmt.Errorf("device %d: %w", i, err)}
		}
	}
	return nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
