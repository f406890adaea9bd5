package tripapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/alexanderramin/itinera/internal/tripapi"

	attrOp         = "itinera.api.op"
	attrTripID     = "itinera.trip.id"
	attrDest       = "itinera.destination"
	attrErrorCode  = "error.code"
	attrHTTPMethod = "http.request.method"
	attrHTTPStatus = "http.response.status_code"
	attrURLPath    = "url.path"

	maxBodyBytes = 4 << 20
)

// Client talks to the trip persistence and content API over HTTP. It
// satisfies app.TripAPI. Calls are never retried; each one is bounded by the
// op's configured timeout.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
	tracer   trace.Tracer
}

var _ app.TripAPI = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(instrumentationName)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a Client for cfg.Endpoint.
func NewClient(cfg Config, observer Observer, opts ...Option) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		tracer:   otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether calls will reach the network.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

func (c *Client) ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error) {
	path := "/destinations"
	if popularOnly {
		path += "?popular=true"
	}
	var wire []contract.Destination
	if err := c.call(ctx, OpListDestinations, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]*domain.Destination, 0, len(wire))
	for _, d := range wire {
		out = append(out, d.ToDomain())
	}
	return out, nil
}

// FetchTravelPlans returns every tier the API holds for destination.
func (c *Client) FetchTravelPlans(ctx context.Context, destination string) (*domain.TravelPlans, error) {
	var wire contract.TravelPlansResponse
	path := "/destinations/" + url.PathEscape(strings.TrimSpace(destination)) + "/plans"
	if err := c.call(ctx, OpFetchPlans, http.MethodGet, path, nil, &wire, attribute.String(attrDest, destination)); err != nil {
		return nil, err
	}
	return wire.ToDomain(), nil
}

func (c *Client) FetchItineraryPlan(ctx context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error) {
	plans, err := c.FetchTravelPlans(ctx, destination)
	if err != nil {
		return nil, err
	}
	plan := plans.Plan(tier)
	if plan == nil {
		return nil, fmt.Errorf("%s plan for %q: %w", tier, destination, app.ErrNotFound)
	}
	return plan, nil
}

func (c *Client) RegisterTrip(ctx context.Context, params domain.TripParameters, tier domain.BudgetTier) (*app.TripRegistration, error) {
	var resp contract.CreateTripResponse
	req := contract.NewCreateTripRequest(params, tier)
	if err := c.call(ctx, OpRegisterTrip, http.MethodPost, "/trips", req, &resp, attribute.String(attrDest, params.Destination)); err != nil {
		return nil, err
	}
	if resp.TripID == "" {
		return nil, fmt.Errorf("%w: create trip response has no tripId", ErrInvalidResponse)
	}
	return &app.TripRegistration{
		TripID:     resp.TripID,
		ShareToken: resp.ShareToken,
		ShareURL:   resp.ShareURL,
	}, nil
}

// FetchProgressReport returns the trip's progress including the
// server-computed percentage.
func (c *Client) FetchProgressReport(ctx context.Context, tripID string) (*app.ProgressReport, error) {
	var resp contract.ProgressResponse
	path := "/trips/" + url.PathEscape(tripID) + "/progress"
	if err := c.call(ctx, OpFetchProgress, http.MethodGet, path, nil, &resp, attribute.String(attrTripID, tripID)); err != nil {
		return nil, err
	}
	return &app.ProgressReport{
		TripID:              resp.TripID,
		Destination:         resp.Destination,
		BudgetTier:          domain.BudgetTier(resp.SelectedBudget),
		CompletedActivities: domain.CompletionStateFromWire(resp.CompletedActivities),
		ProgressPercentage:  resp.ProgressPercentage,
	}, nil
}

func (c *Client) FetchTripProgress(ctx context.Context, tripID string) (domain.CompletionState, error) {
	report, err := c.FetchProgressReport(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return report.CompletedActivities, nil
}

func (c *Client) WriteTripProgress(ctx context.Context, tripID string, state domain.CompletionState) (*app.ProgressAck, error) {
	var resp contract.ProgressUpdateResponse
	req := contract.ProgressUpdateRequest{CompletedActivities: state.WireMap()}
	path := "/trips/" + url.PathEscape(tripID) + "/progress"
	if err := c.call(ctx, OpWriteProgress, http.MethodPut, path, req, &resp, attribute.String(attrTripID, tripID)); err != nil {
		return nil, err
	}
	return &app.ProgressAck{ProgressPercentage: resp.ProgressPercentage}, nil
}

func (c *Client) GetSharedTrip(ctx context.Context, token string) (*domain.TripRecord, error) {
	var resp contract.Trip
	if err := c.call(ctx, OpSharedTrip, http.MethodGet, "/trips/shared/"+url.PathEscape(token), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) call(ctx context.Context, op Op, method, path string, body, out any, attrs ...attribute.KeyValue) error {
	if !c.cfg.Enabled {
		return fmt.Errorf("%s: %w: %w", op, ErrDisabled, app.ErrUnavailable)
	}

	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "itinera.tripapi."+string(op), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String(attrOp, string(op)),
		attribute.String(attrHTTPMethod, method),
		attribute.String(attrURLPath, path),
	)
	span.SetAttributes(attrs...)

	timeout := time.Duration(c.cfg.OpTimeout(op)) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status, err := c.doRequest(ctx, method, path, body, out)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("%s after %s: %w: %w", op, timeout, ErrTimeout, app.ErrUnavailable)
	}

	event := CallEvent{
		Op:       op,
		Method:   method,
		Path:     path,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	}
	c.observer.ObserveCall(ctx, event)

	if status != 0 {
		span.SetAttributes(attribute.Int(attrHTTPStatus, status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(attrErrorCode, event.Code()))
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", app.ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("%w: reading response: %v", app.ErrUnavailable, err)
	}

	if err := statusError(httpResp.StatusCode, respBody); err != nil {
		return httpResp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return httpResp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return httpResp.StatusCode, nil
}

// statusError maps a non-2xx status onto the collaborator error taxonomy.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	detail := errorDetail(body)
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", app.ErrNotFound, detail)
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", app.ErrUnavailable, status, detail)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, status, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", app.ErrUnavailable, status, detail)
	}
}

func errorDetail(body []byte) string {
	var er contract.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		return "no detail"
	}
	return s
}

// IsTimeout reports whether err came from an exceeded call timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
