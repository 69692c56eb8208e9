package moments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adspostx/moments-go/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("moments/client")

// Metric outcome labels shared by fetches and beacons.
const (
	outcomeSuccess         = "success"
	outcomeValidationError = "validation_error"
	outcomeServerError     = "server_error"
	outcomeDecodingError   = "decoding_error"
	outcomeNetworkError    = "network_error"
	outcomeInvalidURL      = "invalid_url"
)

// defaultBeaconTimeout bounds tracking requests. Beacons are best-effort,
// so they get a much shorter budget than content fetches.
const defaultBeaconTimeout = 3 * time.Second

// Client fetches offers from the provider API and fires tracking beacons.
// It holds no per-request mutable state; concurrent calls are independent.
type Client struct {
	profile      Profile
	builder      *RequestBuilder
	httpClient   *http.Client
	beaconClient *http.Client
	logger       *zap.Logger
	metrics      observability.MetricsRegistry
}

// NewClient creates an offers client. A zero timeout leaves the content
// client on the transport default; a zero beaconTimeout falls back to
// defaultBeaconTimeout. baseURL may be empty to use the profile default.
func NewClient(profile Profile, baseURL string, userAgent UserAgentProvider, timeout, beaconTimeout time.Duration, logger *zap.Logger, metrics observability.MetricsRegistry) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	if beaconTimeout <= 0 {
		beaconTimeout = defaultBeaconTimeout
	}
	return &Client{
		profile: profile,
		builder: NewRequestBuilder(profile, baseURL, userAgent),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		beaconClient: &http.Client{
			Timeout:   beaconTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchOffers builds and issues the offers request, then decodes the
// response. Validation failures surface immediately without network I/O.
// An empty offer list is not an error at this layer; callers decide whether
// "no offers" is exceptional. The call is idempotent and safe to retry.
func (c *Client) FetchOffers(ctx context.Context, params RequestParams) (*OfferResponse, error) {
	ctx, span := tracer.Start(ctx, "FetchOffers",
		trace.WithAttributes(attribute.String("moments.profile", c.profile.Name)))
	defer span.End()

	requestID := uuid.New().String()
	logger := c.logger.With(zap.String("request_id", requestID))

	desc, err := c.builder.Build(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid params")
		logger.Warn("offers request rejected", zap.Error(err))
		c.metrics.IncrementFetches(c.profile.Name, outcomeValidationError)
		return nil, err
	}

	start := time.Now()
	outcome := outcomeSuccess
	defer func() {
		c.metrics.RecordFetchLatency(c.profile.Name, time.Since(start))
		c.metrics.IncrementFetches(c.profile.Name, outcome)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, bytes.NewReader(desc.Body))
	if err != nil {
		outcome = outcomeValidationError
		span.RecordError(err)
		span.SetStatus(codes.Error, "create request")
		return nil, &ValidationError{Message: fmt.Sprintf("create request: %v", err)}
	}
	for k, vs := range desc.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		outcome = outcomeNetworkError
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		logger.Warn("offers request failed", zap.Error(err))
		return nil, &NetworkError{Message: fmt.Sprintf("offers request: %v", err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = outcomeNetworkError
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, &NetworkError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		outcome = outcomeServerError
		span.SetStatus(codes.Error, "non-2xx response")
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		logger.Warn("offers endpoint error",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)))
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var offers OfferResponse
	if err := json.Unmarshal(body, &offers); err != nil {
		outcome = outcomeDecodingError
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		logger.Warn("offers response undecodable", zap.Error(err))
		return nil, &DecodingError{Message: fmt.Sprintf("decode offers response: %v", err)}
	}

	count := 0
	if offers.Data != nil {
		count = len(offers.Data.Offers)
	}
	c.metrics.RecordOfferCount(count)
	if count == 0 {
		c.metrics.IncrementNoOffers()
	}
	span.SetAttributes(attribute.Int("moments.offer_count", count))
	logger.Debug("offers fetched",
		zap.Int("offer_count", count),
		zap.Duration("elapsed", time.Since(start)))

	return &offers, nil
}

// FireBeacon issues a best-effort tracking GET. Failures are logged and
// counted but never returned: beacon delivery must not degrade the offer
// display flow. The call still waits for the request to finish so transport
// errors can be observed; callers wanting fire-and-forget semantics run it
// in their own goroutine.
func (c *Client) FireBeacon(ctx context.Context, rawURL string) {
	ctx, span := tracer.Start(ctx, "FireBeacon")
	defer span.End()

	if !validBeaconURL(rawURL) {
		span.SetStatus(codes.Error, "invalid beacon url")
		c.logger.Warn("beacon skipped, invalid url", zap.String("url", rawURL))
		c.metrics.IncrementBeacons(outcomeInvalidURL)
		return
	}

	start := time.Now()
	defer func() {
		c.metrics.RecordBeaconLatency(time.Since(start))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		span.RecordError(err)
		c.logger.Warn("beacon request rejected", zap.String("url", rawURL), zap.Error(err))
		c.metrics.IncrementBeacons(outcomeInvalidURL)
		return
	}
	if ua := resolveUserAgent(nil, c.builder.userAgent); ua != "" {
		httpReq.Header.Set("User-Agent", ua)
	}

	resp, err := c.beaconClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Warn("beacon delivery failed", zap.String("url", rawURL), zap.Error(err))
		c.metrics.IncrementBeacons(outcomeNetworkError)
		return
	}
	defer func() {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close beacon body", zap.Error(err))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		c.logger.Warn("beacon rejected",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		c.metrics.IncrementBeacons(outcomeServerError)
		return
	}

	c.metrics.IncrementBeacons(outcomeSuccess)
	c.logger.Debug("beacon delivered", zap.String("url", rawURL))
}

// FireOfferBeacon fires the beacon of one interaction kind for an offer,
// when the offer carries a URL for it.
func (c *Client) FireOfferBeacon(ctx context.Context, offer *Offer, kind BeaconKind) {
	if offer == nil {
		return
	}
	if u, ok := offer.BeaconURLs()[kind]; ok {
		c.FireBeacon(ctx, u)
	}
}

// validBeaconURL requires a fully-qualified http(s) URL; beacon URLs arrive
// verbatim from offer fields and may be blank.
func validBeaconURL(rawURL string) bool {
	if strings.TrimSpace(rawURL) == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
