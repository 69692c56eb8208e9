// Package bridge translates between the typed offer domain and the
// stringly-typed JSON world of the embedded web runtime: it parses inbound
// named events posted by the hosted script and renders the injection-safe
// user-config literal the host template seeds the runtime with.
package bridge

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/adspostx/moments-go/moments"
	"github.com/adspostx/moments-go/observability"
	"go.uber.org/zap"
)

// Canonical event names posted by the embedded runtime. Names outside this
// set are forwarded opaquely; the vendor adds events without notice.
const (
	EventAdsFound    = "ads_found"
	EventURLClicked  = "url_clicked"
	EventClosedAds   = "closed_ads"
	EventLastAdTaken = "last_ad_taken"
)

// Event is one parsed inbound message from the web runtime.
type Event struct {
	// Name is the canonical event name. Platform templates disagree on the
	// field carrying it ("name" vs "event"); both resolve here.
	Name string
	// Payload is the raw payload value, kept for opaque pass-through.
	Payload json.RawMessage

	// Response and OfferCount are populated for ads_found events. The count
	// is the authoritative offer signal for that event.
	Response   *moments.OfferResponse
	OfferCount int

	// TargetURL is populated for url_clicked events, validated as an
	// absolute http(s) URL.
	TargetURL string
}

// Known reports whether the event name is one the SDK understands.
func (e *Event) Known() bool {
	switch e.Name {
	case EventAdsFound, EventURLClicked, EventClosedAds, EventLastAdTaken:
		return true
	}
	return false
}

// Dismisses reports whether the event signals that the offers surface
// should be torn down.
func (e *Event) Dismisses() bool {
	return e.Name == EventClosedAds || e.Name == EventLastAdTaken
}

// Protocol parses inbound bridge messages. It is stateless; the only
// stateful piece of the bridge is the per-WebView Session.
type Protocol struct {
	logger  *zap.Logger
	metrics observability.MetricsRegistry
}

// NewProtocol creates a bridge protocol parser.
func NewProtocol(logger *zap.Logger, metrics observability.MetricsRegistry) *Protocol {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Protocol{logger: logger, metrics: metrics}
}

// envelope is the wire shape of an inbound message.
type envelope struct {
	Name    string          `json:"name"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// adsFoundPayload nests the serialized API response. Some runtime versions
// post it as a JSON string, others as an object; both shapes are accepted.
type adsFoundPayload struct {
	Response json.RawMessage `json:"response"`
}

type urlClickedPayload struct {
	TargetURL string `json:"target_url"`
}

// ParseEvent parses one raw message posted by the embedded runtime. Unknown
// event names never fail: they come back as opaque events the caller may
// ignore, which keeps old SDK builds working against newer runtimes.
func (p *Protocol) ParseEvent(raw string) (*Event, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, &moments.DecodingError{Message: fmt.Sprintf("parse bridge event: %v", err)}
	}

	name := env.Name
	if name == "" {
		name = env.Event
	}
	if name == "" {
		return nil, &moments.DecodingError{Message: "bridge event has no name"}
	}

	p.metrics.IncrementBridgeEvents(name)
	ev := &Event{Name: name, Payload: env.Payload}

	switch name {
	case EventAdsFound:
		if err := p.parseAdsFound(ev); err != nil {
			return nil, err
		}
		p.logger.Debug("ads_found", zap.Int("offer_count", ev.OfferCount))

	case EventURLClicked:
		if err := parseURLClicked(ev); err != nil {
			return nil, err
		}
		p.logger.Debug("url_clicked", zap.String("target_url", ev.TargetURL))

	case EventClosedAds, EventLastAdTaken:
		// dismiss signals carry no payload fields

	default:
		p.logger.Debug("opaque bridge event", zap.String("name", name))
	}

	return ev, nil
}

func (p *Protocol) parseAdsFound(ev *Event) error {
	var payload adsFoundPayload
	if len(ev.Payload) > 0 {
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return &moments.DecodingError{Message: fmt.Sprintf("parse ads_found payload: %v", err)}
		}
	}
	if len(payload.Response) == 0 {
		return &moments.DecodingError{Message: "ads_found payload has no response"}
	}

	responseJSON := payload.Response
	if responseJSON[0] == '"' {
		var encoded string
		if err := json.Unmarshal(responseJSON, &encoded); err != nil {
			return &moments.DecodingError{Message: fmt.Sprintf("parse ads_found response string: %v", err)}
		}
		responseJSON = json.RawMessage(encoded)
	}

	var resp moments.OfferResponse
	if err := json.Unmarshal(responseJSON, &resp); err != nil {
		return &moments.DecodingError{Message: fmt.Sprintf("parse ads_found response: %v", err)}
	}

	ev.Response = &resp
	if resp.Data != nil {
		ev.OfferCount = len(resp.Data.Offers)
	}
	return nil
}

func parseURLClicked(ev *Event) error {
	var payload urlClickedPayload
	if len(ev.Payload) > 0 {
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return &moments.DecodingError{Message: fmt.Sprintf("parse url_clicked payload: %v", err)}
		}
	}
	u, err := url.Parse(payload.TargetURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &moments.DecodingError{Message: fmt.Sprintf("url_clicked target %q is not an absolute http(s) url", payload.TargetURL)}
	}
	ev.TargetURL = payload.TargetURL
	return nil
}
