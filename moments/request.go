package moments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Query and body keys of the offers request.
const (
	paramCountry      = "country"
	paramLoyaltyBoost = "loyaltyboost"
	paramCreative     = "creative"
	paramCampaignID   = "campaignId"
	bodyDevKey        = "dev"
	devFlagValue      = "1"

	// The API currently serves a single market.
	countryCode = "us"
)

// RequestParams is the caller input for one offers fetch.
type RequestParams struct {
	// AccountID is the publisher account identifier or SDK key. Required.
	AccountID string
	// LoyaltyBoost must be "0", "1" or "2" when set. Omitted from the query
	// when empty; omission is not the same as "0" on the wire.
	LoyaltyBoost string
	// Creative must be "0" or "1" when set. Omitted from the query when empty.
	Creative string
	// CampaignID restricts the response to one campaign. Optional.
	CampaignID string
	// IsDevelopment marks the request as a test fetch; the dev flag is merged
	// into the body according to the active Profile's policy.
	IsDevelopment bool
	// Payload is free-form key/value data merged into the request body. A
	// non-blank "ua" entry overrides the default User-Agent.
	Payload map[string]string
}

// RequestDescriptor is a ready-to-send description of the offers request.
// The URL carries the encoded query string; Body is the JSON-encoded merged
// payload.
type RequestDescriptor struct {
	Method string
	URL    string
	Body   []byte
	Header http.Header
}

// RequestBuilder turns RequestParams into RequestDescriptors for one
// provider profile. It holds no mutable state; Build is a pure function of
// its input plus the injected User-Agent provider.
type RequestBuilder struct {
	profile   Profile
	baseURL   string
	userAgent UserAgentProvider
}

// NewRequestBuilder creates a builder for the given profile. An empty
// baseURL falls back to the profile default.
func NewRequestBuilder(profile Profile, baseURL string, userAgent UserAgentProvider) *RequestBuilder {
	if baseURL == "" {
		baseURL = profile.DefaultBaseURL
	}
	return &RequestBuilder{
		profile:   profile,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Build validates params and produces the request descriptor. It fails with
// a ValidationError on bad input and performs no I/O.
func (b *RequestBuilder) Build(params RequestParams) (*RequestDescriptor, error) {
	if strings.TrimSpace(params.AccountID) == "" {
		return nil, &ValidationError{Message: "account id required"}
	}
	if params.LoyaltyBoost != "" && !validLoyaltyBoost(params.LoyaltyBoost) {
		return nil, &ValidationError{Message: fmt.Sprintf("loyaltyboost must be 0, 1 or 2, got %q", params.LoyaltyBoost)}
	}
	if params.Creative != "" && params.Creative != "0" && params.Creative != "1" {
		return nil, &ValidationError{Message: fmt.Sprintf("creative must be 0 or 1, got %q", params.Creative)}
	}

	body, err := json.Marshal(b.mergeBody(params))
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("encode payload: %v", err)}
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if ua := resolveUserAgent(params.Payload, b.userAgent); ua != "" {
		header.Set("User-Agent", ua)
	}

	return &RequestDescriptor{
		Method: http.MethodPost,
		URL:    b.baseURL + "?" + b.query(params),
		Body:   body,
		Header: header,
	}, nil
}

// query builds the encoded query string. Optional values are appended only
// when present: the API distinguishes an absent parameter from its default
// value, so url.Values-style sorting or default substitution would change
// semantics.
func (b *RequestBuilder) query(params RequestParams) string {
	var sb strings.Builder
	sb.WriteString(b.profile.AccountParam)
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(params.AccountID))
	sb.WriteString("&" + paramCountry + "=" + countryCode)
	if params.LoyaltyBoost != "" {
		sb.WriteString("&" + paramLoyaltyBoost + "=" + url.QueryEscape(params.LoyaltyBoost))
	}
	if params.Creative != "" {
		sb.WriteString("&" + paramCreative + "=" + url.QueryEscape(params.Creative))
	}
	if params.CampaignID != "" {
		sb.WriteString("&" + paramCampaignID + "=" + url.QueryEscape(params.CampaignID))
	}
	return sb.String()
}

// mergeBody copies the caller payload and applies the profile's dev-flag
// policy. The input map is never mutated.
func (b *RequestBuilder) mergeBody(params RequestParams) map[string]string {
	body := make(map[string]string, len(params.Payload)+1)
	for k, v := range params.Payload {
		body[k] = v
	}
	if params.IsDevelopment {
		if _, present := body[bodyDevKey]; b.profile.DevAlways || !present {
			body[bodyDevKey] = devFlagValue
		}
	}
	return body
}

func validLoyaltyBoost(v string) bool {
	return v == "0" || v == "1" || v == "2"
}
