package bridge

import (
	"testing"

	"github.com/adspostx/moments-go/moments"
	"github.com/adspostx/moments-go/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProtocol() (*Protocol, *observability.MockMetricsRegistry) {
	metrics := observability.NewMockMetricsRegistry()
	return NewProtocol(nil, metrics), metrics
}

func TestParseEventDismissSignals(t *testing.T) {
	p, _ := newTestProtocol()

	for _, name := range []string{EventClosedAds, EventLastAdTaken} {
		ev, err := p.ParseEvent(`{"name":"` + name + `"}`)
		require.NoError(t, err)
		assert.Equal(t, name, ev.Name)
		assert.True(t, ev.Known())
		assert.True(t, ev.Dismisses())
	}
}

func TestParseEventAdsFoundNestedString(t *testing.T) {
	p, _ := newTestProtocol()

	ev, err := p.ParseEvent(`{"name":"ads_found","payload":{"response":"{\"data\":{\"offers\":[{},{}]}}"}}`)
	require.NoError(t, err)

	assert.Equal(t, EventAdsFound, ev.Name)
	assert.Equal(t, 2, ev.OfferCount)
	require.NotNil(t, ev.Response)
	assert.Len(t, ev.Response.Data.Offers, 2)
}

func TestParseEventAdsFoundObjectResponse(t *testing.T) {
	p, _ := newTestProtocol()

	ev, err := p.ParseEvent(`{"name":"ads_found","payload":{"response":{"data":{"offers":[{"id":"a"}]}}}}`)
	require.NoError(t, err)

	assert.Equal(t, 1, ev.OfferCount)
	assert.Equal(t, "a", ev.Response.Data.Offers[0].ID)
}

func TestParseEventAdsFoundMissingResponse(t *testing.T) {
	p, _ := newTestProtocol()

	_, err := p.ParseEvent(`{"name":"ads_found","payload":{}}`)
	var derr *moments.DecodingError
	require.ErrorAs(t, err, &derr)
}

func TestParseEventURLClicked(t *testing.T) {
	p, _ := newTestProtocol()

	ev, err := p.ParseEvent(`{"name":"url_clicked","payload":{"target_url":"https://example.com/deal?id=1"}}`)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/deal?id=1", ev.TargetURL)
	assert.False(t, ev.Dismisses())
}

func TestParseEventURLClickedRejectsBadTargets(t *testing.T) {
	p, _ := newTestProtocol()

	for _, raw := range []string{
		`{"name":"url_clicked","payload":{"target_url":""}}`,
		`{"name":"url_clicked","payload":{"target_url":"/relative"}}`,
		`{"name":"url_clicked","payload":{"target_url":"javascript:alert(1)"}}`,
		`{"name":"url_clicked"}`,
	} {
		_, err := p.ParseEvent(raw)
		var derr *moments.DecodingError
		require.ErrorAs(t, err, &derr, "input: %s", raw)
	}
}

func TestParseEventUnknownNamePassesThrough(t *testing.T) {
	p, metrics := newTestProtocol()

	ev, err := p.ParseEvent(`{"name":"rewarded_unlocked","payload":{"coins":12}}`)
	require.NoError(t, err)

	assert.Equal(t, "rewarded_unlocked", ev.Name)
	assert.False(t, ev.Known())
	assert.False(t, ev.Dismisses())
	assert.JSONEq(t, `{"coins":12}`, string(ev.Payload))
	assert.Equal(t, 1, metrics.BridgeEvents["rewarded_unlocked"])
}

func TestParseEventResolvesEventField(t *testing.T) {
	p, _ := newTestProtocol()

	// some platform templates post the name under "event" instead of "name"
	ev, err := p.ParseEvent(`{"event":"closed_ads"}`)
	require.NoError(t, err)
	assert.Equal(t, EventClosedAds, ev.Name)
}

func TestParseEventMalformed(t *testing.T) {
	p, _ := newTestProtocol()

	for _, raw := range []string{"", "not json", `{"payload":{}}`} {
		_, err := p.ParseEvent(raw)
		var derr *moments.DecodingError
		require.ErrorAs(t, err, &derr, "input: %s", raw)
	}
}
