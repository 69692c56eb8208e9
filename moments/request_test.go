package moments

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildValidation(t *testing.T) {
	b := NewRequestBuilder(ProfileMoments, "", StaticUserAgent("test-ua"))

	tests := []struct {
		name   string
		params RequestParams
		errMsg string
	}{
		{
			name:   "missing account id",
			params: RequestParams{},
			errMsg: "account id required",
		},
		{
			name:   "blank account id",
			params: RequestParams{AccountID: "   "},
			errMsg: "account id required",
		},
		{
			name:   "bad loyaltyboost",
			params: RequestParams{AccountID: "abc", LoyaltyBoost: "3"},
			errMsg: "loyaltyboost",
		},
		{
			name:   "bad loyaltyboost non numeric",
			params: RequestParams{AccountID: "abc", LoyaltyBoost: "high"},
			errMsg: "loyaltyboost",
		},
		{
			name:   "bad creative",
			params: RequestParams{AccountID: "abc", Creative: "2"},
			errMsg: "creative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := b.Build(tt.params)
			require.Error(t, err)
			assert.Nil(t, desc)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.errMsg)
			assert.Equal(t, ValidationErrorCode, verr.Code())
		})
	}
}

func TestBuildQueryParams(t *testing.T) {
	b := NewRequestBuilder(ProfileMoments, "https://example.com/offers", StaticUserAgent("test-ua"))

	desc, err := b.Build(RequestParams{
		AccountID:    "abc123",
		LoyaltyBoost: "1",
		Creative:     "0",
		CampaignID:   "camp-9",
	})
	require.NoError(t, err)

	u, err := url.Parse(desc.URL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "abc123", q.Get("api_key"))
	assert.Equal(t, "us", q.Get("country"))
	assert.Equal(t, "1", q.Get("loyaltyboost"))
	assert.Equal(t, "0", q.Get("creative"))
	assert.Equal(t, "camp-9", q.Get("campaignId"))
}

func TestBuildOmitsUnsetParams(t *testing.T) {
	b := NewRequestBuilder(ProfileMoments, "https://example.com/offers", StaticUserAgent("test-ua"))

	desc, err := b.Build(RequestParams{AccountID: "abc123"})
	require.NoError(t, err)

	// Absent parameters must be omitted, not sent with default values.
	assert.NotContains(t, desc.URL, "loyaltyboost")
	assert.NotContains(t, desc.URL, "creative")
	assert.NotContains(t, desc.URL, "campaignId")
	assert.Contains(t, desc.URL, "api_key=abc123")
	assert.Contains(t, desc.URL, "country=us")
}

func TestBuildAccountParamPerProfile(t *testing.T) {
	params := RequestParams{AccountID: "abc123"}

	descMoments, err := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil).Build(params)
	require.NoError(t, err)
	descNative, err := NewRequestBuilder(ProfileNative, "https://example.com/o", nil).Build(params)
	require.NoError(t, err)

	assert.Contains(t, descMoments.URL, "api_key=abc123")
	assert.NotContains(t, descMoments.URL, "accountId=")
	assert.Contains(t, descNative.URL, "accountId=abc123")
	assert.NotContains(t, descNative.URL, "api_key=")
}

func TestBuildDevFlagPolicy(t *testing.T) {
	decodeBody := func(t *testing.T, desc *RequestDescriptor) map[string]string {
		t.Helper()
		var body map[string]string
		require.NoError(t, json.Unmarshal(desc.Body, &body))
		return body
	}

	t.Run("moments profile always overwrites", func(t *testing.T) {
		b := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil)
		desc, err := b.Build(RequestParams{
			AccountID:     "abc",
			IsDevelopment: true,
			Payload:       map[string]string{"dev": "0"},
		})
		require.NoError(t, err)
		assert.Equal(t, "1", decodeBody(t, desc)["dev"])
	})

	t.Run("native profile keeps caller value", func(t *testing.T) {
		b := NewRequestBuilder(ProfileNative, "https://example.com/o", nil)
		desc, err := b.Build(RequestParams{
			AccountID:     "abc",
			IsDevelopment: true,
			Payload:       map[string]string{"dev": "0"},
		})
		require.NoError(t, err)
		assert.Equal(t, "0", decodeBody(t, desc)["dev"])
	})

	t.Run("no dev flag without development", func(t *testing.T) {
		b := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil)
		desc, err := b.Build(RequestParams{AccountID: "abc"})
		require.NoError(t, err)
		_, present := decodeBody(t, desc)["dev"]
		assert.False(t, present)
	})

	t.Run("development with empty payload", func(t *testing.T) {
		b := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil)
		desc, err := b.Build(RequestParams{AccountID: "abc", IsDevelopment: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"dev":"1"}`, string(desc.Body))
	})
}

func TestBuildDoesNotMutatePayload(t *testing.T) {
	payload := map[string]string{"adpx_fp": "fp-1"}
	b := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil)

	_, err := b.Build(RequestParams{AccountID: "abc", IsDevelopment: true, Payload: payload})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"adpx_fp": "fp-1"}, payload)
}

func TestBuildUserAgentResolution(t *testing.T) {
	b := NewRequestBuilder(ProfileMoments, "https://example.com/o", StaticUserAgent("default-ua"))

	t.Run("payload ua wins", func(t *testing.T) {
		desc, err := b.Build(RequestParams{
			AccountID: "abc",
			Payload:   map[string]string{"ua": "CustomAgent/2.0"},
		})
		require.NoError(t, err)
		assert.Equal(t, "CustomAgent/2.0", desc.Header.Get("User-Agent"))
	})

	t.Run("blank payload ua falls back", func(t *testing.T) {
		desc, err := b.Build(RequestParams{
			AccountID: "abc",
			Payload:   map[string]string{"ua": "   "},
		})
		require.NoError(t, err)
		assert.Equal(t, "default-ua", desc.Header.Get("User-Agent"))
	})

	t.Run("no provider no header", func(t *testing.T) {
		noUA := NewRequestBuilder(ProfileMoments, "https://example.com/o", nil)
		desc, err := noUA.Build(RequestParams{AccountID: "abc"})
		require.NoError(t, err)
		assert.Empty(t, desc.Header.Get("User-Agent"))
	})
}

func TestBuildDefaultsToProfileBaseURL(t *testing.T) {
	b := NewRequestBuilder(ProfileMoments, "", nil)
	desc, err := b.Build(RequestParams{AccountID: "abc"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(desc.URL, ProfileMoments.DefaultBaseURL+"?"))
}

func TestDescribeUserAgent(t *testing.T) {
	const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	profile := DescribeUserAgent(iphoneUA)
	assert.Equal(t, "mobile", profile.DeviceType)
	assert.False(t, profile.IsBot)
	assert.Contains(t, profile.OS, "iOS")
}
