package moments

import "encoding/json"

// OfferResponse is the top-level payload returned by the offers endpoint.
// Exactly one of Data and Error is meaningful: the API reports failures
// in-band through the error field rather than with an HTTP status.
type OfferResponse struct {
	Data  *OfferData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// HasOffers reports whether the response carries at least one offer.
func (r *OfferResponse) HasOffers() bool {
	return r != nil && r.Data != nil && len(r.Data.Offers) > 0
}

// OfferData holds the offer list and the presentation styles blob.
// Offer order is display order and must be preserved.
type OfferData struct {
	Offers []Offer `json:"offers"`
	// Styles carries server-controlled presentation hints. The SDK never
	// interprets them; they are handed verbatim to the rendering layer.
	Styles json.RawMessage `json:"styles,omitempty"`
}

// Offer is a single promotional item. Offers are immutable after decoding:
// the rendering layer reads them and passes beacon URLs back into
// Client.FireBeacon, nothing in the SDK mutates one.
//
// Every field except ID is optional on the wire; absent fields decode to
// their zero value.
type Offer struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	ClickURL    string       `json:"click_url,omitempty"`
	CTAYes      string       `json:"cta_yes,omitempty"`
	CTANo       string       `json:"cta_no,omitempty"`
	Pixel       string       `json:"pixel,omitempty"`
	AdvPixelURL string       `json:"adv_pixel_url,omitempty"`
	Beacons     OfferBeacons `json:"beacons,omitempty"`
}

// OfferBeacons groups the per-interaction tracking URLs of an offer.
type OfferBeacons struct {
	Close         string `json:"close,omitempty"`
	NoThanksClick string `json:"no_thanks_click,omitempty"`
}

// BeaconKind names a tracking interaction. Used only as a label; the wire
// request is always a bare GET to the beacon URL.
type BeaconKind string

const (
	BeaconDisplay  BeaconKind = "display"
	BeaconAdvMeta  BeaconKind = "adv_pixel"
	BeaconClose    BeaconKind = "close"
	BeaconNoThanks BeaconKind = "no_thanks"
)

// BeaconURLs returns the non-empty tracking URLs of the offer keyed by
// interaction, so hosts can fire the right one per user action.
func (o *Offer) BeaconURLs() map[BeaconKind]string {
	urls := make(map[BeaconKind]string, 4)
	if o.Pixel != "" {
		urls[BeaconDisplay] = o.Pixel
	}
	if o.AdvPixelURL != "" {
		urls[BeaconAdvMeta] = o.AdvPixelURL
	}
	if o.Beacons.Close != "" {
		urls[BeaconClose] = o.Beacons.Close
	}
	if o.Beacons.NoThanksClick != "" {
		urls[BeaconNoThanks] = o.Beacons.NoThanksClick
	}
	return urls
}
