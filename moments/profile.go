package moments

// Profile captures the request conventions of one provider API version.
// The two deployed API generations disagree on the query key carrying the
// account identifier and on when the development flag is merged into the
// body, so both are modeled explicitly instead of guessing a canonical form.
type Profile struct {
	Name string
	// AccountParam is the query key the account identifier is sent under.
	AccountParam string
	// DevAlways controls the development-flag merge policy: when true the
	// flag is written into the body unconditionally, when false only if the
	// caller payload does not already carry a "dev" key.
	DevAlways bool
	// DefaultBaseURL is used when the client is constructed with an empty
	// base URL.
	DefaultBaseURL string
}

var (
	// ProfileMoments targets the current Moments API generation.
	ProfileMoments = Profile{
		Name:           "moments",
		AccountParam:   "api_key",
		DevAlways:      true,
		DefaultBaseURL: "https://api.adspostx.com/native/v2/offers.json",
	}

	// ProfileNative targets the legacy native offers API.
	ProfileNative = Profile{
		Name:           "native",
		AccountParam:   "accountId",
		DevAlways:      false,
		DefaultBaseURL: "https://api.adspostx.com/native/v1/offers.json",
	}
)

// ProfileByName resolves a configured profile name. Unknown names report
// false rather than silently falling back.
func ProfileByName(name string) (Profile, bool) {
	switch name {
	case ProfileMoments.Name:
		return ProfileMoments, true
	case ProfileNative.Name:
		return ProfileNative, true
	}
	return Profile{}, false
}
