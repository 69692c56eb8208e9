package moments

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

// UserAgentProvider supplies the default User-Agent for outbound requests
// when the caller payload does not override it. Device identification is
// the host platform's responsibility, so the SDK only accepts an injected
// provider rather than inventing its own string.
type UserAgentProvider interface {
	UserAgent() string
}

// StaticUserAgent is a UserAgentProvider returning a fixed string.
type StaticUserAgent string

func (s StaticUserAgent) UserAgent() string { return string(s) }

// DeviceProfile describes a parsed User-Agent string.
type DeviceProfile struct {
	DeviceType string
	OS         string
	Browser    string
	IsBot      bool
}

// DescribeUserAgent parses a raw User-Agent string into a DeviceProfile
// using the uasurfer library. The device type is used as a metric label on
// fetches; hosts may also merge the fields into the request payload.
func DescribeUserAgent(uaString string) DeviceProfile {
	u := uasurfer.Parse(uaString)

	var deviceType string
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		deviceType = "desktop"
	case uasurfer.DevicePhone:
		deviceType = "mobile"
	case uasurfer.DeviceTablet:
		deviceType = "tablet"
	default:
		deviceType = "other"
	}

	osv := u.OS.Version
	bv := u.Browser.Version

	return DeviceProfile{
		DeviceType: deviceType,
		OS:         fmt.Sprintf("%s %s %d.%d.%d", u.OS.Platform.String(), u.OS.Name.String(), osv.Major, osv.Minor, osv.Patch),
		Browser:    fmt.Sprintf("%s %d.%d.%d", u.Browser.Name.String(), bv.Major, bv.Minor, bv.Patch),
		IsBot:      u.IsBot(),
	}
}

// resolveUserAgent applies the override policy: a non-blank "ua" payload
// field wins, otherwise the injected provider's default is used.
func resolveUserAgent(payload map[string]string, provider UserAgentProvider) string {
	if ua, ok := payload["ua"]; ok && strings.TrimSpace(ua) != "" {
		return ua
	}
	if provider != nil {
		return provider.UserAgent()
	}
	return ""
}
