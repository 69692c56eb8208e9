package bridge

import (
	"html"
	"strings"
)

// Default markers a host HTML template carries. The template itself is
// opaque, host-owned text; the SDK only substitutes these markers.
const (
	UserConfigMarker  = "__MOMENTS_USER_CONFIG__"
	LauncherSrcMarker = "__MOMENTS_LAUNCHER_SRC__"
)

// InjectUserConfig replaces marker in tmpl with the rendered user-config
// object literal. The rest of the template is left byte-identical.
func InjectUserConfig(tmpl, marker string, payload map[string]string) string {
	return strings.ReplaceAll(tmpl, marker, RenderUserConfig(payload))
}

// InjectLauncherSrc replaces marker with the vendor CDN launcher URL,
// HTML-escaped for use inside a src attribute.
func InjectLauncherSrc(tmpl, marker, srcURL string) string {
	return strings.ReplaceAll(tmpl, marker, html.EscapeString(srcURL))
}

// RenderPage applies both default-marker substitutions in one pass.
func RenderPage(tmpl string, payload map[string]string, launcherURL string) string {
	out := InjectUserConfig(tmpl, UserConfigMarker, payload)
	return InjectLauncherSrc(out, LauncherSrcMarker, launcherURL)
}
