package bridge

import (
	"sort"
	"strings"
)

// jsEscaper neutralizes every character that could break out of a quoted
// string inside a <script> block. "</" becomes "<\/" so the literal
// sequence </script> can never close the tag early.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"</", `<\/`,
)

// RenderUserConfig renders the caller payload as a JSON object literal safe
// for embedding inside a <script> block. The host template assigns it to a
// global the vendor launcher reads, so an empty payload still renders as
// "{}" rather than being omitted. Keys are emitted in sorted order to keep
// output deterministic.
func RenderUserConfig(payload map[string]string) string {
	if len(payload) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('"')
		sb.WriteString(jsEscaper.Replace(k))
		sb.WriteString(`": "`)
		sb.WriteString(jsEscaper.Replace(payload[k]))
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String()
}
