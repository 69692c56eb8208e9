package bridge

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUserConfigEmpty(t *testing.T) {
	for _, payload := range []map[string]string{nil, {}} {
		out := RenderUserConfig(payload)
		assert.Equal(t, "{}", out)

		// the host template always assigns the literal, so it must parse
		var parsed map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &parsed))
		assert.Empty(t, parsed)
	}
}

func TestRenderUserConfigEscapesQuotes(t *testing.T) {
	out := RenderUserConfig(map[string]string{"a": `x"y`})

	assert.Equal(t, `{"a": "x\"y"}`, out)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, `x"y`, parsed["a"])
}

func TestRenderUserConfigNeutralizesScriptClose(t *testing.T) {
	out := RenderUserConfig(map[string]string{"html": `</script><script>alert(1)`})

	// the literal sequence </script> must never survive intact
	assert.NotContains(t, out, "</script>")
	assert.Contains(t, out, `<\/script>`)
}

func TestRenderUserConfigEscapesControlCharacters(t *testing.T) {
	out := RenderUserConfig(map[string]string{"v": "line1\nline2\tend\r"})

	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\t")

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "line1\nline2\tend\r", parsed["v"])
}

func TestRenderUserConfigEscapesBackslash(t *testing.T) {
	out := RenderUserConfig(map[string]string{"path": `C:\temp`})

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, `C:\temp`, parsed["path"])
}

func TestRenderUserConfigSingleQuote(t *testing.T) {
	// single quotes are escaped for templates that embed the literal in
	// single-quoted context; the result is a JS literal, not strict JSON
	out := RenderUserConfig(map[string]string{"name": "O'Brien"})
	assert.Equal(t, `{"name": "O\'Brien"}`, out)
}

func TestRenderUserConfigDeterministicOrder(t *testing.T) {
	payload := map[string]string{"zeta": "1", "alpha": "2", "mid": "3"}

	first := RenderUserConfig(payload)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RenderUserConfig(payload))
	}
	assert.True(t, strings.Index(first, "alpha") < strings.Index(first, "mid"))
	assert.True(t, strings.Index(first, "mid") < strings.Index(first, "zeta"))
}
