package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

func TestFormat_BasicScenario(t *testing.T) {
	input := "See [here][1] and [there](http://y.com)\n" +
		"[1]: http://x.com\n"

	out, diags, err := NewFormatter().Format(input)

	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t,
		"See [here][1] and [there][2]\n"+
			"[1]: http://x.com\n"+
			"[2]: http://y.com\n",
		out)
}

func TestFormat_RoundTripWithoutLinks(t *testing.T) {
	input := "# Title\n" +
		"\n" +
		"{{< tabs >}}\n" +
		"{{% tab \"A\" %}}\n" +
		"plain text\n" +
		"{{% /tab %}}\n" +
		"{{< /tabs >}}\n" +
		"closing words\n"

	out, diags, err := NewFormatter().Format(input)

	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, input, out)
}

func TestFormat_ScopeIsolation(t *testing.T) {
	input := "{{< tabs >}}\n" +
		"{{% tab \"A\" %}}\n" +
		"See [docs][1].\n" +
		"[1]: http://a.com\n" +
		"{{% /tab %}}\n" +
		"{{% tab \"B\" %}}\n" +
		"See [docs][4].\n" +
		"[4]: http://b.com\n" +
		"{{% /tab %}}\n" +
		"{{< /tabs >}}\n"

	out, diags, err := NewFormatter().Format(input)

	require.NoError(t, err)
	assert.Empty(t, diags)

	// Each tab resolves and renumbers against its own definitions only:
	// tab B's sparse index collapses to 1 without touching tab A.
	assert.Equal(t,
		"{{< tabs >}}\n"+
			"{{% tab \"A\" %}}\n"+
			"See [docs][1].\n"+
			"[1]: http://a.com\n"+
			"{{% /tab %}}\n"+
			"{{% tab \"B\" %}}\n"+
			"See [docs][1].\n"+
			"[1]: http://b.com\n"+
			"{{% /tab %}}\n"+
			"{{< /tabs >}}\n",
		out)
}

func TestFormat_SiblingDefinitionDoesNotResolve(t *testing.T) {
	input := "{{% tab \"A\" %}}\n" +
		"[a][1]\n" +
		"{{% /tab %}}\n" +
		"{{% tab \"B\" %}}\n" +
		"[b][1]\n" +
		"[1]: http://b.com\n" +
		"{{% /tab %}}\n"

	out, diags, err := NewFormatter().Format(input)

	require.NoError(t, err)

	// Tab A's reference is an orphan; tab B's resolves normally.
	require.Len(t, diags, 1)
	assert.Equal(t, m.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "tab", diags[0].Scope)

	assert.Contains(t, out, "[a][1]\n")
	assert.Contains(t, out, "[b][1]\n[1]: http://b.com\n")
}

func TestFormat_DuplicateIndexAbortsDocument(t *testing.T) {
	input := "[x][1]\n" +
		"[1]: http://a\n" +
		"[1]: http://b\n"

	out, _, err := NewFormatter().Format(input)

	var dup *DuplicateRefError

	require.ErrorAs(t, err, &dup)
	assert.Empty(t, out)
}

func TestFormat_InlineScope(t *testing.T) {
	input := "# Title\n" +
		"Intro {{< note >}}see [x](http://n.com){{< /note >}} outro\n"

	out, _, err := NewFormatter().Format(input)

	require.NoError(t, err)

	// The link inside the region is rewritten between the recorded column
	// bounds; the definition block lands inside the region output, and the
	// rest of the shared line survives untouched.
	assert.Equal(t,
		"# Title\n"+
			"Intro [1]: http://n.com\n"+
			"{{< note >}}see [x][1]{{< /note >}} outro\n",
		out)
}

func TestFormat_CodeBlockUntouched(t *testing.T) {
	input := "Read [guide](http://g.com).\n" +
		"{{< code-block lang=\"go\" >}}\n" +
		"a := \"[link](http://not-a-link.com)\"\n" +
		"{{< /code-block >}}\n"

	out, _, err := NewFormatter().Format(input)

	require.NoError(t, err)
	assert.Contains(t, out, "a := \"[link](http://not-a-link.com)\"\n")
	assert.Contains(t, out, "Read [guide][1].\n")
	assert.Contains(t, out, "[1]: http://g.com\n")
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := map[string]string{
		"basic": "See [here][1] and [there](http://y.com)\n" +
			"[1]: http://x.com\n",
		"tabs": "{{< tabs >}}\n" +
			"{{% tab \"A\" %}}\n" +
			"See [docs][2] and [more](http://m.com).\n" +
			"[2]: http://a.com\n" +
			"{{% /tab %}}\n" +
			"{{< /tabs >}}\n",
		"sparse": "See [a][3].\n" +
			"\n" +
			"[3]: http://a.com\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			formatter := NewFormatter()

			once, _, err := formatter.Format(input)
			require.NoError(t, err)

			twice, _, err := formatter.Format(once)
			require.NoError(t, err)

			assert.Equal(t, once, twice)
		})
	}
}

func TestFormat_GuideFixture(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "guide.md"))
	require.NoError(t, err)

	formatter := NewFormatter()

	out, diags, err := formatter.Format(string(raw))
	require.NoError(t, err)
	assert.Empty(t, diags)

	// Footnote indices become contiguous per scope and definitions move
	// into a trailing block per scope.
	assert.Contains(t, out, "[agent docs][1]")
	assert.Contains(t, out, "[trace docs][2]")

	// Fixed point after one pass.
	again, _, err := formatter.Format(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}
