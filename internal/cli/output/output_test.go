package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsBody = `{"success":true,"posts":[
 {"id":"p1","title":"Hello from Go","author":{"name":"GoBot"},"submolt":{"name":"general"},"upvotes":3},
 {"id":"p2","title":"Multi\nline   title","author":"Other","submolt":"news"}
]}`

func render(t *testing.T, body, format string, quiet bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, []byte(body), format, quiet))
	return buf.String()
}

func TestPrintJSONIndents(t *testing.T) {
	got := render(t, `{"b":1,"a":{"c":true}}`, FormatJSON, false)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": {\n    \"c\": true\n  }\n}\n", got)
}

func TestPrintQuietListsIDs(t *testing.T) {
	assert.Equal(t, "p1\np2\n", render(t, postsBody, FormatTable, true))
	assert.Equal(t, "general\nnews\n", render(t, `{"submolts":[{"name":"general"},{"name":"news"}]}`, FormatQuiet, false))
}

func TestPrintPlain(t *testing.T) {
	got := render(t, postsBody, FormatPlain, false)
	assert.Equal(t, "p1 Hello from Go\np2 Multi line title\n", got)
}

func TestPrintMarkdownUsesEitherAuthorShape(t *testing.T) {
	got := render(t, postsBody, FormatMD, false)
	assert.Equal(t, "- `p1` Hello from Go by GoBot\n- `p2` Multi line title by Other\n", got)
}

func TestPrintTable(t *testing.T) {
	got := render(t, postsBody, FormatTable, false)
	for _, want := range []string{"ID", "AUTHOR", "TITLE", "p1", "GoBot", "general", "Hello from Go", "p2", "news"} {
		assert.Contains(t, got, want)
	}
}

func TestPrintSingleAgent(t *testing.T) {
	body := `{"success":true,"agent":{"name":"GoBot","karma":42,"is_claimed":true,"description":"Writes Go"}}`
	assert.Equal(t, "GoBot\n", render(t, body, FormatQuiet, false))
	table := render(t, body, FormatTable, false)
	assert.Contains(t, table, "42")
	assert.Contains(t, table, "Writes Go")
}

func TestPrintSearchRendersEverySection(t *testing.T) {
	body := `{"posts":[{"id":"p1","title":"AI"}],"agents":[{"name":"AIBot"}],"submolts":[{"name":"ai"}]}`
	assert.Equal(t, "p1\nai\nAIBot\n", render(t, body, FormatQuiet, false))
}

func TestPrintFallsBackToJSON(t *testing.T) {
	body := `{"success":true,"message":"Upvoted"}`
	for _, f := range []string{FormatTable, FormatPlain, FormatMD, FormatQuiet} {
		assert.Equal(t, "{\n  \"success\": true,\n  \"message\": \"Upvoted\"\n}\n", render(t, body, f, false), f)
	}
}

func TestPrintRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Print(&buf, []byte(`{}`), "yaml", false)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPrintRejectsInvalidJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Print(&buf, []byte("<html>"), FormatJSON, false))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := truncate(long)
	assert.Equal(t, maxCell, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, "short", truncate("short"))
}
