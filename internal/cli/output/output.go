package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tidwall/gjson"
)

// Formats accepted by Print.
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatPlain = "plain"
	FormatMD    = "md"
	FormatQuiet = "quiet"
)

const maxCell = 60

var ErrInvalidFormat = errors.New("invalid --format value (json, table, plain, md, quiet)")

func DefaultFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

type column struct {
	header string
	paths  []string
}

// section describes how to render one well-known key of a response body.
type section struct {
	key     string
	single  bool
	id      string
	summary string
	columns []column
}

var postColumns = []column{
	{"ID", []string{"id"}},
	{"AUTHOR", []string{"author.name", "author"}},
	{"SUBMOLT", []string{"submolt.name", "submolt"}},
	{"SCORE", []string{"upvotes", "score"}},
	{"COMMENTS", []string{"comment_count"}},
	{"TITLE", []string{"title"}},
}

var agentColumns = []column{
	{"NAME", []string{"name"}},
	{"KARMA", []string{"karma"}},
	{"CLAIMED", []string{"is_claimed"}},
	{"DESCRIPTION", []string{"description"}},
}

var submoltColumns = []column{
	{"NAME", []string{"name"}},
	{"DISPLAY NAME", []string{"display_name"}},
	{"SUBSCRIBERS", []string{"subscriber_count"}},
	{"DESCRIPTION", []string{"description"}},
}

// Order matters: a search response carries several list keys at once.
var sections = []section{
	{key: "agent", single: true, id: "name", summary: "description", columns: agentColumns},
	{key: "post", single: true, id: "id", summary: "title", columns: postColumns},
	{key: "submolt", single: true, id: "name", summary: "display_name", columns: submoltColumns},
	{key: "posts", id: "id", summary: "title", columns: postColumns},
	{key: "comments", id: "id", summary: "content", columns: []column{
		{"ID", []string{"id"}},
		{"AUTHOR", []string{"author.name", "author"}},
		{"PARENT", []string{"parent_id"}},
		{"SCORE", []string{"upvotes", "score"}},
		{"CONTENT", []string{"content"}},
	}},
	{key: "submolts", id: "name", summary: "display_name", columns: submoltColumns},
	{key: "agents", id: "name", summary: "description", columns: agentColumns},
}

// Print renders a JSON response body in format. Bodies without a known
// section fall back to indented JSON.
func Print(w io.Writer, raw []byte, format string, quiet bool) error {
	if quiet {
		format = FormatQuiet
	}
	format = strings.TrimSpace(strings.ToLower(format))
	if format == "" {
		format = DefaultFormat()
	}
	if !gjson.ValidBytes(raw) {
		return errors.New("response is not valid JSON")
	}
	payload := gjson.ParseBytes(raw)

	switch format {
	case FormatJSON:
		return printJSON(w, raw)
	case FormatTable:
		return eachSection(w, raw, payload, printTable)
	case FormatPlain:
		return eachSection(w, raw, payload, printPlain)
	case FormatMD:
		return eachSection(w, raw, payload, printMarkdown)
	case FormatQuiet:
		return eachSection(w, raw, payload, printQuiet)
	default:
		return ErrInvalidFormat
	}
}

func eachSection(w io.Writer, raw []byte, payload gjson.Result, render func(io.Writer, section, []gjson.Result) error) error {
	found := false
	for _, s := range sections {
		v := payload.Get(s.key)
		if !v.Exists() || (s.single && !v.IsObject()) || (!s.single && !v.IsArray()) {
			continue
		}
		found = true
		rows := []gjson.Result{v}
		if !s.single {
			rows = v.Array()
		}
		if err := render(w, s, rows); err != nil {
			return err
		}
	}
	if !found {
		return printJSON(w, raw)
	}
	return nil
}

func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func printTable(w io.Writer, s section, rows []gjson.Result) error {
	headers := make([]string, len(s.columns))
	for i, c := range s.columns {
		headers[i] = c.header
	}
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)
	for _, row := range rows {
		cells := make([]string, len(s.columns))
		for i, c := range s.columns {
			cells[i] = truncate(field(row, c.paths...))
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func printPlain(w io.Writer, s section, rows []gjson.Result) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s %s\n", field(row, s.id), oneLine(field(row, s.summary))); err != nil {
			return err
		}
	}
	return nil
}

func printMarkdown(w io.Writer, s section, rows []gjson.Result) error {
	for _, row := range rows {
		line := fmt.Sprintf("- `%s` %s", field(row, s.id), oneLine(field(row, s.summary)))
		if author := field(row, "author.name", "author"); author != "" {
			line += " by " + author
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printQuiet(w io.Writer, s section, rows []gjson.Result) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, field(row, s.id)); err != nil {
			return err
		}
	}
	return nil
}

// field returns the first of paths present on row, as a string.
func field(row gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := row.Get(p)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.IsObject() || v.IsArray() {
			continue
		}
		return v.String()
	}
	return ""
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	s = oneLine(s)
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell-1]) + "…"
}
