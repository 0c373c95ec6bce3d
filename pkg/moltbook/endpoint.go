package moltbook

import (
	"net/url"
	"strconv"
	"strings"
)

// Listing defaults applied when an option is left at its zero value.
const (
	DefaultSort        = "hot"
	DefaultCommentSort = "top"
	DefaultLimit       = 25
)

// path joins escaped segments with "/".
func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// query builds a query string whose keys keep insertion order, which the
// service's documented URLs rely on. url.Values would sort them.
type query struct {
	keys   []string
	values []string
}

func (q *query) set(key, value string) *query {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
	return q
}

// setIf adds key only for a non-empty value, so omission never reaches the wire.
func (q *query) setIf(key, value string) *query {
	if value == "" {
		return q
	}
	return q.set(key, value)
}

func (q *query) on(p string) string {
	if len(q.keys) == 0 {
		return p
	}
	var b strings.Builder
	b.WriteString(p)
	for i, k := range q.keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func limitOrDefault(n int) string {
	if n <= 0 {
		n = DefaultLimit
	}
	return strconv.Itoa(n)
}
