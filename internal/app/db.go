package app

import (
	"net/url"
	"strings"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTracedQueryLen   = 512
)

// postgresDSN adds disable_prepared_binary_result=yes for poolers that cannot
// handle binary prepared results. An explicit value in raw wins.
func postgresDSN(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary || strings.Contains(raw, preparedBinaryParam+"=") {
		return raw
	}

	if !strings.Contains(raw, "://") {
		return strings.TrimSpace(raw) + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName extracts the database for span attributes from either a URL
// or a key=value DSN.
func databaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return strings.Trim(parsed.Path, "/ ")
	}

	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so multi-line SQL reads well in spans.
func traceQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) > maxTracedQueryLen {
		return normalized[:maxTracedQueryLen] + "..."
	}
	return normalized
}
