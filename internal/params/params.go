package params

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Options is the normalized option set for a provider request.
// Values are the effective values after validation, coercion and
// defaulting, so equal option sets always canonicalize identically.
type Options map[string]string

// Has reports whether an option is present, regardless of its value
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Canonical returns a deterministic string representation of the options,
// with keys sorted, for use in cache keys
func (o Options) Canonical() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var buf strings.Builder
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(o[k])
	}

	return buf.String()
}

// PositiveInt returns the query value for key parsed as a positive integer,
// falling back to the given default for missing, invalid or non-positive values
func PositiveInt(query url.Values, key string, defaultValue int) int {
	val, err := strconv.Atoi(query.Get(key))
	if err != nil || val <= 0 {
		return defaultValue
	}

	return val
}

// Flag reports whether a query key is present.
// Presence alone enables the flag, the value is ignored.
func Flag(query url.Values, key string) bool {
	_, ok := query[key]
	return ok
}
