// Package query extracts query parameters from a URL in document order and
// rewrites a single parameter without disturbing the others.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/five82/paramlens/internal/codec"
)

// ErrEmptyKey is returned when an update targets an empty parameter name.
var ErrEmptyKey = errors.New("parameter key is empty")

// Parameter is a single key/value pair from a URL query string.
type Parameter struct {
	Key   string // URL-decoded, never empty
	Value string // URL-decoded, '+' read as a space
	Raw   string // segment as it appears in the URL
}

// Target is a parsed URL together with its ordered query parameters.
type Target struct {
	URL    *url.URL
	Params []Parameter
}

// Parse parses rawURL and returns its query parameters in order.
func Parse(rawURL string) (Target, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Target{}, fmt.Errorf("parse url: empty url")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Target{}, fmt.Errorf("parse url: %w", err)
	}
	return Target{URL: u, Params: ParseRawQuery(u.RawQuery)}, nil
}

// ParseRawQuery splits an encoded query string on '&' and decodes each
// segment. Segments with an empty key are skipped.
func ParseRawQuery(rawQuery string) []Parameter {
	var params []Parameter
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key := unescape(rawKey)
		if key == "" {
			continue
		}
		params = append(params, Parameter{
			Key:   key,
			Value: unescape(rawValue),
			Raw:   segment,
		})
	}
	return params
}

// Classify keeps the parameters whose value looks like base64.
func Classify(params []Parameter) []Parameter {
	return lo.Filter(params, func(p Parameter, _ int) bool {
		return codec.IsBase64Like(p.Value)
	})
}

// ApplyUpdate returns originalURL with the parameter named key set to
// newValue. The first matching segment keeps its position and raw key
// spelling, later duplicates are dropped, and every other segment is left
// byte-for-byte alone. A missing key is appended.
func ApplyUpdate(originalURL, key, newValue string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	u, err := url.Parse(strings.TrimSpace(originalURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	escaped := url.QueryEscape(newValue)
	var (
		segments []string
		replaced bool
	)
	if u.RawQuery != "" {
		segments = strings.Split(u.RawQuery, "&")
	}

	out := make([]string, 0, len(segments)+1)
	for _, segment := range segments {
		rawKey, _, _ := strings.Cut(segment, "=")
		if segment == "" || unescape(rawKey) != key {
			out = append(out, segment)
			continue
		}
		if replaced {
			continue
		}
		out = append(out, rawKey+"="+escaped)
		replaced = true
	}
	if !replaced {
		out = append(out, url.QueryEscape(key)+"="+escaped)
	}

	u.RawQuery = strings.Join(out, "&")
	u.ForceQuery = false
	return u.String(), nil
}

// Lookup returns the first parameter named key.
func (t Target) Lookup(key string) (Parameter, bool) {
	return lo.Find(t.Params, func(p Parameter) bool {
		return p.Key == key
	})
}

// unescape decodes a query component, leaving it raw when it holds a
// malformed escape.
func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
