package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// DecodePlaceholder is shown in place of the decoded text when a classified
// value fails to decode.
const DecodePlaceholder = "Error decoding base64"

// minBase64Length is the shortest value the classifier will consider.
const minBase64Length = 4

var base64Shape = regexp.MustCompile(`^[A-Za-z0-9+/]*=*$`)

// prettyOptions matches a two-space indented rendering with every array
// element on its own line and keys left in document order.
var prettyOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

var (
	errBadLength  = errors.New("invalid length")
	errBadPadding = errors.New("invalid padding")
)

// ErrNotLatin1 is returned by EncodeLatin1 for text holding a rune above
// U+00FF.
var ErrNotLatin1 = errors.New("text has characters outside Latin-1")

// DecodedResult is the editor-facing rendering of a base64 payload.
type DecodedResult struct {
	Text   string
	IsJSON bool
	// Binary is set when the payload is not valid UTF-8. Text then maps
	// each byte to the rune of the same value; EncodeLatin1 reverses it.
	Binary bool
}

// DecodeError reports a payload that could not be decoded as base64.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode base64: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsBase64Like reports whether value looks like a base64 payload. The value
// must use the standard alphabet with optional trailing padding, be at least
// four characters long, and survive a decode/re-encode round trip once
// trailing padding is ignored on both sides.
func IsBase64Like(value string) bool {
	if len(value) < minBase64Length || !base64Shape.MatchString(value) {
		return false
	}
	raw, err := decodeForgiving(value)
	if err != nil {
		return false
	}
	reencoded := base64.StdEncoding.EncodeToString(raw)
	return strings.TrimRight(reencoded, "=") == strings.TrimRight(value, "=")
}

// Decode decodes value and, when the payload is JSON, pretty-prints it.
// A payload that is not JSON is returned as-is with IsJSON unset.
func Decode(value string) (DecodedResult, error) {
	raw, err := decodeForgiving(value)
	if err != nil {
		return DecodedResult{}, &DecodeError{Err: err}
	}

	if !utf8.Valid(raw) {
		return DecodedResult{Text: latin1(raw), Binary: true}, nil
	}

	result := DecodedResult{Text: string(raw)}
	if gjson.Valid(result.Text) {
		result.Text = strings.TrimSuffix(string(pretty.PrettyOptions(raw, prettyOptions)), "\n")
		result.IsJSON = true
	}
	return result, nil
}

// Encode returns the padded standard base64 encoding of text. When isJSON is
// set and text still parses as JSON it is compacted first; otherwise the
// text is encoded verbatim so a broken edit is preserved.
func Encode(text string, isJSON bool) string {
	payload := []byte(text)
	if isJSON && gjson.Valid(text) {
		payload = pretty.Ugly(payload)
	}
	return base64.StdEncoding.EncodeToString(payload)
}

// EncodeLatin1 encodes text one byte per rune, the inverse of the Text of a
// Binary DecodedResult.
func EncodeLatin1(text string) (string, error) {
	payload := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xff {
			return "", fmt.Errorf("encode %q: %w", r, ErrNotLatin1)
		}
		payload = append(payload, byte(r))
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func latin1(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw) * 2)
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// Reencode returns the canonical padded form of a base64 value.
func Reencode(value string) (string, error) {
	raw, err := decodeForgiving(value)
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// decodeForgiving follows the browser's atob rules: ASCII whitespace is
// dropped, up to two trailing '=' are removed when the length is a multiple
// of four, and non-zero trailing bits are ignored.
func decodeForgiving(value string) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, value)

	if len(s)%4 == 0 {
		s = strings.TrimSuffix(s, "=")
		s = strings.TrimSuffix(s, "=")
	}
	if len(s)%4 == 1 {
		return nil, errBadLength
	}
	if strings.Contains(s, "=") {
		return nil, errBadPadding
	}
	return base64.RawStdEncoding.DecodeString(s)
}
