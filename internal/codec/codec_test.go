package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestIsBase64Like_RejectsShortValues(t *testing.T) {
	for _, v := range []string{"", "Q", "QQ", "QQ=", "abc"} {
		if IsBase64Like(v) {
			t.Fatalf("IsBase64Like(%q) = true, want false", v)
		}
	}
}

func TestIsBase64Like_RejectsOutsideAlphabet(t *testing.T) {
	for _, v := range []string{
		"aGVsbG8gd29ybGQ-",
		"aGVs_bG8=",
		"aGVs bG8=",
		"aGVsbG8%3D",
		"eyJhIjoxfQ==x",
		"=abc",
	} {
		if IsBase64Like(v) {
			t.Fatalf("IsBase64Like(%q) = true, want false", v)
		}
	}
}

func TestIsBase64Like_AcceptsValidPayloads(t *testing.T) {
	inputs := [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte(`{"a":1}`),
		[]byte("hello world"),
		{0x00, 0xff, 0x10, 0x80},
		{0xfb, 0xff},
	}
	for _, in := range inputs {
		padded := base64.StdEncoding.EncodeToString(in)
		if len(padded) >= minBase64Length && !IsBase64Like(padded) {
			t.Fatalf("IsBase64Like(%q) = false, want true", padded)
		}
		unpadded := base64.RawStdEncoding.EncodeToString(in)
		if len(unpadded) >= minBase64Length && !IsBase64Like(unpadded) {
			t.Fatalf("IsBase64Like(%q) = false, want true", unpadded)
		}
	}
}

func TestIsBase64Like_RejectsNonCanonical(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"length mod 4 is one", "hello"},
		{"non-zero trailing bits", "abcdef"},
		{"padding in the middle", "QQ==QQ=="},
		{"too much padding", "QUI==="},
		{"padding only", "===="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsBase64Like(tt.value) {
				t.Fatalf("IsBase64Like(%q) = true, want false", tt.value)
			}
		})
	}
}

func TestIsBase64Like_AcceptsCoincidentalWords(t *testing.T) {
	// Four-letter words are valid base64; the heuristic keeps them.
	if !IsBase64Like("test") {
		t.Fatalf("IsBase64Like(%q) = false, want true", "test")
	}
}

func TestDecode_PrettyPrintsJSON(t *testing.T) {
	res, err := Decode("eyJhIjoxfQ==")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !res.IsJSON {
		t.Fatalf("IsJSON = false, want true")
	}
	want := "{\n  \"a\": 1\n}"
	if res.Text != want {
		t.Fatalf("Text = %q, want %q", res.Text, want)
	}
}

func TestDecode_KeepsKeyOrder(t *testing.T) {
	value := base64.StdEncoding.EncodeToString([]byte(`{"z":1,"a":{"y":true,"b":null}}`))
	res, err := Decode(value)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	z := strings.Index(res.Text, `"z"`)
	a := strings.Index(res.Text, `"a"`)
	y := strings.Index(res.Text, `"y"`)
	b := strings.Index(res.Text, `"b"`)
	if z < 0 || z > a || a > y || y > b {
		t.Fatalf("keys reordered in %q", res.Text)
	}
	if !strings.Contains(res.Text, "\n    \"y\": true") {
		t.Fatalf("nested object not indented by four spaces: %q", res.Text)
	}
}

func TestDecode_PlainTextUnchanged(t *testing.T) {
	raw := "hello world, {not json"
	res, err := Decode(base64.StdEncoding.EncodeToString([]byte(raw)))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if res.IsJSON {
		t.Fatalf("IsJSON = true, want false")
	}
	if res.Text != raw {
		t.Fatalf("Text = %q, want %q", res.Text, raw)
	}
}

func TestDecode_UnpaddedInput(t *testing.T) {
	res, err := Decode("aGk")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if res.Text != "hi" {
		t.Fatalf("Text = %q, want %q", res.Text, "hi")
	}
}

func TestDecode_FlagsBinary(t *testing.T) {
	res, err := Decode(base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00}))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !res.Binary || res.IsJSON {
		t.Fatalf("Decode = %+v, want Binary and not JSON", res)
	}
	if res.Text != "\u00ff\u00fe\x00" {
		t.Fatalf("Text = %q, want one rune per byte", res.Text)
	}
}

func TestEncodeLatin1_RoundTripsBinary(t *testing.T) {
	value := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x41, 0x80})
	res, err := Decode(value)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	got, err := EncodeLatin1(res.Text)
	if err != nil {
		t.Fatalf("EncodeLatin1 returned error: %v", err)
	}
	if got != value {
		t.Fatalf("EncodeLatin1 = %q, want %q", got, value)
	}
}

func TestEncodeLatin1_RejectsWideRunes(t *testing.T) {
	if _, err := EncodeLatin1("caf\u00e9 \u2713"); !errors.Is(err, ErrNotLatin1) {
		t.Fatalf("EncodeLatin1 error = %v, want ErrNotLatin1", err)
	}
}

func TestDecode_MalformedReturnsDecodeError(t *testing.T) {
	for _, v := range []string{"hello", "QQ==QQ==", "ab$d"} {
		_, err := Decode(v)
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("Decode(%q) error = %v, want *DecodeError", v, err)
		}
		if !strings.Contains(err.Error(), "decode base64") {
			t.Fatalf("Decode(%q) error = %q, want it to mention decode base64", v, err.Error())
		}
	}
}

func TestEncode_PlainRoundTrip(t *testing.T) {
	for _, text := range []string{"", "a", "hello world", "ünïcødé ✓", "{a:1}", "line1\nline2"} {
		res, err := Decode(Encode(text, false))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) returned error: %v", text, err)
		}
		if !res.IsJSON && res.Text != text {
			t.Fatalf("round trip = %q, want %q", res.Text, text)
		}
	}
}

func TestEncode_JSONRoundTrip(t *testing.T) {
	values := []any{
		map[string]any{"a": float64(1)},
		map[string]any{"list": []any{float64(1), "two", nil, true}, "nested": map[string]any{"k": "v"}},
		[]any{},
		map[string]any{},
		"just a string",
		float64(42),
	}
	for _, v := range values {
		compact, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		res, err := Decode(Encode(string(compact), true))
		if err != nil {
			t.Fatalf("Decode returned error: %v", err)
		}
		var got any
		if err := json.Unmarshal([]byte(res.Text), &got); err != nil {
			t.Fatalf("decoded text %q is not JSON: %v", res.Text, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Fatalf("round trip = %#v, want %#v", got, v)
		}
	}
}

func TestEncode_CompactsPrettyJSON(t *testing.T) {
	got := Encode("{\n  \"a\": 1\n}", true)
	if got != "eyJhIjoxfQ==" {
		t.Fatalf("Encode = %q, want %q", got, "eyJhIjoxfQ==")
	}
}

func TestEncode_BrokenJSONEncodedVerbatim(t *testing.T) {
	got := Encode("{a:1}", true)
	want := base64.StdEncoding.EncodeToString([]byte("{a:1}"))
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncode_AlwaysPadded(t *testing.T) {
	if got := Encode("a", false); got != "YQ==" {
		t.Fatalf("Encode = %q, want %q", got, "YQ==")
	}
}

func TestReencode_Canonicalizes(t *testing.T) {
	got, err := Reencode("YQ")
	if err != nil {
		t.Fatalf("Reencode returned error: %v", err)
	}
	if got != "YQ==" {
		t.Fatalf("Reencode = %q, want %q", got, "YQ==")
	}
	if _, err := Reencode("hello"); err == nil {
		t.Fatalf("Reencode(hello) returned nil error")
	}
}
