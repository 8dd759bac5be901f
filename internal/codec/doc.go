// Package codec classifies, decodes and re-encodes base64 query values.
//
// # Classification
//
// IsBase64Like is a heuristic, not a validator. A value qualifies when it is
// at least four characters of the standard alphabet (A-Z a-z 0-9 + /) with
// optional trailing '=' and decodes to bytes whose re-encoding matches the
// input once trailing padding is ignored. Short ordinary words that happen to
// be valid base64 ("test", "abcd") are accepted; that is expected.
//
// # Decoding
//
// Decoding uses the browser's forgiving rules so that unpadded values work.
// When the decoded text is JSON it is pretty-printed with a two-space indent
// and keys in their original order:
//
//	res, err := codec.Decode("eyJhIjoxfQ==")
//	// res.Text == "{\n  \"a\": 1\n}", res.IsJSON == true
//
// A failed decode returns *DecodeError; callers show DecodePlaceholder for
// that value and carry on with the rest.
//
// # Encoding
//
// Encode always yields padded standard base64. JSON text is compacted first
// when it still parses, and encoded verbatim when it does not.
package codec
