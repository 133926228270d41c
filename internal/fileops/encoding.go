package fileops

import "unicode/utf8"

// decode interprets file bytes as text. UTF-8 is tried first; invalid input
// falls back to a byte-preserving Latin-1 interpretation so no readable file
// is rejected solely for encoding reasons.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return decodeLatin1(data)
}

// decodeLatin1 maps every byte to the rune with the same value. The mapping
// is total, so decoding can never fail.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
