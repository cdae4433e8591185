package util

import "strings"

const phoneKeyDelimiter = "--"

// NormalizePhoneKey extracts the canonical phone key from a raw caller
// identifier. Chat platforms prefix the number with agent or channel tags
// separated by "--"; only the segment after the last delimiter is the phone.
// Inputs without the delimiter are returned unchanged. No phone-number
// syntax validation happens here.
func NormalizePhoneKey(raw string) string {
	if idx := strings.LastIndex(raw, phoneKeyDelimiter); idx >= 0 {
		return raw[idx+len(phoneKeyDelimiter):]
	}
	return raw
}

// StripPhoneNoise removes whitespace, "+" and "-" from an identifier so two
// differently formatted renderings of the same number can be compared.
func StripPhoneNoise(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '+', '-':
			return -1
		}
		return r
	}, value)
}
