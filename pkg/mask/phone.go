package mask

import "strings"

// PhonePattern is the Brazilian mobile number layout used by the forms.
const PhonePattern = "(99) 99999-9999"

// Phone is the parsed PhonePattern.
var Phone = MustParse(PhonePattern)

// StripNonDigits removes every rune that is not an ASCII digit.
func StripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatPhone normalises keyboard or pasted input into PhonePattern.
// Punctuation is removed first so it cannot shift the digit positions.
func FormatPhone(raw string) string {
	return Phone.Apply(StripNonDigits(raw))
}

// IsCompletePhone reports whether s is a fully formatted phone number.
func IsCompletePhone(s string) bool {
	return len(s) == len(PhonePattern) && FormatPhone(s) == s
}

// FormatPhoneTyping is FormatPhone for a field being edited.
func FormatPhoneTyping(raw string) string {
	return Phone.ApplyTyping(StripNonDigits(raw))
}
