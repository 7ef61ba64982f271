package entries

import "strings"

// MaxDateDigits is the number of digits in a DDMMYYYY date.
const MaxDateDigits = 8

// Mask keeps the first eight digits of value and lays them out as DD/MM/YYYY,
// inserting separators only as far as the digits reach.
func Mask(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r < '0' || r > '9' {
			continue
		}
		digits.WriteRune(r)
		if digits.Len() == MaxDateDigits {
			break
		}
	}

	d := digits.String()
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}
