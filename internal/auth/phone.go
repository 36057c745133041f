package auth

import "strings"

// Phone is a normalized Belarus mobile number.
type Phone struct {
	Digits    string // +375XXXXXXXXX
	Formatted string // +375 XX XXX-XX-XX
}

var belarusOperators = map[string]bool{"17": true, "25": true, "29": true, "33": true, "44": true}

// NormalizePhone accepts the national form 80XXXXXXXXX and the
// international forms with or without "+" and separators. Only the five
// mobile operator codes are accepted.
func NormalizePhone(v string) (Phone, error) {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	n := digits
	switch {
	case strings.HasPrefix(digits, "80") && len(digits) == 11:
		n = "375" + digits[2:]
	case strings.HasPrefix(digits, "375") && len(digits) == 11:
		n = "375" + digits[3:]
	}
	if len(n) != 12 || !strings.HasPrefix(n, "375") {
		return Phone{}, MsgPhoneInvalid
	}
	op := n[3:5]
	if !belarusOperators[op] {
		return Phone{}, MsgPhoneInvalid
	}
	return Phone{
		Digits:    "+" + n,
		Formatted: "+375 " + op + " " + n[5:8] + "-" + n[8:10] + "-" + n[10:],
	}, nil
}

// FormatPhone renders a stored number for display, or returns it untouched
// when it is not a 12-digit 375 number.
func FormatPhone(v string) string {
	p, err := NormalizePhone(v)
	if err != nil {
		return v
	}
	return p.Formatted
}
