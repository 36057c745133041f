package auth

import (
	"strings"
	"time"
)

// MinimumAge is the youngest age at which an account may be created.
const MinimumAge = 16

const dateLayout = "2006-01-02"

// ValidateDateOfBirth parses a YYYY-MM-DD date and requires the person to
// be at least MinimumAge years old on today's date.
func ValidateDateOfBirth(v string, today time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, MsgDOBRequired
	}
	dob, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, MsgDOBInvalid
	}
	y, m, d := today.Date()
	latest := time.Date(y-MinimumAge, m, d, 0, 0, 0, 0, time.UTC)
	if dob.After(latest) {
		return dob, MsgDOBTooYoung
	}
	return dob, nil
}
