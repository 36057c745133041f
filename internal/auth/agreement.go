package auth

import "time"

// AgreementVersion is recorded on every new account.
const AgreementVersion = "2024-10"

const scrollSlack = 8

// Agreement tracks the user agreement dialog. Acceptance stays disabled
// until the text has been scrolled to the bottom.
type Agreement struct {
	read       bool
	accepted   bool
	AcceptedAt time.Time
}

// Scrolled records a scroll position and reports whether the bottom has
// been reached, within scrollSlack pixels. Once read, it stays read.
func (a *Agreement) Scrolled(top, client, height float64) bool {
	if top+client+scrollSlack >= height {
		a.read = true
	}
	return a.read
}

func (a *Agreement) Read() bool     { return a.read }
func (a *Agreement) Accepted() bool { return a.accepted }

// Accept ticks the checkbox. It fails until the text has been read.
func (a *Agreement) Accept(now time.Time) error {
	if !a.read {
		return MsgAgreementRequired
	}
	a.accepted = true
	a.AcceptedAt = now.UTC()
	return nil
}

// Decline unticks the checkbox and reports the validation message.
func (a *Agreement) Decline() error {
	a.accepted = false
	a.AcceptedAt = time.Time{}
	return MsgAgreementRequired
}
