package auth

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmailSyntax reports whether v looks like an address.
func ValidEmailSyntax(v string) bool { return emailPattern.MatchString(v) }

// ValidateEmailSyntax trims v and checks presence and shape.
func ValidateEmailSyntax(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return v, MsgEmailRequired
	}
	if !ValidEmailSyntax(v) {
		return v, MsgEmailInvalid
	}
	return v, nil
}

// ValidateEmail runs the syntax check and then the uniqueness probe. A
// failed probe is reported as MsgEmailUnverified.
func ValidateEmail(ctx context.Context, checks *UniquenessCache, v string) (string, error) {
	v, err := ValidateEmailSyntax(v)
	if err != nil {
		return v, err
	}
	unique, err := checks.EmailUnique(ctx, v)
	if err != nil {
		logger.Warn(ctx, "email uniqueness probe failed", zap.Error(err))
		return v, MsgEmailUnverified
	}
	if !unique {
		return v, MsgEmailTaken
	}
	return v, nil
}
