package model

import (
    "strings"
    "time"
)

// Role is the authorization role stored on a user record.
type Role string

const (
    RoleCustomer      Role = "customer"
    RoleAdministrator Role = "administrator"
)

// IsAdmin compares case-insensitively; older records carry "Administrator".
func (r Role) IsAdmin() bool {
    return strings.EqualFold(strings.TrimSpace(string(r)), string(RoleAdministrator))
}

// PasswordStrategy records whether the user typed or generated the password.
type PasswordStrategy string

const (
    PasswordManual PasswordStrategy = "manual"
    PasswordAuto   PasswordStrategy = "auto"
)

// User is an account record from the users collection.
//
// Fields:
//  Phone          – canonical "+375XXXXXXXXX".
//  PhoneFormatted – "+375 XX XXX-XX-XX".
//  EmailLower     – lowercase copy used by uniqueness lookups.
//  NicknameLower  – lowercase copy used by uniqueness lookups.
//  DateOfBirth    – "YYYY-MM-DD".
//  PasswordHash   – bcrypt hash; never present on the session copy.
type User struct {
    ID                  ID               `json:"id,omitempty"`
    FirstName           string           `json:"firstName"`
    LastName            string           `json:"lastName"`
    MiddleName          string           `json:"middleName,omitempty"`
    FullName            string           `json:"fullName"`
    Phone               string           `json:"phone"`
    PhoneFormatted      string           `json:"phoneFormatted"`
    Email               string           `json:"email"`
    EmailLower          string           `json:"emailLower"`
    DateOfBirth         string           `json:"dateOfBirth"`
    PasswordHash        string           `json:"passwordHash,omitempty"`
    PasswordStrategy    PasswordStrategy `json:"passwordStrategy,omitempty"`
    Nickname            string           `json:"nickname"`
    NicknameLower       string           `json:"nicknameLower"`
    Role                Role             `json:"role"`
    Status              string           `json:"status,omitempty"`
    RegisteredAt        *time.Time       `json:"registeredAt,omitempty"`
    LastLoginAt         *time.Time       `json:"lastLoginAt,omitempty"`
    AgreementAcceptedAt *time.Time       `json:"agreementAcceptedAt,omitempty"`
    AgreementVersion    string           `json:"agreementVersion,omitempty"`
}

// Public returns a copy without the password hash.
func (u User) Public() User {
    u.PasswordHash = ""
    return u
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
    return u != nil && u.Role.IsAdmin()
}

// DisplayName picks the first non-empty of nickname, full name and email.
func (u User) DisplayName() string {
    for _, s := range []string{u.Nickname, u.FullName, u.Email} {
        if s = strings.TrimSpace(s); s != "" {
            return s
        }
    }
    return ""
}

// ComposeFullName joins last, first and middle names the way they are shown
// on the profile.
func ComposeFullName(last, first, middle string) string {
    parts := make([]string, 0, 3)
    for _, p := range []string{last, first, middle} {
        if p = strings.TrimSpace(p); p != "" {
            parts = append(parts, p)
        }
    }
    return strings.Join(parts, " ")
}
