package session

import (
	"context"
	"fmt"
	"strings"
)

const (
	ThemeKey    = "lawshop.theme"
	LanguageKey = "preferredLanguage"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	DefaultTheme    = ThemeDark
	DefaultLanguage = "en"
)

// Languages lists the interface languages.
var Languages = []string{"en", "ru"}

// Preferences reads and writes display settings through the session
// backend. Missing or unknown stored values fall back to the defaults.
type Preferences struct{ backend Backend }

func NewPreferences(b Backend) *Preferences { return &Preferences{backend: b} }

func (p *Preferences) load(ctx context.Context, key string) string {
	raw, ok, err := p.backend.Load(ctx, key)
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (p *Preferences) Theme(ctx context.Context) Theme {
	switch t := Theme(p.load(ctx, ThemeKey)); t {
	case ThemeDark, ThemeLight:
		return t
	}
	return DefaultTheme
}

func (p *Preferences) SetTheme(ctx context.Context, t Theme) error {
	if t != ThemeDark && t != ThemeLight {
		return fmt.Errorf("unknown theme %q", t)
	}
	return p.backend.Save(ctx, ThemeKey, []byte(t))
}

// ToggleTheme flips between dark and light and returns the new theme.
func (p *Preferences) ToggleTheme(ctx context.Context) (Theme, error) {
	next := ThemeLight
	if p.Theme(ctx) == ThemeLight {
		next = ThemeDark
	}
	return next, p.SetTheme(ctx, next)
}

func (p *Preferences) Language(ctx context.Context) string {
	lang := p.load(ctx, LanguageKey)
	for _, l := range Languages {
		if l == lang {
			return l
		}
	}
	return DefaultLanguage
}

func (p *Preferences) SetLanguage(ctx context.Context, lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, l := range Languages {
		if l == lang {
			return p.backend.Save(ctx, LanguageKey, []byte(lang))
		}
	}
	return fmt.Errorf("unsupported language %q", lang)
}
