package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
)

const (
	MinNicknameLength = 3
	MaxNicknameLength = 24
	// NicknameAttempts bounds the uniqueness probes of one generation.
	NicknameAttempts = 12
	// MaxNicknameRegenerations is the regeneration count that unlocks
	// manual entry.
	MaxNicknameRegenerations = 5

	suffixChance = 0.4
)

var (
	manualNickname   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{2,23}$`)
	nicknameSuffixes = []string{"lex", "law", "prime", "studio", "team", "plus"}
)

var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

// Transliterate maps Russian letters to Latin. Capital letters map to an
// all-caps replacement; other characters pass through.
func Transliterate(v string) string {
	var b strings.Builder
	for _, r := range v {
		repl, ok := cyrillicToLatin[unicode.ToLower(r)]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if r >= 'А' && r <= 'Я' {
			repl = strings.ToUpper(repl)
		}
		b.WriteString(repl)
	}
	return b.String()
}

func asciiLetters(v string) string {
	var b strings.Builder
	for _, r := range v {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func head(v string, n int) string {
	if len(v) > n {
		return v[:n]
	}
	return v
}

// NicknameCandidate builds first3 + last3 + a number in [10, 999], with a
// 40% chance of a trailing suffix. Names without Latin-convertible letters
// give user<number>. The result is cut to MaxNicknameLength.
func NicknameCandidate(rng *mrand.Rand, first, last string) string {
	letters := head(asciiLetters(Transliterate(first)), 3) + head(asciiLetters(Transliterate(last)), 3)
	number := strconv.Itoa(rng.IntN(990) + 10)
	extra := ""
	if rng.Float64() < suffixChance {
		extra = nicknameSuffixes[rng.IntN(len(nicknameSuffixes))]
	}
	c := letters + number + extra
	if letters == "" {
		c = "user" + number
	}
	return head(c, MaxNicknameLength)
}

// ValidateManualNickname trims v and checks the typed nickname pattern.
func ValidateManualNickname(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return v, MsgNicknameRequired
	}
	if !manualNickname.MatchString(v) {
		return v, MsgNicknameFormat
	}
	return v, nil
}

// NicknameGenerator draws candidates until one is unused.
type NicknameGenerator struct {
	checks *UniquenessCache

	mu  sync.Mutex
	rng *mrand.Rand
}

func NewNicknameGenerator(checks *UniquenessCache) *NicknameGenerator {
	var seed [32]byte
	_, _ = rand.Read(seed[:])
	return NewSeededNicknameGenerator(checks, seed)
}

func NewSeededNicknameGenerator(checks *UniquenessCache, seed [32]byte) *NicknameGenerator {
	return &NicknameGenerator{checks: checks, rng: mrand.New(mrand.NewChaCha8(seed))}
}

// Generate returns the first unused candidate within NicknameAttempts
// tries, or MsgNicknameExhausted. A failing probe ends the generation.
func (g *NicknameGenerator) Generate(ctx context.Context, first, last string) (string, error) {
	for range NicknameAttempts {
		g.mu.Lock()
		c := NicknameCandidate(g.rng, first, last)
		g.mu.Unlock()
		if len(c) < MinNicknameLength {
			continue
		}
		unique, err := g.checks.NicknameUnique(ctx, c)
		if err != nil {
			logger.Warn(ctx, "nickname uniqueness probe failed", zap.Error(err))
			return "", fmt.Errorf("%w: %w", MsgNicknameUnverified, err)
		}
		if unique {
			return c, nil
		}
	}
	return "", MsgNicknameExhausted
}

// NicknameFlow tracks the generated nickname of one registration form.
// Every Regenerate call counts, successful or not; the call that reaches
// MaxNicknameRegenerations unlocks manual entry, and only that one.
type NicknameFlow struct {
	gen *NicknameGenerator

	Attempts      int
	ManualEnabled bool
	Current       string
}

func NewNicknameFlow(gen *NicknameGenerator) *NicknameFlow {
	return &NicknameFlow{gen: gen}
}

// Suggest fills Current when names are long enough and manual entry is
// off. It does not count as a regeneration.
func (f *NicknameFlow) Suggest(ctx context.Context, first, last string) (string, error) {
	if f.ManualEnabled {
		return f.Current, nil
	}
	first, last = SanitizeName(first), SanitizeName(last)
	if len([]rune(first)) < minNameLength || len([]rune(last)) < minNameLength {
		return f.Current, nil
	}
	nick, err := f.gen.Generate(ctx, first, last)
	if err != nil {
		return "", err
	}
	f.Current = nick
	return nick, nil
}

// Regenerate draws a fresh nickname. unlocked is true exactly when this
// call switched manual entry on.
func (f *NicknameFlow) Regenerate(ctx context.Context, first, last string) (nick string, unlocked bool, err error) {
	f.Attempts++
	nick, err = f.gen.Generate(ctx, SanitizeName(first), SanitizeName(last))
	if err == nil {
		f.Current = nick
	}
	if !f.ManualEnabled && f.Attempts >= MaxNicknameRegenerations {
		f.ManualEnabled = true
		unlocked = true
	}
	return nick, unlocked, err
}

// Reset returns the flow to its initial state.
func (f *NicknameFlow) Reset() {
	f.Attempts, f.ManualEnabled, f.Current = 0, false, ""
}
