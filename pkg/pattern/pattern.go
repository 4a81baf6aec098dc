// Package pattern compiles user supplied patterns and matches them against
// hex encoded addresses.
//
// Two strategies are supported. Prefix patterns are anchored at the start
// of the address, regex patterns may match anywhere in it.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MaxPrefixLen is the length of a hex encoded address
const MaxPrefixLen = 40

// MatchTimeout bounds a single regex match. A match that times out counts
// as no match.
const MatchTimeout = 20 * time.Millisecond

// regexOptions selects RE2 syntax, case-insensitive matching and ignored
// pattern whitespace. Multiline and dot-matches-newline stay off.
const regexOptions = regexp2.RE2 | regexp2.IgnoreCase | regexp2.IgnorePatternWhitespace

// trialAddresses are matched once at parse time; an expression timing out
// on any of them is rejected.
var trialAddresses = []string{
	strings.Repeat("0", MaxPrefixLen),
	strings.Repeat("f", MaxPrefixLen),
	"7e5f4552091a69125d5dfcb7b8c2659029395bdf",
}

// Errors
var (
	ErrInvalidCharacters = errors.New("pattern contains invalid characters")
	ErrInvalidRegex      = errors.New("invalid regex")
	ErrRegexTooSlow      = errors.New("regex exceeds the match time limit")
)

// Kind selects the matching strategy
type Kind int

const (
	KindPrefix Kind = iota
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindPrefix:
		return "prefix"
	case KindRegex:
		return "regex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pattern is a compiled pattern
type Pattern interface {
	// Match reports whether address satisfies the pattern. The address is
	// expected in lowercase hex without the 0x prefix.
	Match(address string) bool
	String() string
}

// Parse compiles raw into a pattern of the given kind
func Parse(kind Kind, raw string) (Pattern, error) {
	switch kind {
	case KindPrefix:
		p, err := ParsePrefix(raw)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindRegex:
		re, err := ParseRegex(raw)
		if err != nil {
			return nil, err
		}
		return re, nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %v", kind)
	}
}

// Prefix matches addresses starting with a lowercase hex string
type Prefix string

// ParsePrefix lowercases raw and checks it is a 1-40 char hex string
func ParsePrefix(raw string) (Prefix, error) {
	s := strings.ToLower(raw)
	if len(s) == 0 || len(s) > MaxPrefixLen {
		return "", ErrInvalidCharacters
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return "", ErrInvalidCharacters
		}
	}
	return Prefix(s), nil
}

func (p Prefix) Match(address string) bool {
	return strings.HasPrefix(address, string(p))
}

func (p Prefix) String() string {
	return string(p)
}

// Regex matches addresses containing a match of a compiled expression
type Regex struct {
	re *regexp2.Regexp
}

// ParseRegex compiles raw as a case-insensitive RE2-syntax expression in
// which unescaped whitespace and #-comments are ignored. Expressions that
// time out on a trial address fail with both ErrInvalidRegex and
// ErrRegexTooSlow.
func ParseRegex(raw string) (*Regex, error) {
	r, err := compileRegex(raw)
	if err != nil {
		return nil, err
	}
	for _, addr := range trialAddresses {
		if _, err := r.re.MatchString(addr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRegex, ErrRegexTooSlow)
		}
	}
	return r, nil
}

func compileRegex(raw string) (*Regex, error) {
	re, err := regexp2.Compile(raw, regexOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	re.MatchTimeout = MatchTimeout
	return &Regex{re: re}, nil
}

// Match reports whether the expression matches anywhere in address. A match
// that times out counts as no match.
func (r *Regex) Match(address string) bool {
	ok, err := r.re.MatchString(address)
	return err == nil && ok
}

func (r *Regex) String() string {
	return r.re.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
