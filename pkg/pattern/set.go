package pattern

import (
	"slices"

	"github.com/screa/eth-vanity/pkg/types"
)

// Set is an immutable collection of patterns of a single kind. It is safe
// for concurrent use once built.
type Set struct {
	kind Kind

	// prefix sets: sorted, deduplicated, plus the distinct lengths present
	prefixes []string
	lengths  []int

	// regex sets: in the order supplied
	regexes []*Regex
}

// NewSet parses raws into a set. Empty strings are ignored; patterns that
// fail to parse are returned so the caller can report them.
func NewSet(kind Kind, raws []string) (*Set, []*types.SkippedPattern) {
	s := &Set{kind: kind}
	var skipped []*types.SkippedPattern

	for _, raw := range raws {
		if raw == "" {
			continue
		}
		p, err := Parse(kind, raw)
		if err != nil {
			skipped = append(skipped, &types.SkippedPattern{Raw: raw, Err: err})
			continue
		}
		switch v := p.(type) {
		case Prefix:
			s.prefixes = append(s.prefixes, string(v))
		case *Regex:
			s.regexes = append(s.regexes, v)
		}
	}

	if kind == KindPrefix {
		slices.Sort(s.prefixes)
		s.prefixes = slices.Compact(s.prefixes)
		for _, p := range s.prefixes {
			s.lengths = append(s.lengths, len(p))
		}
		slices.Sort(s.lengths)
		s.lengths = slices.Compact(s.lengths)
	}

	return s, skipped
}

// Kind returns the matching strategy of the set
func (s *Set) Kind() Kind {
	return s.kind
}

// Len returns the number of patterns in the set
func (s *Set) Len() int {
	if s.kind == KindPrefix {
		return len(s.prefixes)
	}
	return len(s.regexes)
}

// Patterns returns the source text of every pattern, in set order
func (s *Set) Patterns() []string {
	if s.kind == KindPrefix {
		return slices.Clone(s.prefixes)
	}
	out := make([]string, len(s.regexes))
	for i, re := range s.regexes {
		out[i] = re.String()
	}
	return out
}

// Contains reports whether address matches at least one pattern
func (s *Set) Contains(address string) bool {
	if s.kind == KindPrefix {
		return s.containsPrefix(address)
	}
	for _, re := range s.regexes {
		if re.Match(address) {
			return true
		}
	}
	return false
}

// containsPrefix binary searches the sorted set once per distinct pattern
// length, comparing only against the address prefix of that length.
func (s *Set) containsPrefix(address string) bool {
	for _, l := range s.lengths {
		if l > len(address) {
			break
		}
		if _, found := slices.BinarySearch(s.prefixes, address[:l]); found {
			return true
		}
	}
	return false
}
