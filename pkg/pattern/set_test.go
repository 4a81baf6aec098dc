package pattern

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSetPrefixSortsAndDedups(t *testing.T) {
	set, skipped := NewSet(KindPrefix, []string{"abc", "abc", "ab"})
	require.Empty(t, skipped)
	require.Equal(t, []string{"ab", "abc"}, set.Patterns())
	require.Equal(t, 2, set.Len())
	require.Equal(t, KindPrefix, set.Kind())
}

func TestNewSetSkipsInvalidAndEmpty(t *testing.T) {
	set, skipped := NewSet(KindPrefix, []string{"", "xyz", "DEAD", strings.Repeat("a", 41)})
	require.Equal(t, []string{"dead"}, set.Patterns())
	require.Len(t, skipped, 2)
	require.Equal(t, "xyz", skipped[0].Raw)
	require.ErrorIs(t, skipped[0].Err, ErrInvalidCharacters)
	require.ErrorIs(t, skipped[1].Err, ErrInvalidCharacters)
}

func TestNewSetRegexKeepsOrder(t *testing.T) {
	set, skipped := NewSet(KindRegex, []string{"b+", "a+", "b+", "(["})
	require.Len(t, skipped, 1)
	require.ErrorIs(t, skipped[0].Err, ErrInvalidRegex)
	require.Equal(t, []string{"b+", "a+", "b+"}, set.Patterns())
}

func TestSetContainsPrefix(t *testing.T) {
	set, _ := NewSet(KindPrefix, []string{"1", "10", "11", "7e5f", "ff"})

	tests := []struct {
		address string
		want    bool
	}{
		{"1f00000000000000000000000000000000000000", true},
		{"1000000000000000000000000000000000000000", true},
		{testAddress, true},
		{"7e50000000000000000000000000000000000000", false},
		{"fe00000000000000000000000000000000000000", false},
		{"0000000000000000000000000000000000000000", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, set.Contains(tt.address), tt.address)
	}
}

func TestSetContainsRegex(t *testing.T) {
	set, _ := NewSet(KindRegex, []string{"^0{4}", "beef$"})
	require.True(t, set.Contains("0000ab0000000000000000000000000000000000"))
	require.True(t, set.Contains("000a00000000000000000000000000000000beef"))
	require.False(t, set.Contains(testAddress))
}

// Contains must agree with a linear scan of Prefix.Match for any address.
func TestSetContainsPrefixMatchesLinearScan(t *testing.T) {
	raws := []string{"0", "00", "0a", "1", "1a2", "1a", "a", "abc", "abcd", "f0f", "ff", "fff0"}
	set, _ := NewSet(KindPrefix, raws)

	buf := make([]byte, 20)
	for i := 0; i < 2000; i++ {
		_, err := rand.Read(buf)
		require.NoError(t, err)
		addr := hex.EncodeToString(buf)

		want := false
		for _, raw := range raws {
			if strings.HasPrefix(addr, raw) {
				want = true
				break
			}
		}
		require.Equal(t, want, set.Contains(addr), addr)
	}
}

func BenchmarkSetContainsPrefix(b *testing.B) {
	raws := make([]string, 0, 4096)
	buf := make([]byte, 3)
	for i := 0; i < cap(raws); i++ {
		_, _ = rand.Read(buf)
		raws = append(raws, hex.EncodeToString(buf)[:1+i%6])
	}
	set, _ := NewSet(KindPrefix, raws)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		set.Contains(testAddress)
	}
}
