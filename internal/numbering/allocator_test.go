package numbering_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/numbering"
)

func fixedLast(number string, ok bool) numbering.LastNumberFunc {
	return func(prefix string) (string, bool, error) {
		return number, ok, nil
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		last   string
		hasAny bool
		want   string
	}{
		{"increments last number", "NC", "NC-000007", true, "NC-000008"},
		{"no prior invoices", "X", "", false, "X-000001"},
		{"malformed suffix restarts", "NC", "NC-abc", true, "NC-000001"},
		{"no dash restarts", "NC", "NC000042", true, "NC-000001"},
		{"large sequence", "NC", "NC-999998", true, "NC-999999"},
		{"prefix containing dash", "A-B", "A-B-000003", true, "A-B-000004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numbering.Next(tt.prefix, fixedLast(tt.last, tt.hasAny))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_EmptyPrefixUsesDefault(t *testing.T) {
	var seenPrefix string
	got, err := numbering.Next("", func(prefix string) (string, bool, error) {
		seenPrefix = prefix
		return "", false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "NC", seenPrefix)
	assert.Equal(t, "NC-000001", got)
}

func TestNext_PropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("db closed")
	_, err := numbering.Next("NC", func(string) (string, bool, error) {
		return "", false, lookupErr
	})
	require.ErrorIs(t, err, lookupErr)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "NC-000042", numbering.Format("NC", 42))
	assert.Equal(t, "X-000001", numbering.Format("X", 1))
	assert.Equal(t, "NC-1000000", numbering.Format("NC", 1000000))
}

func TestParse(t *testing.T) {
	seq, ok := numbering.Parse("NC-000042")
	require.True(t, ok)
	assert.Equal(t, 42, seq)

	_, ok = numbering.Parse("NC-abc")
	assert.False(t, ok)

	_, ok = numbering.Parse("NC000042")
	assert.False(t, ok)
}
