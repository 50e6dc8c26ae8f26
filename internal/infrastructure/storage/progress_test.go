package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsMonotonicPercents(t *testing.T) {
	src := strings.NewReader(strings.Repeat("x", 1000))

	var got []int
	pr := NewProgressReader(src, 1000, func(pct int) { got = append(got, pct) })

	buf := make([]byte, 250)
	var out bytes.Buffer
	_, err := io.CopyBuffer(&out, pr, buf)
	require.NoError(t, err)
	require.Equal(t, 1000, out.Len())

	require.NotEmpty(t, got)
	assert.Equal(t, 100, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1], "percents must be strictly increasing")
	}
}

func TestProgressReader_CapsAtHundred(t *testing.T) {
	// total lower than the actual stream length
	src := strings.NewReader(strings.Repeat("x", 500))

	var last int
	pr := NewProgressReader(src, 100, func(pct int) { last = pct })

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.Equal(t, 100, last)
}

func TestProgressReader_NoCallbackNoPanic(t *testing.T) {
	pr := NewProgressReader(strings.NewReader("data"), 4, nil)
	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
}

func TestProgressReader_ZeroTotalStaysSilent(t *testing.T) {
	calls := 0
	pr := NewProgressReader(strings.NewReader("data"), 0, func(int) { calls++ })

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.Zero(t, calls)
}
