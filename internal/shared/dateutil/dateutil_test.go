package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := map[string]string{
		"2025-03-14":           "2025-03-14",
		"14.03.2025":           "2025-03-14",
		"2025/03/14":           "2025-03-14",
		"2025-03-14T22:10:00Z": "2025-03-14",
	}
	for in, want := range cases {
		got, err := Parse(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, *Format(got), in)
	}

	empty, err := Parse("  ")
	assert.NoError(t, err)
	assert.Nil(t, empty)

	_, err = Parse("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "", FormatTime(time.Time{}))
	assert.Equal(t, "2025-01-02T03:04:05Z", FormatTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
}
