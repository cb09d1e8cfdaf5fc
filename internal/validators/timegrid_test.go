package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2026-09-10"))
	assert.False(t, IsValidDate("10/09/2026"))
	assert.False(t, IsValidDate("2026-13-01"))
	assert.False(t, IsValidDate(""))
}

func TestIsGridAligned(t *testing.T) {
	for _, ok := range []string{"09:00", "09:15", "09:30", "09:45"} {
		assert.True(t, IsGridAligned(ok), ok)
	}
	for _, bad := range []string{"09:07", "09:01", "nonsense"} {
		assert.False(t, IsGridAligned(bad), bad)
	}
}

func TestIsValidDuration(t *testing.T) {
	assert.True(t, IsValidDuration(15))
	assert.True(t, IsValidDuration(45))
	assert.True(t, IsValidDuration(90))
	assert.False(t, IsValidDuration(0))
	assert.False(t, IsValidDuration(-30))
	assert.False(t, IsValidDuration(20))
}
