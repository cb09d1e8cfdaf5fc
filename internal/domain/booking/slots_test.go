package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("full day on a 30 minute service", func(t *testing.T) {
		slots := GenerateSlots("09:00", "17:00", 30)

		require.Len(t, slots, 16)
		assert.Equal(t, "09:00", slots[0])
		assert.Equal(t, "16:30", slots[len(slots)-1])
	})

	t.Run("last slot never overruns closing time", func(t *testing.T) {
		// 09:00-10:00 with a 45 minute service: only 09:00 fits,
		// 09:45 would end at 10:30.
		slots := GenerateSlots("09:00", "10:00", 45)
		assert.Equal(t, []string{"09:00"}, slots)
	})

	t.Run("service longer than the window yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("09:00", "10:00", 90))
	})

	t.Run("service exactly filling the window yields one slot", func(t *testing.T) {
		assert.Equal(t, []string{"09:00"}, GenerateSlots("09:00", "10:00", 60))
	})

	t.Run("chronological order", func(t *testing.T) {
		slots := GenerateSlots("08:00", "12:00", 15)
		for i := 1; i < len(slots); i++ {
			prev, _ := ParseClock(slots[i-1])
			cur, _ := ParseClock(slots[i])
			assert.Greater(t, cur, prev)
		}
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("17:00", "09:00", 30))
		assert.Empty(t, GenerateSlots("09:00", "09:00", 30))
		assert.Empty(t, GenerateSlots("09:00", "17:00", 0))
		assert.Empty(t, GenerateSlots("09:00", "17:00", -15))
		assert.Empty(t, GenerateSlots("not-a-time", "17:00", 30))
	})

	t.Run("accepts stored HH:MM:SS clocks", func(t *testing.T) {
		slots := GenerateSlots("09:00:00", "10:00:00", 30)
		assert.Equal(t, []string{"09:00", "09:30"}, slots)
	})
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	for _, bad := range []string{"", "9", "25:00", "09:61", "ab:cd"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:30:00", NormalizeClock("09:30"))
	assert.Equal(t, "09:30:00", NormalizeClock("09:30:00"))
}
