package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// GridQuantumMinutes is the booking grid granularity; service durations
// must be a positive multiple of it.
const GridQuantumMinutes = 15

// Slot is one candidate start time on a barber's day.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// GenerateSlots emits the ordered candidate start times ("HH:MM") between
// startTime and endTime for a service of the given duration. The last slot's
// full service window must fit inside the open interval; nothing overruns
// closing time.
func GenerateSlots(startTime, endTime string, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return nil
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := start; cur+durationMinutes <= end; cur += durationMinutes {
		slots = append(slots, FormatClock(cur))
	}
	return slots
}

// ParseClock converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock, always "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock pads a grid time to the stored "HH:MM:SS" form.
func NormalizeClock(s string) string {
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}
