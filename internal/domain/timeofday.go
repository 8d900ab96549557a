package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTimeOfDay accepts "HH:MM" or "HH:MM:SS" and returns the
// canonical wire format "HH:MM:SS". Native time inputs send HH:MM; the
// API always stores and returns seconds.
func NormalizeTimeOfDay(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", ErrInvalidTimeOfDay
	}
	if len(parts) == 2 {
		parts = append(parts, "00")
	}
	limits := [3]int{23, 59, 59}
	vals := [3]int{}
	for i, p := range parts {
		if len(p) != 2 {
			return "", ErrInvalidTimeOfDay
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return "", ErrInvalidTimeOfDay
		}
		vals[i] = v
	}
	return fmt.Sprintf("%02d:%02d:%02d", vals[0], vals[1], vals[2]), nil
}
