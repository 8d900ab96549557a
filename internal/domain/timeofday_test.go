package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"setflow/internal/domain"
)

func TestNormalizeTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"07:30", "07:30:00", false},
		{"07:30:15", "07:30:15", false},
		{"23:59:59", "23:59:59", false},
		{" 06:00 ", "06:00:00", false},
		{"24:00", "", true},
		{"07:60", "", true},
		{"7:30", "", true},
		{"073000", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := domain.NormalizeTimeOfDay(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}
