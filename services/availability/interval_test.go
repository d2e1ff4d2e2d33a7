package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 10, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		a0, a1, b0, b1 time.Time
		want           bool
	}{
		{"identical", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"partial overlap", at(10, 15), at(10, 45), at(10, 0), at(10, 30), true},
		{"contained", at(10, 5), at(10, 25), at(10, 0), at(10, 30), true},
		{"containing", at(9, 0), at(12, 0), at(10, 0), at(10, 30), true},
		{"adjacent after", at(10, 30), at(11, 0), at(10, 0), at(10, 30), false},
		{"adjacent before", at(9, 30), at(10, 0), at(10, 0), at(10, 30), false},
		{"disjoint", at(14, 0), at(14, 30), at(10, 0), at(10, 30), false},
		{"one minute over", at(10, 29), at(10, 59), at(10, 0), at(10, 30), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a0, tt.a1, tt.b0, tt.b1))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.b0, tt.b1, tt.a0, tt.a1))
		})
	}
}
