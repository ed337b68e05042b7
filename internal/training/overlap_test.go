package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		exStart, exEnd         string
		newStart, newEnd       string
		want                   bool
	}{
		{"identical windows", "09:00", "10:00", "09:00", "10:00", true},
		{"new starts inside existing", "09:00", "10:00", "09:30", "10:30", true},
		{"new ends inside existing", "09:00", "10:00", "08:30", "09:30", true},
		{"new contains existing", "09:00", "10:00", "08:00", "11:00", true},
		{"existing contains new", "08:00", "11:00", "09:00", "10:00", true},
		{"boundary touch after", "09:00", "10:00", "10:00", "11:00", false},
		{"boundary touch before", "10:00", "11:00", "09:00", "10:00", false},
		{"fully before", "09:00", "10:00", "07:00", "08:00", false},
		{"fully after", "09:00", "10:00", "11:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.exStart, tt.exEnd, tt.newStart, tt.newEnd))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	pairs := [][4]string{
		{"09:00", "10:00", "09:30", "10:30"},
		{"09:00", "10:00", "10:00", "11:00"},
		{"08:00", "12:00", "09:00", "10:00"},
		{"06:15", "07:45", "07:45", "09:00"},
	}

	for _, p := range pairs {
		a := Overlaps(p[0], p[1], p[2], p[3])
		b := Overlaps(p[2], p[3], p[0], p[1])
		assert.Equal(t, a, b, "overlap of %v must be symmetric", p)
	}
}
