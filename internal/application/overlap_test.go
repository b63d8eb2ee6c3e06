package application_test

import (
	"testing"
	"time"

	"go-leave/internal/application"

	"github.com/stretchr/testify/assert"
)

func day(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func span(start, end string) application.DateRange {
	return application.DateRange{Start: day(start), End: day(end)}
}

func TestDateRange_Overlaps(t *testing.T) {
	base := span("2030-04-08", "2030-04-12")

	tests := []struct {
		name  string
		other application.DateRange
		want  bool
	}{
		{"identical", span("2030-04-08", "2030-04-12"), true},
		{"contained", span("2030-04-09", "2030-04-11"), true},
		{"containing", span("2030-04-01", "2030-04-30"), true},
		{"partial front", span("2030-04-05", "2030-04-08"), true},
		{"partial back", span("2030-04-12", "2030-04-15"), true},
		{"shared single day at start", span("2030-04-01", "2030-04-08"), true},
		{"shared single day at end", span("2030-04-12", "2030-04-12"), true},
		{"adjacent before", span("2030-04-01", "2030-04-07"), false},
		{"adjacent after", span("2030-04-13", "2030-04-20"), false},
		{"disjoint", span("2030-05-01", "2030-05-05"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestAnyOverlap(t *testing.T) {
	requested := span("2030-04-08", "2030-04-12")

	t.Run("empty blocking set", func(t *testing.T) {
		assert.False(t, application.AnyOverlap(requested, nil))
	})

	t.Run("no collision", func(t *testing.T) {
		blocking := []application.DateRange{
			span("2030-03-01", "2030-03-05"),
			span("2030-05-01", "2030-05-05"),
		}
		assert.False(t, application.AnyOverlap(requested, blocking))
	})

	t.Run("one collision among many", func(t *testing.T) {
		blocking := []application.DateRange{
			span("2030-03-01", "2030-03-05"),
			span("2030-04-12", "2030-04-16"),
		}
		assert.True(t, application.AnyOverlap(requested, blocking))
	})
}
