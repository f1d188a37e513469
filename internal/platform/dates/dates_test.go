package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearsBetween_CalendarYearDifference(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{
			name:  "birthday already passed",
			birth: date(2023, time.January, 10),
			today: date(2025, time.June, 1),
			want:  2,
		},
		{
			// El cálculo es por año calendario: no resta uno aunque el
			// cumpleaños aún no haya ocurrido este año.
			name:  "birthday not yet reached this year",
			birth: date(2023, time.December, 31),
			today: date(2025, time.January, 1),
			want:  2,
		},
		{
			name:  "same year",
			birth: date(2025, time.February, 1),
			today: date(2025, time.November, 30),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearsBetween(tt.birth, tt.today); got != tt.want {
				t.Fatalf("YearsBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthsBetween_WholeMonths(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{
			name:  "exactly two months",
			birth: date(2025, time.January, 15),
			today: date(2025, time.March, 15),
			want:  2,
		},
		{
			name:  "one day short of a month",
			birth: date(2025, time.January, 15),
			today: date(2025, time.February, 14),
			want:  0,
		},
		{
			name:  "two years",
			birth: date(2023, time.June, 1),
			today: date(2025, time.June, 1),
			want:  24,
		},
		{
			name:  "crosses year boundary",
			birth: date(2024, time.November, 10),
			today: date(2025, time.February, 9),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.birth, tt.today); got != tt.want {
				t.Fatalf("MonthsBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween_Signed(t *testing.T) {
	today := date(2025, time.May, 10)

	if got := DaysBetween(today, date(2025, time.May, 20)); got != 10 {
		t.Fatalf("future: got %d, want 10", got)
	}
	if got := DaysBetween(today, date(2025, time.May, 3)); got != -7 {
		t.Fatalf("past: got %d, want -7", got)
	}
	if got := DaysBetween(today, today); got != 0 {
		t.Fatalf("same day: got %d, want 0", got)
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, time.May, 10, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 11, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(from, to); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestSameOrAfter(t *testing.T) {
	ref := time.Date(2025, time.May, 10, 15, 30, 0, 0, time.UTC)

	if !SameOrAfter(date(2025, time.May, 10), ref) {
		t.Fatalf("same date should count as upcoming")
	}
	if !SameOrAfter(date(2025, time.May, 11), ref) {
		t.Fatalf("next day should count as upcoming")
	}
	if SameOrAfter(date(2025, time.May, 9), ref) {
		t.Fatalf("previous day should not count as upcoming")
	}
}
