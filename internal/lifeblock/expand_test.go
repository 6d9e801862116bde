package lifeblock_test

import (
	"testing"
	"time"

	"todoist-scheduler/internal/lifeblock"
)

func TestSlotsForDate(t *testing.T) {
	// 2024-05-01 is a Wednesday.
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	state := lifeblock.State{
		OneOff: []lifeblock.OneOffBlock{
			{Date: "2024-05-01", Start: "09:00", End: "09:15", Label: "dentist"},
			{Date: "2024-05-02", Start: "09:00", End: "09:15", Label: "other day"},
			{Date: "not-a-date", Start: "09:00", End: "09:15"},
		},
		Weekly: []lifeblock.WeeklyBlock{
			{Days: []string{"wed", "fri"}, Start: "18:00", End: "18:10", Label: "dinner"},
			{Days: []string{"Saturday"}, Start: "10:00", End: "12:00"},
			{Days: []string{"wed"}, Start: "20:00", End: "19:00", Label: "inverted"},
		},
	}

	slots := lifeblock.SlotsForDate(state, day, 5)

	wantPresent := []time.Time{
		day.Add(9 * time.Hour),
		day.Add(9*time.Hour + 5*time.Minute),
		day.Add(9*time.Hour + 10*time.Minute),
		day.Add(18 * time.Hour),
		day.Add(18*time.Hour + 5*time.Minute),
	}
	for _, want := range wantPresent {
		if _, ok := slots[want]; !ok {
			t.Errorf("expected slot %v to be blocked", want)
		}
	}

	wantAbsent := []time.Time{
		day.Add(9*time.Hour + 15*time.Minute),  // end exclusive
		day.Add(18*time.Hour + 10*time.Minute), // end exclusive
		day.Add(10 * time.Hour),                // saturday block on a wednesday
		day.Add(20 * time.Hour),                // inverted range expands to nothing
	}
	for _, absent := range wantAbsent {
		if _, ok := slots[absent]; ok {
			t.Errorf("expected slot %v to be free", absent)
		}
	}

	if len(slots) != 5 {
		t.Errorf("expected 5 blocked slots, got %d", len(slots))
	}
}

func TestSlotsForDateWeekdayNormalization(t *testing.T) {
	// 2024-05-04 is a Saturday.
	day := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	state := lifeblock.State{
		Weekly: []lifeblock.WeeklyBlock{
			{Days: []string{" Saturday "}, Start: "10:00", End: "10:05"},
		},
	}

	slots := lifeblock.SlotsForDate(state, day, 5)
	if _, ok := slots[day.Add(10*time.Hour)]; !ok {
		t.Errorf("expected full weekday name to match its slug")
	}
}
