package period

import (
	"testing"
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

func minuteOfDay(minutes int) time.Time {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC) // a Monday
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultBands())

	tests := []struct {
		name    string
		minutes int
		want    models.PeriodID
	}{
		{"Midnight", 0, models.PeriodNight},
		{"Just Before Morning", 359, models.PeriodNight},
		{"Morning Start Boundary", 360, models.PeriodMorning},
		{"Mid Morning (10:00)", 600, models.PeriodMorning},
		{"Last Morning Minute", 774, models.PeriodMorning},
		{"Afternoon Start Boundary", 775, models.PeriodAfternoon},
		{"Mid Afternoon (15:00)", 900, models.PeriodAfternoon},
		{"Last Afternoon Minute", 1139, models.PeriodAfternoon},
		{"Night Start Boundary", 1140, models.PeriodNight},
		{"Late Night (23:59)", 1439, models.PeriodNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(minuteOfDay(tt.minutes))
			if got != tt.want {
				t.Errorf("Classify(minute %d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

// Every minute of the day must classify to exactly one of the three bands,
// with no gaps. Walks the full 24h domain.
func TestClassifyPartitionsTheDay(t *testing.T) {
	c := NewClassifier(DefaultBands())

	counts := map[models.PeriodID]int{}
	for m := 0; m < 24*60; m++ {
		id := c.Classify(minuteOfDay(m))
		switch id {
		case models.PeriodMorning, models.PeriodAfternoon, models.PeriodNight:
			counts[id]++
		default:
			t.Fatalf("minute %d classified to unknown period %q", m, id)
		}
	}

	bands := DefaultBands()
	wantMorning := bands.AfternoonStart - bands.MorningStart
	wantAfternoon := bands.NightStart - bands.AfternoonStart
	wantNight := 24*60 - wantMorning - wantAfternoon

	if counts[models.PeriodMorning] != wantMorning {
		t.Errorf("morning covers %d minutes, want %d", counts[models.PeriodMorning], wantMorning)
	}
	if counts[models.PeriodAfternoon] != wantAfternoon {
		t.Errorf("afternoon covers %d minutes, want %d", counts[models.PeriodAfternoon], wantAfternoon)
	}
	if counts[models.PeriodNight] != wantNight {
		t.Errorf("night covers %d minutes, want %d", counts[models.PeriodNight], wantNight)
	}
}
