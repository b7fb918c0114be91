package schedule

import (
	"errors"
	"testing"

	"github.com/jeysiell/SinalTech/internal/models"
)

func TestInsertRejectsDuplicateTime(t *testing.T) {
	s := models.Schedule{
		models.PeriodMorning: {
			{Time: "08:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
		},
	}

	err := Insert(s, models.PeriodMorning, models.Signal{
		Time: "08:00", Name: "Duplicado", Music: "sino.mp3", Duration: 5,
	})

	var dup ErrDuplicateTime
	if !errors.As(err, &dup) {
		t.Fatalf("expected ErrDuplicateTime, got %v", err)
	}
	if len(s[models.PeriodMorning]) != 1 {
		t.Errorf("duplicate insert must not modify the schedule")
	}
}

func TestInsertSortsByTime(t *testing.T) {
	s := models.Schedule{
		models.PeriodMorning: {
			{Time: "09:00", Name: "Intervalo", Music: "sino.mp3", Duration: 8},
		},
	}

	if err := Insert(s, models.PeriodMorning, models.Signal{
		Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8,
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got := s[models.PeriodMorning]
	if got[0].Time != "07:00" || got[1].Time != "09:00" {
		t.Errorf("period not sorted after insert: %+v", got)
	}
}

func TestInsertValidates(t *testing.T) {
	s := models.Schedule{}

	tests := []struct {
		name string
		sig  models.Signal
	}{
		{"Bad Time", models.Signal{Time: "7h00", Name: "Entrada", Duration: 8}},
		{"Empty Name", models.Signal{Time: "07:00", Name: "  ", Duration: 8}},
		{"Negative Duration", models.Signal{Time: "07:00", Name: "Entrada", Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Insert(s, models.PeriodMorning, tt.sig); err == nil {
				t.Errorf("expected validation error for %+v", tt.sig)
			}
		})
	}
}

func TestUpdateMoveToTakenTime(t *testing.T) {
	s := models.Schedule{
		models.PeriodAfternoon: {
			{Time: "13:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
			{Time: "15:00", Name: "Intervalo", Music: "sino.mp3", Duration: 8},
		},
	}

	err := Update(s, models.PeriodAfternoon, "15:00", models.Signal{
		Time: "13:00", Name: "Intervalo", Music: "sino.mp3", Duration: 8,
	})

	var dup ErrDuplicateTime
	if !errors.As(err, &dup) {
		t.Fatalf("expected ErrDuplicateTime when moving onto a taken slot, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := models.Schedule{
		models.PeriodMorning: {
			{Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
			{Time: "09:10", Name: "Intervalo", Music: "sino.mp3", Duration: 8},
		},
	}

	if err := Remove(s, models.PeriodMorning, "07:00"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(s[models.PeriodMorning]) != 1 || s[models.PeriodMorning][0].Time != "09:10" {
		t.Errorf("unexpected schedule after remove: %+v", s[models.PeriodMorning])
	}

	if err := Remove(s, models.PeriodMorning, "23:00"); err == nil {
		t.Error("expected error removing a missing signal")
	}
}
