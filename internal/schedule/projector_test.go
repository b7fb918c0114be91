package schedule

import (
	"testing"
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

func testSchedule() models.Schedule {
	return models.Schedule{
		models.PeriodMorning: {
			{Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
			{Time: "09:10", Name: "Intervalo", Music: "musica1.mp3", Duration: 8},
		},
		models.PeriodAfternoon: {
			{Time: "13:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
		},
		models.PeriodAfternoonFriday: {
			{Time: "17:30", Name: "Saída Especial", Music: "musica2.mp3", Duration: 8},
		},
	}
}

func TestProjectTodayWeekday(t *testing.T) {
	p := NewProjector(FridayAdd)

	// Wednesday: only morning + afternoon apply
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local)
	instances := p.ProjectToday(testSchedule(), now)

	if len(instances) != 3 {
		t.Fatalf("expected 3 instances on a Wednesday, got %d", len(instances))
	}

	for i := 1; i < len(instances); i++ {
		if instances[i].At.Before(instances[i-1].At) {
			t.Errorf("instances not sorted: %v before %v", instances[i].At, instances[i-1].At)
		}
	}

	first := instances[0]
	if first.Signal.Name != "Entrada" || first.At.Hour() != 7 || first.At.Minute() != 0 {
		t.Errorf("unexpected first instance: %+v", first)
	}
	if first.At.Year() != 2024 || first.At.Day() != 13 {
		t.Errorf("instance not dated today: %v", first.At)
	}
}

func TestProjectTodayFridayAdd(t *testing.T) {
	p := NewProjector(FridayAdd)

	// Friday: afternoonFriday coexists with afternoon
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	instances := p.ProjectToday(testSchedule(), now)

	if len(instances) != 4 {
		t.Fatalf("expected 4 instances on a Friday (add mode), got %d", len(instances))
	}

	last := instances[len(instances)-1]
	if last.Period != models.PeriodAfternoonFriday || last.Signal.Time != "17:30" {
		t.Errorf("expected Friday special last, got %+v", last)
	}
}

func TestProjectTodayFridayReplace(t *testing.T) {
	p := NewProjector(FridayReplace)

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	instances := p.ProjectToday(testSchedule(), now)

	// Replace mode drops the standard afternoon list entirely
	for _, inst := range instances {
		if inst.Period == models.PeriodAfternoon {
			t.Errorf("replace mode should drop standard afternoon, found %+v", inst)
		}
	}
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances on a Friday (replace mode), got %d", len(instances))
	}
}

func TestProjectTodaySkipsMalformed(t *testing.T) {
	p := NewProjector(FridayAdd)

	s := models.Schedule{
		models.PeriodMorning: {
			{Time: "25:99", Name: "Broken", Music: "sino.mp3", Duration: 5},
			{Time: "08:00", Name: "Boa", Music: "sino.mp3", Duration: 5},
		},
	}

	now := time.Date(2024, 3, 13, 6, 0, 0, 0, time.Local)
	instances := p.ProjectToday(s, now)

	if len(instances) != 1 {
		t.Fatalf("expected malformed signal skipped, got %d instances", len(instances))
	}
	if instances[0].Signal.Name != "Boa" {
		t.Errorf("wrong survivor: %+v", instances[0])
	}
}

// Same-day idempotence: projecting at two different instants of the same
// day yields the same instances as long as the schedule is unchanged.
func TestProjectTodayIdempotentWithinDay(t *testing.T) {
	p := NewProjector(FridayAdd)
	s := testSchedule()

	morning := time.Date(2024, 3, 13, 6, 30, 0, 0, time.Local)
	evening := time.Date(2024, 3, 13, 21, 45, 0, 0, time.Local)

	a := p.ProjectToday(s, morning)
	b := p.ProjectToday(s, evening)

	if len(a) != len(b) {
		t.Fatalf("projection length changed within the day: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].At.Equal(b[i].At) || a[i].Signal != b[i].Signal || a[i].Period != b[i].Period {
			t.Errorf("instance %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestProjectTodayEmptyPeriods(t *testing.T) {
	p := NewProjector(FridayAdd)

	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local)
	instances := p.ProjectToday(models.Schedule{}, now)

	if len(instances) != 0 {
		t.Errorf("empty schedule should project no instances, got %d", len(instances))
	}
}
