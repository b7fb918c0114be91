package schedule

import (
	"log"
	"sort"
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

// FridayMode decides what happens to the afternoon lists on Fridays.
type FridayMode string

const (
	// FridayAdd keeps the standard afternoon list and appends the
	// Friday-specific one.
	FridayAdd FridayMode = "add"
	// FridayReplace substitutes the Friday list for the standard
	// afternoon list.
	FridayReplace FridayMode = "replace"
)

// Projector expands a schedule into absolute-dated signal instances for
// one calendar day.
type Projector struct {
	fridayMode FridayMode
}

func NewProjector(mode FridayMode) *Projector {
	if mode != FridayReplace {
		mode = FridayAdd
	}
	return &Projector{fridayMode: mode}
}

// PeriodsFor returns the periods that apply on the given weekday, in
// enumeration order.
func (p *Projector) PeriodsFor(weekday time.Weekday) []models.PeriodID {
	periods := []models.PeriodID{models.PeriodMorning, models.PeriodAfternoon}
	if weekday == time.Friday {
		if p.fridayMode == FridayReplace {
			periods = []models.PeriodID{models.PeriodMorning, models.PeriodAfternoonFriday}
		} else {
			periods = append(periods, models.PeriodAfternoonFriday)
		}
	}
	return periods
}

// ProjectToday builds the day's instances, sorted ascending by instant.
// Stable sort keeps projection order (period enumeration, then list
// order) for same-instant collisions. Malformed signals are skipped.
func (p *Projector) ProjectToday(s models.Schedule, now time.Time) []models.Instance {
	var instances []models.Instance

	for _, period := range p.PeriodsFor(now.Weekday()) {
		for _, sig := range s[period] {
			hour, minute, err := sig.ClockTime()
			if err != nil {
				log.Printf("⚠️ Skipping malformed signal %q in %s: %v", sig.Name, period, err)
				continue
			}
			at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			instances = append(instances, models.Instance{
				Signal: sig,
				Period: period,
				At:     at,
			})
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].At.Before(instances[j].At)
	})
	return instances
}
