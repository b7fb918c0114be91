package schedule

import (
	"fmt"

	"github.com/jeysiell/SinalTech/internal/models"
)

// ErrDuplicateTime is returned when an insert would give two signals in
// the same period the same HH:MM.
type ErrDuplicateTime struct {
	Period models.PeriodID
	Time   string
}

func (e ErrDuplicateTime) Error() string {
	return fmt.Sprintf("period %s already has a signal at %s", e.Period, e.Time)
}

// Insert adds a signal to a period, rejecting duplicate times. Mutates
// the given schedule in place; callers pass a cache snapshot.
func Insert(s models.Schedule, period models.PeriodID, sig models.Signal) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	if s.Find(period, sig.Time) >= 0 {
		return ErrDuplicateTime{Period: period, Time: sig.Time}
	}
	s[period] = append(s[period], sig)
	s.Sort()
	return nil
}

// Update replaces the signal at timeStr within a period. Moving the
// signal to a time already taken by another entry is rejected.
func Update(s models.Schedule, period models.PeriodID, timeStr string, sig models.Signal) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	idx := s.Find(period, timeStr)
	if idx < 0 {
		return fmt.Errorf("no signal at %s in period %s", timeStr, period)
	}
	if sig.Time != timeStr && s.Find(period, sig.Time) >= 0 {
		return ErrDuplicateTime{Period: period, Time: sig.Time}
	}
	s[period][idx] = sig
	s.Sort()
	return nil
}

// Remove deletes the signal at timeStr from a period.
func Remove(s models.Schedule, period models.PeriodID, timeStr string) error {
	idx := s.Find(period, timeStr)
	if idx < 0 {
		return fmt.Errorf("no signal at %s in period %s", timeStr, period)
	}
	s[period] = append(s[period][:idx], s[period][idx+1:]...)
	return nil
}
