package scheduler

import (
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

// SignalRef is the display projection of a signal instance.
type SignalRef struct {
	Time   string          `json:"time"`
	Name   string          `json:"name"`
	Period models.PeriodID `json:"period"`
}

// View is a read-only snapshot of the scheduler for status endpoints
// and UI polling. It is safe to copy.
type View struct {
	State         State           `json:"state"`
	Period        models.PeriodID `json:"period"`
	Current       *SignalRef      `json:"current,omitempty"`
	Next          *SignalRef      `json:"next,omitempty"`
	NextAt        time.Time       `json:"next_at,omitempty"`
	SignalsToday  int             `json:"signals_today"`
	PlayedToday   int             `json:"played_today"`
	ScheduleError string          `json:"schedule_error,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func refOf(inst *models.Instance) *SignalRef {
	if inst == nil {
		return nil
	}
	return &SignalRef{Time: inst.Signal.Time, Name: inst.Signal.Name, Period: inst.Period}
}
