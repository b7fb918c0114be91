package models

import (
	"fmt"
	"time"
)

// Instance is a Signal projected onto a concrete calendar date.
// Instances are rebuilt on every scheduling pass and never persisted.
type Instance struct {
	Signal Signal
	Period PeriodID
	At     time.Time // absolute instant the bell should fire
}

// PlayedKey identifies an instance inside the played-today set.
// Same composite the original system used: time + name + date.
func (i Instance) PlayedKey() string {
	return fmt.Sprintf("%s|%s|%s", i.Signal.Time, i.Signal.Name, i.At.Format("2006-01-02"))
}
