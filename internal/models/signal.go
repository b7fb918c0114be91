package models

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PeriodID names one segment of the school day.
type PeriodID string

const (
	PeriodMorning         PeriodID = "morning"
	PeriodAfternoon       PeriodID = "afternoon"
	PeriodAfternoonFriday PeriodID = "afternoonFriday"
	PeriodNight           PeriodID = "night"
)

// AllPeriods lists the periods that can hold signals, in enumeration order.
// Ties between same-instant signals resolve in this order.
var AllPeriods = []PeriodID{PeriodMorning, PeriodAfternoon, PeriodAfternoonFriday}

var timeRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Signal is one scheduled bell event inside a period's list.
type Signal struct {
	Time     string `json:"time" yaml:"time"`         // "HH:MM", 24h
	Name     string `json:"name" yaml:"name"`         // e.g. "Entrada"
	Music    string `json:"music" yaml:"music"`       // asset id, e.g. "sino.mp3"
	Duration int    `json:"duration" yaml:"duration"` // playback length in seconds
}

// Validate checks a signal is well-formed enough to schedule.
func (s Signal) Validate() error {
	if !timeRE.MatchString(s.Time) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", s.Time)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("signal name is required")
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %d", s.Duration)
	}
	return nil
}

// ClockTime parses the HH:MM field into hour and minute.
func (s Signal) ClockTime() (hour, minute int, err error) {
	if !timeRE.MatchString(s.Time) {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM)", s.Time)
	}
	parts := strings.SplitN(s.Time, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute, nil
}

// Schedule maps each period to its ordered signal list.
// The remote store owns the durable copy; in-process copies are transient.
type Schedule map[PeriodID][]Signal

// Clone returns a deep copy so admin edits never mutate a shared snapshot.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for period, signals := range s {
		list := make([]Signal, len(signals))
		copy(list, signals)
		out[period] = list
	}
	return out
}

// Sort orders every period list by time ascending. Called before each persist.
func (s Schedule) Sort() {
	for _, signals := range s {
		sort.SliceStable(signals, func(i, j int) bool {
			return signals[i].Time < signals[j].Time
		})
	}
}

// Find returns the index of the signal at the given HH:MM within a period,
// or -1 if none exists.
func (s Schedule) Find(period PeriodID, timeStr string) int {
	for i, sig := range s[period] {
		if sig.Time == timeStr {
			return i
		}
	}
	return -1
}
