package period

import (
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

// Bands holds the period boundaries in minutes since midnight.
// The day partitions into [MorningStart, AfternoonStart) = morning,
// [AfternoonStart, NightStart) = afternoon, everything else = night.
type Bands struct {
	MorningStart   int
	AfternoonStart int
	NightStart     int
}

// DefaultBands returns the boundaries the school has always used:
// morning 06:00-12:55, afternoon 12:55-19:00.
func DefaultBands() Bands {
	return Bands{
		MorningStart:   360,
		AfternoonStart: 775,
		NightStart:     1140,
	}
}

// Classifier maps a wall-clock instant to the period it falls in.
type Classifier struct {
	bands Bands
}

func NewClassifier(b Bands) *Classifier {
	return &Classifier{bands: b}
}

// Classify is total: every instant yields exactly one period id.
func (c *Classifier) Classify(t time.Time) models.PeriodID {
	total := t.Hour()*60 + t.Minute()

	switch {
	case total >= c.bands.MorningStart && total < c.bands.AfternoonStart:
		return models.PeriodMorning
	case total >= c.bands.AfternoonStart && total < c.bands.NightStart:
		return models.PeriodAfternoon
	default:
		return models.PeriodNight
	}
}
