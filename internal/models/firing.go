package models

import (
	"time"

	"gorm.io/gorm"
)

// FiringRecord journals one bell firing. Used to rebuild the played-today
// set after a restart and to serve the history endpoint.
type FiringRecord struct {
	gorm.Model

	Day      string `gorm:"size:10;index"` // "2006-01-02"
	Period   string `gorm:"size:32"`
	Time     string `gorm:"size:5"` // HH:MM
	Name     string
	Music    string
	Duration int
	FiredAt  time.Time `gorm:"index"`
}
