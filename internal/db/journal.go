package database

import (
	"fmt"

	"github.com/jeysiell/SinalTech/internal/models"
)

// Journal records fired bells. It doubles as the durable half of the
// played-today set: on startup the scheduler replays today's entries so
// a restart cannot re-fire a bell.
type Journal struct {
	client *Client
}

func NewJournal(client *Client) *Journal {
	return &Journal{client: client}
}

// Record appends one firing.
func (j *Journal) Record(inst models.Instance) error {
	rec := models.FiringRecord{
		Day:      inst.At.Format("2006-01-02"),
		Period:   string(inst.Period),
		Time:     inst.Signal.Time,
		Name:     inst.Signal.Name,
		Music:    inst.Signal.Music,
		Duration: inst.Signal.Duration,
		FiredAt:  inst.At,
	}
	return j.client.DB.Create(&rec).Error
}

// PlayedKeys returns the played-set keys for one calendar day.
func (j *Journal) PlayedKeys(day string) ([]string, error) {
	var records []models.FiringRecord
	if err := j.client.DB.Where("day = ?", day).Find(&records).Error; err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(records))
	for _, r := range records {
		keys = append(keys, fmt.Sprintf("%s|%s|%s", r.Time, r.Name, r.Day))
	}
	return keys, nil
}

// Recent returns the latest firings, newest first.
func (j *Journal) Recent(limit int) ([]models.FiringRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.FiringRecord
	err := j.client.DB.Order("fired_at desc").Limit(limit).Find(&records).Error
	return records, err
}
