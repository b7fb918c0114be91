package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeysiell/SinalTech/internal/models"
	"github.com/jeysiell/SinalTech/internal/schedule"
)

func parsePeriod(c *gin.Context) (models.PeriodID, bool) {
	period := models.PeriodID(c.Param("period"))
	for _, p := range models.AllPeriods {
		if p == period {
			return period, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "unknown period: " + c.Param("period")})
	return "", false
}

// GetStatus returns the scheduler view the UI polls: state, current
// period, last and next signal, and any schedule store error.
func (s *Server) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.sched.View())
}

// GetSchedule returns the full last-known schedule.
func (s *Server) GetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"schedule":   s.cache.Snapshot(),
		"loaded":     s.cache.Loaded(),
		"fetched_at": s.cache.FetchedAt(),
	})
}

// GetPeriod returns a single period's signal list.
func (s *Server) GetPeriod(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	snapshot := s.cache.Snapshot()
	c.JSON(http.StatusOK, gin.H{"period": period, "signals": snapshot[period]})
}

// CreateSignal adds a signal to a period and persists the whole
// schedule back to the store. Duplicate times within the period are
// rejected with 409.
func (s *Server) CreateSignal(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	var sig models.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signal payload"})
		return
	}

	snapshot := s.cache.Snapshot()
	if err := schedule.Insert(snapshot, period, sig); err != nil {
		var dup schedule.ErrDuplicateTime
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.persist(c, snapshot)
}

// UpdateSignal replaces the signal at :time within :period.
func (s *Server) UpdateSignal(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	var sig models.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signal payload"})
		return
	}

	snapshot := s.cache.Snapshot()
	if err := schedule.Update(snapshot, period, c.Param("time"), sig); err != nil {
		var dup schedule.ErrDuplicateTime
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.persist(c, snapshot)
}

// DeleteSignal removes the signal at :time. The store exposes a
// dedicated delete endpoint, so no full re-save is needed.
func (s *Server) DeleteSignal(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	timeStr := c.Param("time")

	snapshot := s.cache.Snapshot()
	if err := schedule.Remove(snapshot, period, timeStr); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.Delete(c.Request.Context(), period, timeStr); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.cache.Set(snapshot, time.Now())
	s.sched.Reload()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// persist saves a mutated snapshot to the store, mirrors it locally and
// nudges the scheduler. The store stays the source of truth; the local
// mirror just gives the API read-your-writes.
func (s *Server) persist(c *gin.Context, snapshot models.Schedule) {
	if err := s.store.Save(c.Request.Context(), snapshot); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	s.cache.Set(snapshot, time.Now())
	s.sched.Reload()
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// ReloadSchedule asks the scheduler to re-fetch the store now.
func (s *Server) ReloadSchedule(c *gin.Context) {
	s.sched.Reload()
	c.JSON(http.StatusAccepted, gin.H{"status": "reloading"})
}

// GetAssets lists the chimes available for signals.
func (s *Server) GetAssets(c *gin.Context) {
	chimes, err := s.library.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": chimes})
}

// GetHistory returns recent firings, newest first.
// Query Params: limit (default 50)
func (s *Server) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	records, err := s.journal.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "meta": gin.H{"limit": limit}})
}
