// Package scheduler drives the daily bell cycle. A single goroutine
// owns the state machine: it projects today's signals, sleeps until the
// next instant, fires at most once per instance, and rolls the played
// set over at midnight. Everything outside the goroutine sees the
// scheduler only through View snapshots.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jeysiell/SinalTech/internal/clock"
	"github.com/jeysiell/SinalTech/internal/models"
	"github.com/jeysiell/SinalTech/internal/period"
	"github.com/jeysiell/SinalTech/internal/schedule"
)

// State names the scheduler's position in the daily cycle.
type State string

const (
	// StateIdle means no schedule has been loaded yet.
	StateIdle State = "IDLE"
	// StateArmed means a timer is set for the next signal instant.
	StateArmed State = "ARMED"
	// StateFiring is transient while a chime is being started.
	StateFiring State = "FIRING"
	// StateRollover means today's signals are exhausted and the
	// scheduler is waiting for midnight.
	StateRollover State = "DAY_ROLLOVER_WAIT"
)

// Player starts chime playback. A zero volume means the player default.
type Player interface {
	Play(assetID string, duration time.Duration, volume float64) error
}

// Journal persists firings so the at-most-once guarantee survives a
// restart within the same day.
type Journal interface {
	Record(inst models.Instance) error
	PlayedKeys(day string) ([]string, error)
}

// Warmer prefetches chime assets in the background.
type Warmer interface {
	Warm(ids []string)
}

// Options tunes the scheduler loop.
type Options struct {
	// Catchup bounds how stale a missed instant may be and still fire
	// when a timer lands late (system sleep, clock hiccups).
	Catchup time.Duration
	// RolloverGrace delays the post-midnight pass slightly so the new
	// day's date is unambiguous.
	RolloverGrace time.Duration
	// PollInterval is how often the store is re-fetched.
	PollInterval time.Duration
	// FallbackChime lasts this long when a signal carries no duration.
	FallbackChime time.Duration
}

func (o *Options) applyDefaults() {
	if o.Catchup <= 0 {
		o.Catchup = 90 * time.Second
	}
	if o.RolloverGrace <= 0 {
		o.RolloverGrace = 5 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Minute
	}
	if o.FallbackChime <= 0 {
		o.FallbackChime = 8 * time.Second
	}
}

// Scheduler is the daily cycle engine. Construct with New, then either
// call Run in a goroutine or drive Pass directly in tests.
type Scheduler struct {
	clk        clock.Clock
	store      *schedule.Store
	cache      *schedule.Cache
	projector  *schedule.Projector
	classifier *period.Classifier
	player     Player
	journal    Journal
	warmer     Warmer
	opts       Options

	state    State
	played   *PlayedSet
	reloadCh chan struct{}

	viewMu    sync.RWMutex
	view      View
	listeners []func(View)
	lastErr   error
}

func New(clk clock.Clock, store *schedule.Store, cache *schedule.Cache, projector *schedule.Projector, classifier *period.Classifier, player Player, opts Options) *Scheduler {
	opts.applyDefaults()
	return &Scheduler{
		clk:        clk,
		store:      store,
		cache:      cache,
		projector:  projector,
		classifier: classifier,
		player:     player,
		opts:       opts,
		state:      StateIdle,
		played:     NewPlayedSet(),
		reloadCh:   make(chan struct{}, 1),
	}
}

// WithJournal wires firing persistence. Optional.
func (s *Scheduler) WithJournal(j Journal) *Scheduler {
	s.journal = j
	return s
}

// WithWarmer wires asset prefetching after each refresh. Optional.
func (s *Scheduler) WithWarmer(w Warmer) *Scheduler {
	s.warmer = w
	return s
}

// Run owns the scheduler until ctx is cancelled. It refreshes the
// schedule, restores today's played set from the journal, then loops on
// a timer armed by Pass.
func (s *Scheduler) Run(ctx context.Context) {
	s.Refresh(ctx)
	s.rehydrate()

	poll := time.NewTicker(s.opts.PollInterval)
	defer poll.Stop()

	timer := time.NewTimer(s.Pass())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Scheduler stopped")
			return
		case <-s.reloadCh:
			s.Refresh(ctx)
		case <-poll.C:
			s.Refresh(ctx)
		case <-timer.C:
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(s.Pass())
	}
}

// Reload asks the running scheduler to re-fetch the schedule now.
// Non-blocking; a pending reload is collapsed into one.
func (s *Scheduler) Reload() {
	select {
	case s.reloadCh <- struct{}{}:
	default:
	}
}

// Refresh fetches the schedule from the store. A failed fetch keeps the
// last-known schedule and surfaces the error through the view.
func (s *Scheduler) Refresh(ctx context.Context) {
	start := time.Now()
	sched, err := s.store.Fetch(ctx)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		fetchFailures.Inc()
		s.setError(err)
		log.Printf("❌ Schedule fetch failed: %v (keeping last-known schedule)", err)
		return
	}
	s.cache.Set(sched, s.clk.Now())
	s.setError(nil)
	log.Printf("📥 Schedule refreshed (%d periods)", len(sched))

	if s.warmer != nil {
		seen := make(map[string]struct{})
		var ids []string
		for _, signals := range sched {
			for _, sig := range signals {
				if _, ok := seen[sig.Music]; ok {
					continue
				}
				seen[sig.Music] = struct{}{}
				ids = append(ids, sig.Music)
			}
		}
		s.warmer.Warm(ids)
	}
}

// Pass runs one evaluation of the state machine against the clock and
// returns how long to sleep before the next one. It fires any instance
// whose instant has passed within the catch-up window and has not fired
// today, then arms for the next upcoming instant.
func (s *Scheduler) Pass() time.Duration {
	now := s.clk.Now()
	if s.played.Rollover(now.Format("2006-01-02")) {
		log.Printf("🌅 New day %s: played set cleared", now.Format("2006-01-02"))
	}

	instances := s.projector.ProjectToday(s.cache.Snapshot(), now)
	scheduleSignals.Set(float64(len(instances)))

	for i := range instances {
		inst := instances[i]
		if inst.At.After(now) {
			break
		}
		if now.Sub(inst.At) > s.opts.Catchup {
			continue
		}
		if s.played.Contains(inst.PlayedKey()) {
			continue
		}
		s.fire(inst)
	}

	var current, next *models.Instance
	for i := range instances {
		if !instances[i].At.After(now) {
			current = &instances[i]
		} else if next == nil {
			next = &instances[i]
		}
	}

	var wake time.Duration
	switch {
	case next != nil:
		s.state = StateArmed
		// Land just past the instant so the comparison is unambiguous.
		wake = next.At.Sub(now) + 100*time.Millisecond
	case s.cache.Loaded():
		s.state = StateRollover
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		wake = midnight.Add(s.opts.RolloverGrace).Sub(now)
	default:
		s.state = StateIdle
		wake = s.opts.PollInterval
	}

	s.publish(now, len(instances), current, next)
	return wake
}

func (s *Scheduler) fire(inst models.Instance) {
	s.state = StateFiring
	s.played.Add(inst.PlayedKey())
	signalsFired.Inc()
	log.Printf("🔔 %s at %s (%s)", inst.Signal.Name, inst.Signal.Time, inst.Period)

	if s.journal != nil {
		if err := s.journal.Record(inst); err != nil {
			log.Printf("⚠️ Journal write failed: %v", err)
		}
	}

	dur := time.Duration(inst.Signal.Duration) * time.Second
	if dur <= 0 {
		dur = s.opts.FallbackChime
	}
	if err := s.player.Play(inst.Signal.Music, dur, 0); err != nil {
		playbackFailures.Inc()
		log.Printf("❌ Chime playback failed for %q: %v", inst.Signal.Music, err)
	}
}

// rehydrate restores today's played set from the journal so a restart
// does not replay signals that already fired.
func (s *Scheduler) rehydrate() {
	if s.journal == nil {
		return
	}
	day := s.clk.Now().Format("2006-01-02")
	keys, err := s.journal.PlayedKeys(day)
	if err != nil {
		log.Printf("⚠️ Journal read failed: %v", err)
		return
	}
	s.played.Rollover(day)
	for _, k := range keys {
		s.played.Add(k)
	}
	if len(keys) > 0 {
		log.Printf("🔁 Restored %d fired signals for %s", len(keys), day)
	}
}

func (s *Scheduler) publish(now time.Time, total int, current, next *models.Instance) {
	v := View{
		State:        s.state,
		Period:       s.classifier.Classify(now),
		Current:      refOf(current),
		Next:         refOf(next),
		PlayedToday:  s.played.Len(),
		SignalsToday: total,
		UpdatedAt:    now,
	}
	if next != nil {
		v.NextAt = next.At
	}

	s.viewMu.Lock()
	if s.lastErr != nil {
		v.ScheduleError = s.lastErr.Error()
	}
	s.view = v
	listeners := s.listeners
	s.viewMu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

func (s *Scheduler) setError(err error) {
	s.viewMu.Lock()
	s.lastErr = err
	s.viewMu.Unlock()
}

// View returns the latest published snapshot.
func (s *Scheduler) View() View {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return s.view
}

// Subscribe registers a listener called after every pass with the fresh
// view. Listeners must be fast; they run on the scheduler goroutine.
func (s *Scheduler) Subscribe(fn func(View)) {
	s.viewMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.viewMu.Unlock()
}
