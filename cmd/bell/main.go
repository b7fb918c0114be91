package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/faiface/beep"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeysiell/SinalTech/internal/api"
	"github.com/jeysiell/SinalTech/internal/assets"
	"github.com/jeysiell/SinalTech/internal/audio"
	"github.com/jeysiell/SinalTech/internal/clock"
	"github.com/jeysiell/SinalTech/internal/config"
	database "github.com/jeysiell/SinalTech/internal/db"
	"github.com/jeysiell/SinalTech/internal/models"
	"github.com/jeysiell/SinalTech/internal/period"
	"github.com/jeysiell/SinalTech/internal/schedule"
	"github.com/jeysiell/SinalTech/internal/scheduler"
	"github.com/jeysiell/SinalTech/internal/storage"
)

func main() {
	// 1. Parse Flags
	simulate := flag.Bool("simulate", false, "Dry run: print today's projected signals and exit (no audio)")
	date := flag.String("date", "", "Simulate a specific date (YYYY-MM-DD, defaults to today)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 2. Load Config
	cfg := config.Load()

	store := schedule.NewStore(cfg.Store.BaseURL, time.Duration(cfg.Store.TimeoutSeconds)*time.Second)
	projector := schedule.NewProjector(schedule.FridayMode(cfg.Periods.FridayMode))
	classifier := period.NewClassifier(period.Bands{
		MorningStart:   cfg.Periods.MorningStart,
		AfternoonStart: cfg.Periods.AfternoonStart,
		NightStart:     cfg.Periods.NightStart,
	})

	if *simulate {
		runSimulation(cfg, store, projector, classifier, *date)
		return
	}

	log.Println("🚀 Starting SinalTech bell daemon...")

	// 3. Init Infrastructure
	cache := schedule.NewCache()
	cache.Set(seedSchedule(cfg), time.Now())

	storageClient := storage.New(cfg)
	library := assets.NewLibrary(storageClient, cfg.Assets.CacheDir)

	db := database.New(cfg)
	journal := database.NewJournal(db)

	player, err := audio.NewPlayer(audio.SpeakerOutput{}, library, audio.Options{
		SampleRate: beep.SampleRate(cfg.Bell.SampleRate),
		FadeIn:     time.Duration(cfg.Bell.FadeInMillis) * time.Millisecond,
		FadeOut:    time.Duration(cfg.Bell.FadeOutMillis) * time.Millisecond,
		Volume:     cfg.Bell.Volume,
	})
	if err != nil {
		log.Fatalf("❌ Audio init failed: %v", err)
	}

	// 4. Build Scheduler
	sched := scheduler.New(clock.RealClock{}, store, cache, projector, classifier, player, scheduler.Options{
		Catchup:       time.Duration(cfg.Bell.CatchupSeconds) * time.Second,
		RolloverGrace: time.Duration(cfg.Bell.RolloverGraceSeconds) * time.Second,
		PollInterval:  time.Duration(cfg.Store.PollingInterval) * time.Second,
	})
	sched.WithJournal(journal)
	sched.WithWarmer(library)

	// 5. Metrics + API
	scheduler.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics on %s/metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server stopped: %v", err)
		}
	}()

	server := api.New(cfg, store, cache, sched, library, journal)
	go func() {
		log.Printf("🌐 API on %s", cfg.Server.Port)
		if err := server.Start(cfg.Server.Port); err != nil {
			log.Fatalf("❌ API server failed: %v", err)
		}
	}()

	// 6. Run until interrupted
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("🛑 Shutting down...")
		cancel()
	}()

	sched.Run(ctx)
	player.Stop()
}

// seedSchedule gives the daemon a usable schedule before the first
// successful fetch: the configured seed file, or the built-in grid.
func seedSchedule(cfg *config.Config) models.Schedule {
	if cfg.Store.SeedFile != "" {
		seed, err := schedule.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			log.Printf("⚠️ Seed file %s unreadable: %v (using built-in grid)", cfg.Store.SeedFile, err)
			return schedule.DefaultSchedule()
		}
		return seed
	}
	return schedule.DefaultSchedule()
}

// runSimulation prints the day's projection without touching audio, the
// database or the asset store.
func runSimulation(cfg *config.Config, store *schedule.Store, projector *schedule.Projector, classifier *period.Classifier, date string) {
	now := time.Now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			log.Fatalf("❌ Invalid -date %q: %v", date, err)
		}
		now = parsed.Add(12 * time.Hour)
	}

	fmt.Printf("\n--- 🧪 BELL DAY SIMULATION (%s, %s) ---\n", now.Format("2006-01-02"), now.Weekday())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grid, err := store.Fetch(ctx)
	if err != nil {
		log.Printf("⚠️ Store unreachable (%v), simulating with built-in grid", err)
		grid = seedSchedule(cfg)
	}

	instances := projector.ProjectToday(grid, now)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "TIME\tPERIOD\tBAND\tNAME\tCHIME\tSECONDS")
	fmt.Fprintln(w, "----\t------\t----\t----\t-----\t-------")
	for _, inst := range instances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			inst.Signal.Time,
			inst.Period,
			classifier.Classify(inst.At),
			inst.Signal.Name,
			inst.Signal.Music,
			inst.Signal.Duration,
		)
	}
	w.Flush()

	fmt.Printf("\n✅ %d signals projected. Nothing was played.\n", len(instances))
}
