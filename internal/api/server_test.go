package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jeysiell/SinalTech/internal/assets"
	"github.com/jeysiell/SinalTech/internal/clock"
	"github.com/jeysiell/SinalTech/internal/config"
	database "github.com/jeysiell/SinalTech/internal/db"
	"github.com/jeysiell/SinalTech/internal/models"
	"github.com/jeysiell/SinalTech/internal/period"
	"github.com/jeysiell/SinalTech/internal/schedule"
	"github.com/jeysiell/SinalTech/internal/scheduler"
	"github.com/jeysiell/SinalTech/internal/storage"
)

type storeRecorder struct {
	mu       sync.Mutex
	schedule models.Schedule
	puts     int
	deletes  []string
}

func (r *storeRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch req.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(r.schedule)
	case http.MethodPut:
		json.NewDecoder(req.Body).Decode(&r.schedule)
		r.puts++
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		r.deletes = append(r.deletes, req.URL.Path)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type nopPlayer struct{}

func (nopPlayer) Play(string, time.Duration, float64) error { return nil }

func testGrid() models.Schedule {
	return models.Schedule{
		models.PeriodMorning: {
			{Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
		},
	}
}

func newTestServer(t *testing.T) (*Server, *storeRecorder, *database.Journal) {
	t.Helper()

	recorder := &storeRecorder{schedule: testGrid()}
	srv := httptest.NewServer(recorder)
	t.Cleanup(srv.Close)

	store := schedule.NewStore(srv.URL, 2*time.Second)
	cache := schedule.NewCache()
	cache.Set(testGrid(), time.Now())

	clk := &clock.MockClock{MockTime: time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local)}
	sched := scheduler.New(
		clk,
		store,
		cache,
		schedule.NewProjector(schedule.FridayAdd),
		period.NewClassifier(period.DefaultBands()),
		nopPlayer{},
		scheduler.Options{},
	)
	sched.Pass()

	assetDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(assetDir, "sino.mp3"), []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}
	client := storage.NewWithProvider(storage.NewLocalProvider(assetDir), "", "")
	library := assets.NewLibrary(client, t.TempDir())

	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	d.AutoMigrate(&models.FiringRecord{})
	journal := database.NewJournal(&database.Client{DB: d})

	api := New(&config.Config{}, store, cache, sched, library, journal)
	return api, recorder, journal
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetStatus(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/v1/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var v scheduler.View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if v.State != scheduler.StateArmed {
		t.Errorf("expected ARMED, got %s", v.State)
	}
	if v.Next == nil || v.Next.Time != "07:00" {
		t.Errorf("unexpected next signal: %+v", v.Next)
	}
}

func TestGetPeriodRejectsUnknown(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/v1/schedule/weekend", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", w.Code)
	}
}

func TestCreateSignalPersists(t *testing.T) {
	s, recorder, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/schedule/morning",
		`{"time":"09:10","name":"Intervalo","music":"sino.mp3","duration":8}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if recorder.puts != 1 {
		t.Errorf("expected one store save, got %d", recorder.puts)
	}

	// Read-your-writes: the mirror serves the new signal immediately.
	w = do(t, s, http.MethodGet, "/api/v1/schedule/morning", "")
	if !strings.Contains(w.Body.String(), "Intervalo") {
		t.Errorf("new signal missing from period listing: %s", w.Body.String())
	}
}

func TestCreateSignalDuplicateTime(t *testing.T) {
	s, recorder, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/schedule/morning",
		`{"time":"07:00","name":"Outro","music":"sino.mp3","duration":8}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate time, got %d", w.Code)
	}
	if recorder.puts != 0 {
		t.Errorf("duplicate must not reach the store, got %d saves", recorder.puts)
	}
}

func TestCreateSignalRejectsMalformedTime(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/v1/schedule/morning",
		`{"time":"25:99","name":"Ruim","music":"sino.mp3","duration":8}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed time, got %d", w.Code)
	}
}

func TestDeleteSignal(t *testing.T) {
	s, recorder, _ := newTestServer(t)

	w := do(t, s, http.MethodDelete, "/api/v1/schedule/morning/07:00", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(recorder.deletes) != 1 || recorder.deletes[0] != "/schedule/morning/07:00" {
		t.Errorf("unexpected store delete calls: %v", recorder.deletes)
	}

	w = do(t, s, http.MethodDelete, "/api/v1/schedule/morning/07:00", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing signal, got %d", w.Code)
	}
}

func TestGetAssets(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/v1/assets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "sino.mp3") {
		t.Errorf("expected sino.mp3 in asset listing: %s", w.Body.String())
	}
}

func TestGetHistory(t *testing.T) {
	s, _, journal := newTestServer(t)

	journal.Record(models.Instance{
		Signal: models.Signal{Time: "07:00", Name: "Entrada", Music: "sino.mp3", Duration: 8},
		Period: models.PeriodMorning,
		At:     time.Now(),
	})

	w := do(t, s, http.MethodGet, "/api/v1/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Entrada") {
		t.Errorf("expected journaled firing in history: %s", w.Body.String())
	}
}
