package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeysiell/SinalTech/internal/models"
)

// Store is the HTTP client for the remote schedule store. The store owns
// the durable schedule; everything in this process is a transient mirror.
type Store struct {
	baseURL string
	client  *http.Client
}

func NewStore(baseURL string, timeout time.Duration) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the full schedule. Non-2xx responses count as failure.
func (s *Store) Fetch(ctx context.Context) (models.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/schedule", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("schedule fetch: unexpected status %d", resp.StatusCode)
	}

	var schedule models.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("schedule fetch: decode: %w", err)
	}
	return schedule, nil
}

// Save persists the entire schedule. Period lists are re-sorted by time
// before every persist, matching what the store expects to serve back.
func (s *Store) Save(ctx context.Context, schedule models.Schedule) error {
	schedule.Sort()

	body, err := json.Marshal(schedule)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/schedule", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("schedule save: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("schedule save: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Delete removes a single signal identified by period and HH:MM.
func (s *Store) Delete(ctx context.Context, period models.PeriodID, timeStr string) error {
	endpoint := fmt.Sprintf("%s/schedule/%s/%s", s.baseURL, url.PathEscape(string(period)), url.PathEscape(timeStr))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("schedule delete: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("schedule delete: unexpected status %d", resp.StatusCode)
	}
	return nil
}
