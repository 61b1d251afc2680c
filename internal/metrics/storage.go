package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Storage struct {
	baseDir string
}

const dailyMetricsDir = "daily"

func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, dailyMetricsDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create metrics directory: %v", err)
	}
	return &Storage{baseDir: baseDir}, nil
}

func (s *Storage) SaveSession(session *SessionMetrics) error {
	date := session.Timestamp.Format("2006-01-02")

	daily, err := s.GetDailyMetrics(date)
	if err != nil {
		daily = &DailyMetrics{Date: date, Sessions: []SessionMetrics{}}
	}

	daily.Sessions = append(daily.Sessions, *session)
	daily.SessionCount = len(daily.Sessions)
	switch session.Result {
	case "dispatched":
		daily.Dispatched++
		if daily.ByAction == nil {
			daily.ByAction = make(map[string]int)
		}
		daily.ByAction[session.Action]++
	case "cancelled":
		daily.Cancelled++
	}

	return s.saveDailyMetrics(daily)
}

func (s *Storage) GetDailyMetrics(date string) (*DailyMetrics, error) {
	filePath := s.dailyPath(date)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return &DailyMetrics{Date: date, Sessions: []SessionMetrics{}}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var daily DailyMetrics
	if err := json.Unmarshal(data, &daily); err != nil {
		return nil, err
	}
	return &daily, nil
}

func (s *Storage) saveDailyMetrics(daily *DailyMetrics) error {
	data, err := json.MarshalIndent(daily, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.dailyPath(daily.Date), data, 0644)
}

func (s *Storage) dailyPath(date string) string {
	return filepath.Join(s.baseDir, dailyMetricsDir, fmt.Sprintf("%s.json", date))
}

// GetTotalMetrics aggregates every stored day.
func (s *Storage) GetTotalMetrics() (*TotalMetrics, error) {
	dates, err := s.listDates()
	if err != nil {
		return nil, err
	}

	total := &TotalMetrics{ByAction: make(map[string]int)}
	for _, date := range dates {
		daily, err := s.GetDailyMetrics(date)
		if err != nil {
			continue
		}
		if daily.SessionCount == 0 {
			continue
		}
		total.DaysActive++
		total.SessionCount += daily.SessionCount
		total.Dispatched += daily.Dispatched
		total.Cancelled += daily.Cancelled
		for action, count := range daily.ByAction {
			total.ByAction[action] += count
		}
		for _, sess := range daily.Sessions {
			total.TotalDuration += sess.Duration
		}
	}
	return total, nil
}

// GetRecentDays returns up to n most recent days that have data, newest
// first.
func (s *Storage) GetRecentDays(n int) ([]*DailyMetrics, error) {
	dates, err := s.listDates()
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var out []*DailyMetrics
	for _, date := range dates {
		if len(out) >= n {
			break
		}
		daily, err := s.GetDailyMetrics(date)
		if err != nil || daily.SessionCount == 0 {
			continue
		}
		out = append(out, daily)
	}
	return out, nil
}

func (s *Storage) ClearAllMetrics() error {
	dailyDir := filepath.Join(s.baseDir, dailyMetricsDir)
	if err := os.RemoveAll(dailyDir); err != nil {
		return err
	}
	return os.MkdirAll(dailyDir, 0755)
}

func (s *Storage) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, dailyMetricsDir))
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}
