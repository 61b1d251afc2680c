package metrics

import (
	"time"
)

type SessionMetrics struct {
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Result    string        `json:"result"`           // dispatched, cancelled, no-selection, edit-requested
	Action    string        `json:"action,omitempty"` // keystroke, command, launch (dispatched only)
	Depth     int           `json:"depth"`            // max wheel stack depth reached
}

type DailyMetrics struct {
	Date         string           `json:"date"`
	Sessions     []SessionMetrics `json:"sessions"`
	SessionCount int              `json:"session_count"`
	Dispatched   int              `json:"dispatched"`
	Cancelled    int              `json:"cancelled"`
	ByAction     map[string]int   `json:"by_action,omitempty"`
}

type TotalMetrics struct {
	SessionCount  int
	Dispatched    int
	Cancelled     int
	ByAction      map[string]int
	DaysActive    int
	TotalDuration time.Duration
}

// AvgDuration returns the mean session duration, or zero with no sessions.
func (t *TotalMetrics) AvgDuration() time.Duration {
	if t.SessionCount == 0 {
		return 0
	}
	return t.TotalDuration / time.Duration(t.SessionCount)
}

type Manager struct {
	storage *Storage
}

func NewManager(storagePath string) (*Manager, error) {
	storage, err := NewStorage(storagePath)
	if err != nil {
		return nil, err
	}
	return &Manager{storage: storage}, nil
}

// RecordSession appends one finished wheel session to today's metrics.
func (m *Manager) RecordSession(result, action string, depth int, duration time.Duration) (*SessionMetrics, error) {
	session := &SessionMetrics{
		Timestamp: time.Now(),
		Duration:  duration,
		Result:    result,
		Action:    action,
		Depth:     depth,
	}
	if err := m.storage.SaveSession(session); err != nil {
		return session, err
	}
	return session, nil
}

func (m *Manager) GetTodayMetrics() (*DailyMetrics, error) {
	today := time.Now().Format("2006-01-02")
	return m.storage.GetDailyMetrics(today)
}

func (m *Manager) GetTotalMetrics() (*TotalMetrics, error) {
	return m.storage.GetTotalMetrics()
}

func (m *Manager) GetRecentDays(days int) ([]*DailyMetrics, error) {
	return m.storage.GetRecentDays(days)
}

func (m *Manager) ClearAllMetrics() error {
	return m.storage.ClearAllMetrics()
}
