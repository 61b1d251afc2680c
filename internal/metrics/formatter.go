package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StatsFormatter renders metrics for console display.
type StatsFormatter struct{}

func NewStatsFormatter() *StatsFormatter {
	return &StatsFormatter{}
}

// FormatSessionSummaryLines renders the post-session summary block that the
// daemon updates in place.
func (f *StatsFormatter) FormatSessionSummaryLines(session *SessionMetrics, today *DailyMetrics) []string {
	lines := []string{
		fmt.Sprintf("✅ %s in %s (depth %d)", describeResult(session), formatDuration(session.Duration), session.Depth),
	}
	if today != nil {
		lines = append(lines, fmt.Sprintf("📊 Today: %d sessions, %d actions dispatched, %d cancelled",
			today.SessionCount, today.Dispatched, today.Cancelled))
	}
	return lines
}

// FormatTotalStats renders all-time usage.
func (f *StatsFormatter) FormatTotalStats(total *TotalMetrics) string {
	var b strings.Builder
	b.WriteString("📊 Pinwheel Usage\n")
	b.WriteString(fmt.Sprintf("   Sessions:    %d over %d active days\n", total.SessionCount, total.DaysActive))
	b.WriteString(fmt.Sprintf("   Dispatched:  %d\n", total.Dispatched))
	b.WriteString(fmt.Sprintf("   Cancelled:   %d\n", total.Cancelled))
	b.WriteString(fmt.Sprintf("   Avg session: %s", formatDuration(total.AvgDuration())))

	if len(total.ByAction) > 0 {
		b.WriteString("\n   By action:")
		for _, action := range sortedActions(total.ByAction) {
			b.WriteString(fmt.Sprintf("\n     %-10s %d", action, total.ByAction[action]))
		}
	}
	return b.String()
}

// FormatWeeklyStats renders one line per recent day, newest first.
func (f *StatsFormatter) FormatWeeklyStats(days []*DailyMetrics) string {
	var b strings.Builder
	b.WriteString("📅 Recent days")
	for _, day := range days {
		b.WriteString(fmt.Sprintf("\n   %s: %d sessions, %d dispatched, %d cancelled",
			day.Date, day.SessionCount, day.Dispatched, day.Cancelled))
	}
	return b.String()
}

func describeResult(s *SessionMetrics) string {
	switch s.Result {
	case "dispatched":
		return fmt.Sprintf("Dispatched %s", s.Action)
	case "cancelled":
		return "Cancelled"
	case "edit-requested":
		return "Slot edit requested"
	default:
		return "Closed without selection"
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

func sortedActions(byAction map[string]int) []string {
	actions := make([]string, 0, len(byAction))
	for action := range byAction {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool {
		if byAction[actions[i]] != byAction[actions[j]] {
			return byAction[actions[i]] > byAction[actions[j]]
		}
		return actions[i] < actions[j]
	})
	return actions
}
