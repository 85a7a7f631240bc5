package display

import (
	"time"

	"github.com/frigiddesert/coffee-bakery-sign/internal/config"
)

// TodayKey formats the daily reset boundary key (YYYY-MM-DD) for a local time.
func TodayKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// RoastIdle reports whether the roast column should show the day's history
// ("Fresh Roasted") instead of a live "Roasting Now" item.
//
// A roast within the last 30 minutes always means live. After the configured
// idle hour, existing roasts with no recent activity flip to history. With
// preserved-history resets, roasts that carry no activity timestamp at all
// are yesterday's data and always render as history.
func RoastIdle(s *State, now time.Time, cfg *config.Config) bool {
	last, ok := parseTime(s.LastRoastTime)
	if ok && now.Sub(last) <= recentActivity {
		return false
	}

	if cfg.ResetPreservesHistory && !ok && len(s.RoastsToday) > 0 {
		return true
	}

	if now.Hour() >= cfg.RoastIdleHour && len(s.RoastsToday) > 0 {
		return true
	}

	return false
}

// BakingMode derives the tri-state bake column heading.
func BakingMode(s *State, now time.Time, cfg *config.Config) string {
	last, ok := parseTime(s.LastBakeTime)
	if ok && now.Sub(last) <= recentActivity {
		return ModeBaking
	}

	if cfg.ResetPreservesHistory && !ok && len(s.BakeItems) > 0 {
		return ModeFreshBaked
	}

	switch {
	case now.Hour() >= 18:
		return ModeFreshBaked
	case now.Hour() >= 14:
		return ModeBakedToday
	default:
		return ModeBaking
	}
}

// BakeWindowIndex points at "where we are" in the bake list as the shift
// progresses. Purely presentational; recomputed on every poll.
func BakeWindowIndex(items []string, now time.Time, cfg *config.Config) int {
	if len(items) == 0 {
		return 0
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), cfg.ShiftStartHour, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), cfg.ShiftEndHour, 0, 0, 0, now.Location())

	if !now.After(start) {
		return 0
	}
	if !now.Before(end) {
		return max(0, len(items)-3)
	}

	totalMinutes := int(end.Sub(start).Minutes())
	elapsed := int(now.Sub(start).Minutes())

	idx := elapsed * len(items) / max(1, totalMinutes)
	return min(idx, len(items)-1)
}
