package display

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/frigiddesert/coffee-bakery-sign/internal/config"
)

// Validation errors. Anything else returned by the mutating operations is a
// persistence failure.
var (
	ErrMissingItem  = errors.New("missing item")
	ErrNoValidItems = errors.New("no valid items provided")
)

// Service owns every mutation of the persisted display state. Each operation
// is one read-modify-write cycle; concurrent triggers race under
// last-writer-wins, which is acceptable for a single-kiosk deployment.
type Service struct {
	repo Repository
	cfg  *config.Config
	now  func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		now:  cfg.Now,
	}
}

// EnsureDailyReset advances the state to today once the local clock passes
// the reset hour. Idempotent: a second call on the same day is a no-op.
func (s *Service) EnsureDailyReset(ctx context.Context) error {
	local := s.now()
	tkey := TodayKey(local)

	st, err := s.repo.LoadState(ctx)
	if err != nil {
		return err
	}

	if st.Date == tkey || local.Hour() < s.cfg.ResetHour {
		return nil
	}

	log.Printf("daily reset: %s -> %s", st.Date, tkey)

	st.Date = tkey
	st.RoastCurrent = ""
	st.LastRoastTime = ""
	st.LastBakeTime = ""
	st.UpdatedAt = local.Format(time.RFC3339)

	if !s.cfg.ResetPreservesHistory {
		st.RoastsToday = []string{}
		st.BakeItems = []string{}
		st.BakeSource = ""
	}

	return s.repo.SaveState(ctx, st)
}

// ApplyRoast records the item now being roasted. Immediate repeats are not
// appended to the day's list; the list is truncated from the front at
// RoastsMax.
func (s *Service) ApplyRoast(ctx context.Context, item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return ErrMissingItem
	}

	st, err := s.repo.LoadState(ctx)
	if err != nil {
		return err
	}

	local := s.now()
	st.Date = TodayKey(local)
	st.RoastCurrent = item

	if n := len(st.RoastsToday); n == 0 || st.RoastsToday[n-1] != item {
		st.RoastsToday = append(st.RoastsToday, item)
		if len(st.RoastsToday) > s.cfg.RoastsMax {
			st.RoastsToday = st.RoastsToday[len(st.RoastsToday)-s.cfg.RoastsMax:]
		}
	}

	ts := local.Format(time.RFC3339)
	st.UpdatedAt = ts
	st.LastRoastTime = ts

	return s.repo.SaveState(ctx, st)
}

// SanitizeBakeItems trims entries, drops empties and caps the list. It does
// not deduplicate: dedup belongs to the reconciliation pipeline upstream.
func SanitizeBakeItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == MaxBakeItems {
			break
		}
	}
	return out
}

// ApplyBake replaces the bake list wholesale. Returns how many items were
// stored.
func (s *Service) ApplyBake(ctx context.Context, items []string, source string) (int, error) {
	clean := SanitizeBakeItems(items)
	if len(clean) == 0 {
		return 0, ErrNoValidItems
	}
	if source == "" {
		source = "API"
	}

	st, err := s.repo.LoadState(ctx)
	if err != nil {
		return 0, err
	}

	local := s.now()
	st.Date = TodayKey(local)
	st.BakeItems = clean
	st.BakeSource = source

	ts := local.Format(time.RFC3339)
	st.UpdatedAt = ts
	st.LastBakeTime = ts

	if err := s.repo.SaveState(ctx, st); err != nil {
		return 0, err
	}
	return len(clean), nil
}

// Snapshot runs the reset check and derives the current view model. The
// derivation itself never fails: absent or malformed data renders as "no
// recent activity".
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := s.EnsureDailyReset(ctx); err != nil {
		return nil, err
	}

	st, err := s.repo.LoadState(ctx)
	if err != nil {
		return nil, err
	}

	local := s.now()
	return &Snapshot{
		Date:              st.Date,
		RoastCurrent:      st.RoastCurrent,
		RoastsToday:       st.RoastsToday,
		BakeItems:         st.BakeItems,
		BakeCurrentIndex:  BakeWindowIndex(st.BakeItems, local, s.cfg),
		UpdatedAt:         st.UpdatedAt,
		DisplayMode:       RoastIdle(st, local, s.cfg),
		BakingDisplayMode: BakingMode(st, local, s.cfg),
	}, nil
}

// Raw returns the persisted state untouched, for the debug endpoint.
func (s *Service) Raw(ctx context.Context) (*State, error) {
	return s.repo.LoadState(ctx)
}
