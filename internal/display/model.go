package display

import "time"

// Persistence keys for the two KV records.
const (
	StateKey     = "STATE"
	MailStateKey = "MAIL_STATE"
)

// MaxBakeItems caps the bake list regardless of what a caller submits.
const MaxBakeItems = 200

// recentActivity is how long a roast/bake update counts as "happening now".
const recentActivity = 30 * time.Minute

// State is the single shared record behind the kiosk display. All timestamps
// are RFC3339 strings; empty or malformed values mean "no recent activity".
type State struct {
	Date          string   `json:"date"`
	RoastCurrent  string   `json:"roast_current"`
	RoastsToday   []string `json:"roasts_today"`
	BakeItems     []string `json:"bake_items"`
	BakeSource    string   `json:"bake_source"`
	UpdatedAt     string   `json:"updated_at"`
	LastRoastTime string   `json:"last_roast_time"`
	LastBakeTime  string   `json:"last_bake_time"`
}

// NewState returns the empty default used when nothing has been persisted.
func NewState() *State {
	return &State{
		RoastsToday: []string{},
		BakeItems:   []string{},
	}
}

// MailState tracks the highest mailbox UID already ingested.
type MailState struct {
	LastUID uint32 `json:"last_uid"`
}

// Snapshot is the view model handed to the polling front-end.
type Snapshot struct {
	Date              string   `json:"date"`
	RoastCurrent      string   `json:"roast_current"`
	RoastsToday       []string `json:"roasts_today"`
	BakeItems         []string `json:"bake_items"`
	BakeCurrentIndex  int      `json:"bake_current_index"`
	UpdatedAt         string   `json:"updated_at"`
	DisplayMode       bool     `json:"display_mode"`
	BakingDisplayMode string   `json:"baking_display_mode"`
}

// Baking display modes.
const (
	ModeBaking     = "baking"
	ModeBakedToday = "baked_today"
	ModeFreshBaked = "fresh_baked"
)

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
