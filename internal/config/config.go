package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable the service reads from the environment.
// Loaded once in main and passed into constructors.
type Config struct {
	Timezone         *time.Location
	ResetHour        int
	ShiftStartHour   int
	ShiftEndHour     int
	StatePollSeconds int
	EmailPollSeconds int
	RoastsMax        int
	RoastIdleHour    int

	// Historical behavior toggles (the deployed revisions disagreed).
	ResetPreservesHistory bool
	CandidateCleaning     bool

	MenuItemsJSON string
	MenuItemsFile string

	MistralAPIKey string

	IMAPAddr             string
	GmailUser            string
	GmailAppPassword     string
	AllowedSenders       []string
	EmailSubjectTrigger  string
	EmailSubjectPasscode string

	APIPasscode string

	DatabaseURL string
	Port        string
}

// Load reads the full configuration from the environment. DATABASE_URL is
// the only hard requirement; everything else has a default or is optional.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	tzName := getenv("APP_TZ", "America/Denver")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TZ %q: %w", tzName, err)
	}

	cfg := &Config{
		Timezone:         loc,
		ResetHour:        getenvInt("RESET_HOUR", 6),
		ShiftStartHour:   getenvInt("SHIFT_START_HOUR", 7),
		ShiftEndHour:     getenvInt("SHIFT_END_HOUR", 15),
		StatePollSeconds: getenvInt("STATE_POLL_SECONDS", 10),
		EmailPollSeconds: getenvInt("EMAIL_POLL_SECONDS", 60),
		RoastsMax:        getenvInt("ROASTS_MAX", 30),
		RoastIdleHour:    getenvInt("ROAST_IDLE_HOUR", 14),

		ResetPreservesHistory: getenvBool("RESET_PRESERVE_HISTORY", false),
		CandidateCleaning:     getenvBool("CANDIDATE_CLEANING", true),

		MenuItemsJSON: strings.TrimSpace(os.Getenv("MENU_ITEMS")),
		MenuItemsFile: strings.TrimSpace(os.Getenv("MENU_ITEMS_FILE")),

		MistralAPIKey: strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),

		IMAPAddr:             getenv("IMAP_ADDR", "imap.gmail.com:993"),
		GmailUser:            strings.TrimSpace(os.Getenv("GMAIL_USER")),
		GmailAppPassword:     strings.TrimSpace(os.Getenv("GMAIL_APP_PASSWORD")),
		AllowedSenders:       splitList(os.Getenv("ALLOWED_SENDERS")),
		EmailSubjectTrigger:  strings.TrimSpace(os.Getenv("EMAIL_SUBJECT_TRIGGER")),
		EmailSubjectPasscode: strings.TrimSpace(os.Getenv("EMAIL_SUBJECT_PASSCODE")),

		APIPasscode: strings.TrimSpace(os.Getenv("API_PASSCODE")),

		DatabaseURL: dbURL,
		Port:        getenv("PORT", "8080"),
	}

	return cfg, nil
}

// Now returns the current wall-clock time in the configured timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Timezone)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
