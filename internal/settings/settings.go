package settings

// Settings is the library-wide lending policy. A single row holds it; reads
// create the defaults lazily so a fresh database behaves sensibly.
type Settings struct {
	LibraryName        string `json:"library_name"`
	Address            string `json:"address,omitempty"`
	Contact            string `json:"contact,omitempty"`
	DailyRateCents     int64  `json:"daily_rate_cents"`
	MaxPenaltyCents    int64  `json:"max_penalty_cents"`
	LoanDays           int    `json:"loan_days"`
	MaxBooks           int    `json:"max_books"`
	HoldThresholdCents int64  `json:"hold_threshold_cents"`
}

// Defaults mirrors the seeded policy of a new installation.
func Defaults() Settings {
	return Settings{
		LibraryName:        "Central City Library",
		Address:            "123 Main Street, City",
		Contact:            "+1 234 567 8900",
		DailyRateCents:     500,
		MaxPenaltyCents:    50000,
		LoanDays:           14,
		MaxBooks:           3,
		HoldThresholdCents: 1000,
	}
}
