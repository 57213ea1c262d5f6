package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "punchcal"
	DefaultConfigPath  = "~/.config/punchcal/punchcal.db"
	DefaultKeyringUser = "session-token"
	DatabaseKeyring    = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the date-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the month-key format used to bucket cached records (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the punch time format (HH:MM)
	TimeFormat = "15:04"

	// API constants
	DefaultAPITimeout = 30 * time.Second
	RequestIDHeader   = "X-Request-ID"

	// ProductionHost marks the deployed login callback host
	ProductionHost = "0rigind1865-bit.github.io"

	// AdminDept is the department value the backend reports for administrators
	AdminDept = "管理員"

	// Environment variables
	EnvSessionToken = "PUNCHCAL_SESSION_TOKEN"
	EnvDBConnection = "PUNCHCAL_DB_CONNECTION"
	EnvTestPostgres = "PUNCHCAL_TEST_POSTGRES"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateMonthly
	StateAdmin
	StateAdjustForm
	StateEmployeePicker
)
