package constants

const (
	AppName            = "horizon"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/horizon/horizon.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Planning horizon bounds in days
	MinHorizonDays     = 1
	MaxHorizonDays     = 90
	DefaultHorizonDays = 14

	// Default slot capacities in minutes
	DefaultMorningCapacity   = 180
	DefaultAfternoonCapacity = 150
	DefaultEveningCapacity   = 120

	// Slot clock windows
	MorningStart   = "06:00"
	MorningEnd     = "12:00"
	AfternoonStart = "12:00"
	AfternoonEnd   = "17:00"
	EveningStart   = "17:00"
	EveningEnd     = "22:00"

	// Default HTTP listen address for `horizon serve`
	DefaultListenAddr = ":8433"
)
