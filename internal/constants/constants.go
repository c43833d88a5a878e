package constants

// Role is the role assigned to an authenticated user.
type Role string

// Status is the lifecycle status of a timetable.
type Status string

// GroupDimension selects how periods are grouped for display.
type GroupDimension string

// NotifyLevel classifies a navigation notification.
type NotifyLevel string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "smarttimetable"
	KeyringTokenUser  = "session-token"
	DefaultConfigDir  = "~/.config/smarttimetable"
	DefaultServerURL  = "http://localhost:8000/api/v1"
	Version           = "v0.3.0"

	// DateTimeFormat is the display format for timestamps
	DateTimeFormat = "Jan 2 2006 15:04"

	// TimeFormat is the HH:MM format used for period boundaries
	TimeFormat = "15:04"

	// Role constants
	RoleScheduler Role = "scheduler"
	RoleApprover  Role = "approver"
	RoleReadonly  Role = "readonly"

	// Timetable status constants
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"

	// Grouping dimensions
	GroupByBatch   GroupDimension = "batch"
	GroupByRoom    GroupDimension = "room"
	GroupByFaculty GroupDimension = "faculty"

	// Notification levels
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
	NotifyWarning NotifyLevel = "warning"
	NotifyInfo    NotifyLevel = "info"

	// NotificationDurationMs is how long a banner stays visible before auto-dismissal
	NotificationDurationMs = 5000

	// Period grid boundaries. The visible week is Monday through Saturday
	// and each day carries eight one-hour periods starting at 08:00.
	DaysPerWeek     = 6
	PeriodsPerDay   = 8
	FirstPeriodHour = 8

	// Session States
	StateLogin SessionState = iota
	StateOTP
	StateDashboard
	StateGenerator
	StateApproval
	StateViewer
	StateApprovalComment
)

// DayNames maps day index 0-5 to its display name. Sunday is not part of
// the teaching week.
var DayNames = [DaysPerWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// BatchPalette is the fixed 12-color palette used for batch coloring.
// Color assignment hashes the batch display name, so the palette size
// must stay stable or previously rendered schedules change color.
var BatchPalette = [12]string{
	"#4285F4", // Blue
	"#EA4335", // Red
	"#FBBC05", // Yellow
	"#34A853", // Green
	"#3498db", // Dodger Blue
	"#e74c3c", // Alizarin
	"#2ecc71", // Emerald
	"#f39c12", // Orange
	"#9b59b6", // Amethyst
	"#1abc9c", // Turquoise
	"#d35400", // Pumpkin
	"#c0392b", // Pomegranate
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleScheduler || r == RoleApprover || r == RoleReadonly
}

// Valid reports whether s is one of the known timetable statuses.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPending || s == StatusApproved
}

// Valid reports whether d is a known grouping dimension.
func (d GroupDimension) Valid() bool {
	return d == GroupByBatch || d == GroupByRoom || d == GroupByFaculty
}
