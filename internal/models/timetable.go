package models

import (
	"time"

	"github.com/mlsaran/smarttimetable/internal/constants"
)

// NamedRef is a read-only reference to a master-data entity as embedded in
// a period. The front end only ever needs the display fields.
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubjectRef carries the subject code alongside its name.
type SubjectRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Period is a single scheduled hour within a timetable. Day is 0-5
// (Monday-Saturday), PeriodNo is 1-8. Conflict freedom across rooms,
// faculty and batches is the generator's responsibility; the client
// displays whatever it receives.
type Period struct {
	ID       int        `json:"id"`
	Day      int        `json:"day"`
	PeriodNo int        `json:"period_no"`
	Batch    NamedRef   `json:"batch"`
	Room     NamedRef   `json:"room"`
	Faculty  NamedRef   `json:"faculty"`
	Subject  SubjectRef `json:"subject"`
}

// Timetable is the client-side view of a timetable record. The backend owns
// it; anything held here is a transient, possibly stale copy.
type Timetable struct {
	ID         int              `json:"id"`
	Status     constants.Status `json:"status"`
	Version    int              `json:"version"`
	CreatedBy  int              `json:"created_by"`
	Periods    []Period         `json:"periods"`
	CreatedAt  time.Time        `json:"created_at"`
	ApprovedAt *time.Time       `json:"approved_at,omitempty"`
	Comment    string           `json:"comment,omitempty"`
	PublicURL  string           `json:"public_url,omitempty"`
}

// Editable reports whether the timetable can still be regenerated or sent
// for approval.
func (t Timetable) Editable() bool {
	return t.Status == constants.StatusDraft
}

// Suggestion is one constraint-relaxation hint returned when generation
// is infeasible.
type Suggestion struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Solution string `json:"solution"`
}

// Infeasibility is the diagnostic payload returned when generation cannot
// satisfy the constraints. It is a first-class outcome, not an error.
type Infeasibility struct {
	Error       string       `json:"error"`
	Suggestions []Suggestion `json:"suggestions"`
}

// User is the authenticated account identity returned by /auth/me.
type User struct {
	ID    int            `json:"id"`
	Email string         `json:"email"`
	Role  constants.Role `json:"role"`
}

// Artifact is an exported timetable document as delivered on the wire:
// base64 content plus the filename and MIME type the server chose.
type Artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}
