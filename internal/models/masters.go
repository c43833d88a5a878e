package models

// Master-data records. These are opaque to the workflow core: the client
// lists, creates and deletes them but applies no domain logic beyond
// relaying them to the backend.

type Room struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"`
}

type Faculty struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Batch struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Semester int    `json:"semester"`
}

type Subject struct {
	ID             int    `json:"id,omitempty"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	PeriodsPerWeek int    `json:"periods_per_week"`
}

// FixedSlot pins a batch/subject pair to a specific day and period before
// generation runs.
type FixedSlot struct {
	ID        int `json:"id,omitempty"`
	Day       int `json:"day"`
	PeriodNo  int `json:"period_no"`
	BatchID   int `json:"batch_id"`
	SubjectID int `json:"subject_id"`
	RoomID    int `json:"room_id,omitempty"`
	FacultyID int `json:"faculty_id,omitempty"`
}
