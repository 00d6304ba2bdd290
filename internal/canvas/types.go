// Package canvas is a read-only client for the subset of the Canvas LMS REST
// API that the sync engine consumes: active courses, course assignments and
// the caller's own enrollment scores.
package canvas

import "time"

// Course is an active course the token's user is enrolled in.
type Course struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CourseCode  string     `json:"course_code"`
	TermID      *int64     `json:"enrollment_term_id,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	Description *string    `json:"public_description,omitempty"`
}

// Assignment is one assignment of a course.
type Assignment struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	PointsPossible *float64   `json:"points_possible,omitempty"`
	HasSubmission  bool       `json:"has_submitted_submissions"`
	URL            string     `json:"html_url"`
}

// Grades is the score snapshot attached to an enrollment.
type Grades struct {
	CurrentScore *float64 `json:"current_score,omitempty"`
	FinalScore   *float64 `json:"final_score,omitempty"`
	CurrentGrade *string  `json:"current_grade,omitempty"`
	FinalGrade   *string  `json:"final_grade,omitempty"`
}

// Enrollment is the caller's enrollment in a course.
type Enrollment struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type,omitempty"`
	Grades *Grades `json:"grades,omitempty"`
}
