// Package render turns remote course data into the three Markdown documents
// kept in each course folder. Output is a pure function of its inputs and the
// supplied clock, so re-rendering unchanged data only differs in the
// last-synced line.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"text/template"
	"time"

	"github.com/bianoble/canvas-sync/internal/canvas"
)

// Layouts used for every rendered date.
const (
	DateLayout     = "1/2/2006"
	DateTimeLayout = "1/2/2006, 3:04:05 PM"
)

// Placeholder text.
const (
	NotAvailable  = "N/A"
	NoDescription = "No description available"
	NoDueDate     = "No due date"
	Ungraded      = "Ungraded"
	Submitted     = "✓ Submitted"
	NotSubmitted  = "○ Not submitted"
)

// MaxDescription is the rune limit for assignment descriptions.
const MaxDescription = 200

// OverviewFile is the overview document name inside a course folder.
const OverviewFile = "Course-Overview.md"

// AssignmentsFile returns the assignments document name for a folder.
func AssignmentsFile(folderName string) string {
	return "Assignments-" + folderName + ".md"
}

// GradesFile returns the grades document name for a folder.
func GradesFile(folderName string) string {
	return "Grades-" + folderName + ".md"
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Renderer renders documents for one Canvas instance.
type Renderer struct {
	// BaseURL is the Canvas instance URL without a trailing slash.
	BaseURL string
	// Location is the zone dates are shown in; nil means time.Local.
	Location *time.Location
}

// CourseURL is the remote course page.
func (r *Renderer) CourseURL(courseID int64) string {
	return fmt.Sprintf("%s/courses/%d", r.BaseURL, courseID)
}

// GradesURL is the remote grades page of a course.
func (r *Renderer) GradesURL(courseID int64) string {
	return r.CourseURL(courseID) + "/grades"
}

func (r *Renderer) loc() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

func (r *Renderer) formatDate(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.In(r.loc()).Format(DateLayout)
}

func (r *Renderer) formatDateTime(t time.Time) string {
	return t.In(r.loc()).Format(DateTimeLayout)
}

// StripTags removes every <...> sequence from s.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Summarize strips markup from an assignment description and truncates it
// to MaxDescription runes, appending "..." only when something was cut.
func Summarize(description string) string {
	stripped := []rune(StripTags(description))
	if len(stripped) <= MaxDescription {
		return string(stripped)
	}
	return string(stripped[:MaxDescription]) + "..."
}

// formatNumber prints a float the shortest way that round-trips, so 10
// renders as "10" and 91.5 as "91.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

func courseTerm(c canvas.Course) string {
	if c.TermID == nil || *c.TermID == 0 {
		return NotAvailable
	}
	return strconv.FormatInt(*c.TermID, 10)
}
