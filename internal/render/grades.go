package render

import (
	"text/template"
	"time"

	"github.com/bianoble/canvas-sync/internal/canvas"
)

var gradesTemplate = template.Must(template.New("grades").Parse(`# Grades - {{.CourseName}}

*Last synced: {{.SyncedAt}}*

## Current Standing
- **Current Score**: {{.CurrentScore}}
- **Current Grade**: {{.CurrentGrade}}
- **Final Score**: {{.FinalScore}}
- **Final Grade**: {{.FinalGrade}}

## Links
- [View Grades on Canvas]({{.GradesURL}})

---

*Grades are synced from Canvas LMS*
`))

type gradesData struct {
	CourseName   string
	SyncedAt     string
	CurrentScore string
	CurrentGrade string
	FinalScore   string
	FinalGrade   string
	GradesURL    string
}

// FormatScore renders a percentage score, or N/A when absent.
func FormatScore(score *float64) string {
	if score == nil {
		return NotAvailable
	}
	return formatNumber(*score) + "%"
}

// Grades renders the Grades document from an enrollment's score snapshot.
// A nil snapshot renders every value as N/A.
func (r *Renderer) Grades(course canvas.Course, grades *canvas.Grades, now time.Time) (string, error) {
	if grades == nil {
		grades = &canvas.Grades{}
	}

	return execute(gradesTemplate, gradesData{
		CourseName:   course.Name,
		SyncedAt:     r.formatDateTime(now),
		CurrentScore: FormatScore(grades.CurrentScore),
		CurrentGrade: orNA(grades.CurrentGrade),
		FinalScore:   FormatScore(grades.FinalScore),
		FinalGrade:   orNA(grades.FinalGrade),
		GradesURL:    r.GradesURL(course.ID),
	})
}
