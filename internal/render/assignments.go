package render

import (
	"slices"
	"text/template"
	"time"

	"github.com/bianoble/canvas-sync/internal/canvas"
)

// Section headings, in the order sections are rendered.
const (
	HeadingUpcoming  = "📅 Upcoming Assignments"
	HeadingPast      = "✅ Past Assignments"
	HeadingNoDueDate = "📝 No Due Date"
)

var assignmentsTemplate = template.Must(template.New("assignments").Parse(`# Assignments - {{.CourseName}}

*Last synced: {{.SyncedAt}}*

{{range .Sections}}## {{.Heading}}

{{range .Entries}}### {{.Name}}
- **Due**: {{.Due}}
- **Points**: {{.Points}}
- **Status**: {{.Status}}
- **Link**: [View on Canvas]({{.URL}})

{{if .Description}}**Description:** {{.Description}}
{{end}}
---

{{end}}{{end}}`))

type assignmentsData struct {
	CourseName string
	SyncedAt   string
	Sections   []sectionData
}

type sectionData struct {
	Heading string
	Entries []entryData
}

type entryData struct {
	Name        string
	Due         string
	Points      string
	Status      string
	URL         string
	Description string
}

// Partition splits assignments into upcoming (due after now), past (due at
// or before now) and undated, each sorted by due date ascending. The sort is
// stable, so assignments due at the same instant keep their remote order.
func Partition(assignments []canvas.Assignment, now time.Time) (upcoming, past, undated []canvas.Assignment) {
	sorted := slices.Clone(assignments)
	slices.SortStableFunc(sorted, compareDue)

	for _, a := range sorted {
		switch {
		case a.DueAt == nil:
			undated = append(undated, a)
		case a.DueAt.After(now):
			upcoming = append(upcoming, a)
		default:
			past = append(past, a)
		}
	}
	return upcoming, past, undated
}

// compareDue orders by due date; assignments without one sort last.
func compareDue(a, b canvas.Assignment) int {
	switch {
	case a.DueAt == nil && b.DueAt == nil:
		return 0
	case a.DueAt == nil:
		return 1
	case b.DueAt == nil:
		return -1
	}
	return a.DueAt.Compare(*b.DueAt)
}

// Assignments renders the Assignments document. Empty sections are omitted.
func (r *Renderer) Assignments(course canvas.Course, assignments []canvas.Assignment, now time.Time) (string, error) {
	upcoming, past, undated := Partition(assignments, now)

	data := assignmentsData{
		CourseName: course.Name,
		SyncedAt:   r.formatDateTime(now),
	}
	for _, s := range []struct {
		heading string
		items   []canvas.Assignment
	}{
		{HeadingUpcoming, upcoming},
		{HeadingPast, past},
		{HeadingNoDueDate, undated},
	} {
		if len(s.items) == 0 {
			continue
		}
		sec := sectionData{Heading: s.heading}
		for _, a := range s.items {
			sec.Entries = append(sec.Entries, r.entry(a))
		}
		data.Sections = append(data.Sections, sec)
	}

	return execute(assignmentsTemplate, data)
}

func (r *Renderer) entry(a canvas.Assignment) entryData {
	e := entryData{
		Name:   a.Name,
		Due:    NoDueDate,
		Points: Ungraded,
		Status: NotSubmitted,
		URL:    a.URL,
	}
	if a.DueAt != nil {
		e.Due = r.formatDateTime(*a.DueAt)
	}
	if a.PointsPossible != nil {
		e.Points = formatNumber(*a.PointsPossible) + " points"
	}
	if a.HasSubmission {
		e.Status = Submitted
	}
	if a.Description != nil {
		e.Description = Summarize(*a.Description)
	}
	return e
}
