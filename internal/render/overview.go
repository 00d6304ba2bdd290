package render

import (
	"text/template"

	"github.com/bianoble/canvas-sync/internal/canvas"
)

// The Notes section is part of the template, so any notes a user adds are
// replaced on the next sync.
var overviewTemplate = template.Must(template.New("overview").Parse(`# {{.Name}}

**Course Code**: {{.Code}}
**Canvas ID**: {{.ID}}
**Term**: {{.Term}}
**Start Date**: {{.Start}}
**End Date**: {{.End}}

## Quick Links
- [Canvas Course Page]({{.CourseURL}})
- [[Assignments-{{.Folder}}|Assignments]]
- [[Grades-{{.Folder}}|Grades]]

## Course Description
{{.Description}}

## Notes
`))

type overviewData struct {
	Name        string
	Code        string
	ID          int64
	Term        string
	Start       string
	End         string
	CourseURL   string
	Folder      string
	Description string
}

// Overview renders the Course-Overview document for a course stored in the
// folder named folderName.
func (r *Renderer) Overview(course canvas.Course, folderName string) (string, error) {
	desc := NoDescription
	if course.Description != nil && *course.Description != "" {
		desc = *course.Description
	}

	return execute(overviewTemplate, overviewData{
		Name:        course.Name,
		Code:        course.CourseCode,
		ID:          course.ID,
		Term:        courseTerm(course),
		Start:       r.formatDate(course.StartAt),
		End:         r.formatDate(course.EndAt),
		CourseURL:   r.CourseURL(course.ID),
		Folder:      folderName,
		Description: desc,
	})
}
