package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxDocumentBytes bounds how much of a source body is read.
const DefaultMaxDocumentBytes int64 = 4 * 1024 * 1024

// DecodeDocument parses a JSON document. Absent list fields decode as empty
// lists; anything that is not a JSON object is a parse error.
func DecodeDocument(r io.Reader, maxBytes int64) (Document, error) {
	if r == nil {
		return Document{}, NewError(KindValidation, "document reader is nil", nil)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}

	payload, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Document{}, NewError(KindFetch, "read document", err)
	}
	if int64(len(payload)) > maxBytes {
		return Document{}, NewError(KindParse, fmt.Sprintf("document exceeds %d bytes", maxBytes), nil)
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, NewError(KindParse, "document must be a JSON object", nil)
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, NewError(KindParse, "decode document", err)
	}
	return doc.normalized(), nil
}

func (d Document) normalized() Document {
	if d.Contact == nil {
		d.Contact = []ContactItem{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	for i := range d.Experience {
		if d.Experience[i].Achievements == nil {
			d.Experience[i].Achievements = []string{}
		}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].Tags == nil {
			d.Projects[i].Tags = []string{}
		}
	}
	return d
}

// Clone returns a deep copy so callers never share slices with a rendering pass.
func (d Document) Clone() Document {
	out := d
	out.Contact = append([]ContactItem(nil), d.Contact...)
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]string(nil), d.Skills...)
	out.Experience = make([]Experience, len(d.Experience))
	for i, job := range d.Experience {
		job.Achievements = append([]string(nil), job.Achievements...)
		out.Experience[i] = job
	}
	out.Projects = make([]Project, len(d.Projects))
	for i, project := range d.Projects {
		project.Tags = append([]string(nil), project.Tags...)
		out.Projects[i] = project
	}
	return out.normalized()
}

// Issue describes a missing or suspicious field.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Validate reports fields a complete résumé is expected to carry. Rendering
// does not depend on it; absent fields render as empty regions.
func (d Document) Validate() []Issue {
	var issues []Issue
	if strings.TrimSpace(d.Profile.Name) == "" {
		issues = append(issues, Issue{Field: "profile.name", Message: "is empty"})
	}
	if strings.TrimSpace(d.Profile.Title) == "" {
		issues = append(issues, Issue{Field: "profile.title", Message: "is empty"})
	}
	if len(d.Contact) == 0 {
		issues = append(issues, Issue{Field: "contact", Message: "has no entries"})
	}
	for i, item := range d.Contact {
		if strings.TrimSpace(item.Text) == "" {
			issues = append(issues, Issue{Field: fmt.Sprintf("contact[%d].text", i), Message: "is empty"})
		}
	}
	if strings.TrimSpace(d.Summary) == "" {
		issues = append(issues, Issue{Field: "summary", Message: "is empty"})
	}
	for i, job := range d.Experience {
		if strings.TrimSpace(job.Role) == "" {
			issues = append(issues, Issue{Field: fmt.Sprintf("experience[%d].role", i), Message: "is empty"})
		}
		if strings.TrimSpace(job.Company) == "" {
			issues = append(issues, Issue{Field: fmt.Sprintf("experience[%d].company", i), Message: "is empty"})
		}
	}
	for i, project := range d.Projects {
		if strings.TrimSpace(project.Title) == "" {
			issues = append(issues, Issue{Field: fmt.Sprintf("projects[%d].title", i), Message: "is empty"})
		}
	}
	return issues
}

// ValidationError joins issues into a validation error, or returns nil.
func ValidationError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.String())
	}
	return NewError(KindValidation, "document is incomplete: "+strings.Join(parts, "; "), nil)
}
