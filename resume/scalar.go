package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// scalar decodes a display field from a JSON string, number or boolean.
// Numbers keep their literal text; null decodes as empty.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = scalar(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected a string or number, got %s", data)
		}
		*s = scalar(n.String())
	}
	return nil
}

func scalarStrings(values []scalar) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Profile    Profile       `json:"profile"`
		Contact    []ContactItem `json:"contact"`
		Education  []Education   `json:"education"`
		Skills     []scalar      `json:"skills"`
		Summary    scalar        `json:"summary"`
		Experience []Experience  `json:"experience"`
		Projects   []Project     `json:"projects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{
		Profile:    raw.Profile,
		Contact:    raw.Contact,
		Education:  raw.Education,
		Skills:     scalarStrings(raw.Skills),
		Summary:    string(raw.Summary),
		Experience: raw.Experience,
		Projects:   raw.Projects,
	}
	return nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      scalar `json:"name"`
		Title     scalar `json:"title"`
		AvatarURL scalar `json:"avatarUrl"`
		Initials  scalar `json:"initials"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile{
		Name:      string(raw.Name),
		Title:     string(raw.Title),
		AvatarURL: string(raw.AvatarURL),
		Initials:  string(raw.Initials),
	}
	return nil
}

func (c *ContactItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Icon scalar `json:"icon"`
		Text scalar `json:"text"`
		Link scalar `json:"link"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ContactItem{Icon: string(raw.Icon), Text: string(raw.Text), Link: string(raw.Link)}
	return nil
}

func (e *Education) UnmarshalJSON(data []byte) error {
	var raw struct {
		Degree scalar `json:"degree"`
		School scalar `json:"school"`
		Year   scalar `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Education{Degree: string(raw.Degree), School: string(raw.School), Year: string(raw.Year)}
	return nil
}

func (e *Experience) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role         scalar   `json:"role"`
		Company      scalar   `json:"company"`
		Period       scalar   `json:"period"`
		ColorClass   scalar   `json:"colorClass"`
		PeriodClass  scalar   `json:"periodClass"`
		Description  scalar   `json:"description"`
		Achievements []scalar `json:"achievements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Experience{
		Role:         string(raw.Role),
		Company:      string(raw.Company),
		Period:       string(raw.Period),
		ColorClass:   string(raw.ColorClass),
		PeriodClass:  string(raw.PeriodClass),
		Description:  string(raw.Description),
		Achievements: scalarStrings(raw.Achievements),
	}
	return nil
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       scalar   `json:"title"`
		Description scalar   `json:"description"`
		Tags        []scalar `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project{
		Title:       string(raw.Title),
		Description: string(raw.Description),
		Tags:        scalarStrings(raw.Tags),
	}
	return nil
}
