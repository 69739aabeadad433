package project

// Project is a server-owned project record. Dates are calendar dates in
// YYYY-MM-DD form; an empty string means the date is not set.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Fields holds the editable project fields. Create and update both send
// the full set; the server replaces whatever it had.
type Fields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Fields returns the committed editable fields of p.
func (p Project) Fields() Fields {
	return Fields{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

// WithFields returns a copy of p with f applied over its editable fields.
func (p Project) WithFields(f Fields) Project {
	p.Name = f.Name
	p.Description = f.Description
	p.StartDate = f.StartDate
	p.EndDate = f.EndDate
	return p
}
