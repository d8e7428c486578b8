package domain

import (
	"strings"
	"time"
)

// DefaultUnit is the unit a project falls back to when none is given.
const DefaultUnit = "hours"

// Project is a trackable goal with a target quantity and unit.
// It is storage-agnostic and shared by the repository, cache and HTTP layers.
type Project struct {
	ID          int64      `json:"id"`
	CreatedAsOf time.Time  `json:"created_asof"`
	UpdatedAsOf *time.Time `json:"updated_asof,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        int64      `json:"goal"`
	Unit        string     `json:"unit"`
	Progress    []Progress `json:"progress"`
}

// Progress is one incremental contribution toward a project's goal.
// Value is an increment, not a running total.
type Progress struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	CreatedAsOf time.Time  `json:"created_asof"`
	UpdatedAsOf *time.Time `json:"updated_asof,omitempty"`
	Value       int64      `json:"value"`
	Note        *string    `json:"note,omitempty"`
}

// ProjectFields are the client-supplied attributes of a project.
type ProjectFields struct {
	Title       string
	Description string
	Goal        int64
	Unit        string
}

// ProgressFields are the client-supplied attributes of a progress entry.
type ProgressFields struct {
	Value int64
	Note  *string
}

// Stats is a point-in-time summary of the tracker's contents.
type Stats struct {
	Projects        int64 `json:"projects"`
	ProgressEntries int64 `json:"progress_entries"`
	GoalsReached    int64 `json:"goals_reached"`
}

// NewProject builds an unsaved project stamped with now.
func NewProject(f ProjectFields, now time.Time) *Project {
	p := &Project{CreatedAsOf: now, Progress: []Progress{}}
	p.assign(f)
	return p
}

// Replace overwrites every mutable field, even when a value is unchanged,
// and stamps the mutation time.
func (p *Project) Replace(f ProjectFields, now time.Time) {
	p.assign(f)
	p.UpdatedAsOf = &now
}

func (p *Project) assign(f ProjectFields) {
	p.Title = f.Title
	p.Description = f.Description
	p.Goal = f.Goal
	p.Unit = f.Unit
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = DefaultUnit
	}
}

// NewProgress builds an unsaved progress entry for projectID stamped with now.
func NewProgress(projectID int64, f ProgressFields, now time.Time) *Progress {
	return &Progress{
		ProjectID:   projectID,
		CreatedAsOf: now,
		Value:       f.Value,
		Note:        f.Note,
	}
}

// BelongsTo reports whether the entry is owned by projectID.
func (p *Progress) BelongsTo(projectID int64) bool {
	return p.ProjectID == projectID
}
