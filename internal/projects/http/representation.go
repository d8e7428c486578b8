package http

import (
	"time"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// TimestampLayout is the ISO-8601 form used for every timestamp on the wire.
const TimestampLayout = "2006-01-02T15:04:05.999999Z07:00"

// ProjectRepresentation is the public shape of a project.
type ProjectRepresentation struct {
	ID          int64                    `json:"id"`
	CreatedAsOf string                   `json:"created_asof"`
	UpdatedAsOf *string                  `json:"updated_asof"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Goal        int64                    `json:"goal"`
	Unit        string                   `json:"unit"`
	Progress    []ProgressRepresentation `json:"progress"`
}

// ProgressRepresentation is the public shape of a progress entry.
type ProgressRepresentation struct {
	ID          int64   `json:"id"`
	CreatedAsOf string  `json:"created_asof"`
	UpdatedAsOf *string `json:"updated_asof"`
	ProjectID   int64   `json:"project_id"`
	Value       int64   `json:"value"`
	Note        *string `json:"note"`
}

func timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func optionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timestamp(*t)
	return &s
}

func projectRepresentation(p *domain.Project) ProjectRepresentation {
	return ProjectRepresentation{
		ID:          p.ID,
		CreatedAsOf: timestamp(p.CreatedAsOf),
		UpdatedAsOf: optionalTimestamp(p.UpdatedAsOf),
		Title:       p.Title,
		Description: p.Description,
		Goal:        p.Goal,
		Unit:        p.Unit,
		Progress:    progressRepresentations(p.Progress),
	}
}

func projectRepresentations(ps []domain.Project) []ProjectRepresentation {
	out := make([]ProjectRepresentation, 0, len(ps))
	for i := range ps {
		out = append(out, projectRepresentation(&ps[i]))
	}
	return out
}

func progressRepresentation(p *domain.Progress) ProgressRepresentation {
	return ProgressRepresentation{
		ID:          p.ID,
		CreatedAsOf: timestamp(p.CreatedAsOf),
		UpdatedAsOf: optionalTimestamp(p.UpdatedAsOf),
		ProjectID:   p.ProjectID,
		Value:       p.Value,
		Note:        p.Note,
	}
}

func progressRepresentations(ps []domain.Progress) []ProgressRepresentation {
	out := make([]ProgressRepresentation, 0, len(ps))
	for i := range ps {
		out = append(out, progressRepresentation(&ps[i]))
	}
	return out
}
