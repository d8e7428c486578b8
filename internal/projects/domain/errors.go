package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNotFound is returned by stores when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	ErrNoDataProvided   = errors.New("no data provided")
	ErrMalformedBody    = errors.New("malformed JSON body")
	ErrNegativeProgress = errors.New("progress can only be positive")
)

// Resource names used in not-found messages.
const (
	ResourceProject  = "project"
	ResourceProgress = "project progress"
)

// NotFoundError reports that an addressed entity id does not resolve.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s with id %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ProjectNotFound builds the not-found error for a project id.
func ProjectNotFound(id int64) *NotFoundError {
	return &NotFoundError{Resource: ResourceProject, ID: strconv.FormatInt(id, 10)}
}

// ProgressNotFound builds the not-found error for a progress id.
func ProgressNotFound(id int64) *NotFoundError {
	return &NotFoundError{Resource: ResourceProgress, ID: strconv.FormatInt(id, 10)}
}

// ConsistencyError reports a progress entry addressed through a project
// that does not own it.
type ConsistencyError struct {
	ProgressID int64
	ProjectID  int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("project progress with id %d does not belong to project with id %d", e.ProgressID, e.ProjectID)
}
