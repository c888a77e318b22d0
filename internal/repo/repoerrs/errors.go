package repoerrs

import "errors"

var (
	// ErrNotFound means the requested entity or version row does not exist.
	// It is an expected outcome, not a defect.
	ErrNotFound = errors.New("not found")

	// ErrConstraint means the database rejected a write because of a
	// foreign key, unique or check constraint.
	ErrConstraint = errors.New("constraint violation")
)
