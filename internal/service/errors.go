package service

import "errors"

var (
	ErrTenderNotFound       = errors.New("tender not found")
	ErrBidNotFound          = errors.New("bid not found")
	ErrEmployeeNotFound     = errors.New("employee with given username not found")
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrForbidden means the requester is not the entity's creator. Ownership
	// is a plain string comparison against creator_username.
	ErrForbidden = errors.New("requester is not the creator")

	ErrNoSuchVersion = errors.New("no such version")
	ErrNoNewChanges  = errors.New("no new values")
	ErrInvalidStatus = errors.New("invalid status value")
)
