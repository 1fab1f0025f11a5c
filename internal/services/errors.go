package services

import "errors"

var (
	// ErrNotFound means the referenced ticket, review or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the requesting user is not the owner of the record.
	ErrForbidden = errors.New("forbidden: only the owner may do this")
)
