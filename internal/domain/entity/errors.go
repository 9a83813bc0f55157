package entity

import (
	"errors"

	"github.com/google/uuid"
)

// Aggregate rule violations. Handlers map these to 4xx responses.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrForbidden     = errors.New("user not authorized")
	ErrAlreadyLiked  = errors.New("post already liked")
	ErrNotLiked      = errors.New("post has not yet been liked")
)

// newLocalID generates identifiers for embedded sequence elements.
var newLocalID = uuid.NewString
