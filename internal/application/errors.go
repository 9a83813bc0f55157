package application

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("there is no profile for this user")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment does not exist")
	ErrGitHubNotFound     = errors.New("no github profile found")
)
