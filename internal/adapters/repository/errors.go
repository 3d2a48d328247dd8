package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound          = errors.New("score record not found")
	ErrUnknownResearcher = errors.New("unknown researcher")
	ErrUnknownLine       = errors.New("unknown research line")
	ErrUnknownArticle    = errors.New("unknown article")
)
