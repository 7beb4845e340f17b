package entity

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidPost     = errors.New("invalid post")
	ErrNotOwner        = errors.New("not the owner")
)
