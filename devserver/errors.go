package devserver

import "errors"

var (
	ErrNoPermission = errors.New("you have no permission for this action")
	ErrNotFound     = errors.New("record not found")
)
