package models

import "errors"

// Domain errors that can be returned by the directory store
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrKeyNotFound indicates the requested collection or flag has never
	// been written
	ErrKeyNotFound = errors.New("key not found")
)
