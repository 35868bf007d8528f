package repository

import "errors"

// ErrNotFound is returned by all repositories when a lookup matches no row.
// Implementations translate their driver's sentinel so services and fakes
// share one contract.
var ErrNotFound = errors.New("record not found")
