package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrEditConflict     = errors.New("edit conflict")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)
