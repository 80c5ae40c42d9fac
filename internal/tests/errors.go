package tests

import "errors"

var (
	ErrNotFound         = errors.New("test not found")
	ErrAlreadyCompleted = errors.New("test already completed")
	ErrForbidden        = errors.New("not the owner of this test")
	ErrInvalidAnswers   = errors.New("invalid answers")
)
