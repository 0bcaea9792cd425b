package admission

import "errors"

var (
	ErrWrongPassword = errors.New("wrong password")
)
