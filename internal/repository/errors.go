package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnNameTaken is returned when a board already has a column with the same name
	ErrColumnNameTaken = errors.New("column name already used on this board")

	ErrCardNotFound    = errors.New("card not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)
