package utils

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrMissionNotAccepted = errors.New("mission invitation not accepted")
	ErrAccuracyTooLow     = errors.New("gps accuracy insufficient")
	ErrOutOfRange         = errors.New("out of site range")
	ErrMissionNotFound    = errors.New("mission not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrDatabaseError      = errors.New("database error")
)
