package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this employee and date")
	ErrUnknownEmployee     = errors.New("attendance references an unknown employee code")
)
