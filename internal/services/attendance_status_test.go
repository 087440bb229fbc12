package services

import (
	"testing"
	"time"

	"pointage/internal/models/db_models"
)

func TestComputeAttendanceStatus(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}

	tests := []struct {
		name      string
		workStart string
		tolerance int
		arrival   time.Time
		want      string
	}{
		{"before start", "09:00", 15, at(8, 45), db_models.AttendanceStatusPresent},
		{"exactly on start", "09:00", 15, at(9, 0), db_models.AttendanceStatusPresent},
		{"at tolerance boundary", "09:00", 15, at(9, 15), db_models.AttendanceStatusPresent},
		{"one minute past tolerance", "09:00", 15, at(9, 16), db_models.AttendanceStatusLate},
		{"well past", "09:00", 15, at(11, 0), db_models.AttendanceStatusLate},
		{"zero tolerance late", "09:00", 0, at(9, 1), db_models.AttendanceStatusLate},
		{"no configured start", "", 15, at(14, 0), db_models.AttendanceStatusPresent},
		{"malformed start", "9am", 15, at(14, 0), db_models.AttendanceStatusPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeAttendanceStatus(tt.workStart, tt.tolerance, tt.arrival)
			if got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}
