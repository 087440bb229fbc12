package services

import (
	"time"

	"pointage/internal/models/db_models"
	"pointage/pkg/utils"
)

// computeAttendanceStatus classifies an arrival against the company's
// workday start. Arrivals within the tolerance are present; companies with
// no configured start never mark anyone late. Decided once at creation and
// never recomputed.
func computeAttendanceStatus(workStart string, lateToleranceMin int, arrival time.Time) string {
	start, err := utils.ParseWorkStart(workStart)
	if err != nil {
		return db_models.AttendanceStatusPresent
	}
	delay := utils.MinutesSinceMidnight(arrival) - start
	if delay <= lateToleranceMin {
		return db_models.AttendanceStatusPresent
	}
	return db_models.AttendanceStatusLate
}
