package bookings

import (
	"errors"
	"time"

	"github.com/calm-lily/backend/internal/models"
)

const dateLayout = "2006-01-02"
const timeLayout = "15:04"

// BulkSlotRequest is the body for POST /admin/bookings/slots/bulk/.
// Weekdays use 0=Monday .. 6=Sunday.
type BulkSlotRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Weekdays    []int  `json:"weekdays" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SessionType string `json:"session_type" binding:"required"`
}

var (
	errBadDate        = errors.New("invalid date format, use YYYY-MM-DD")
	errBadTime        = errors.New("invalid time format, use HH:MM")
	errInvertedRange  = errors.New("end_date must be on or after start_date")
	errRangeTooLong   = errors.New("date range cannot exceed one year")
	errBadWeekday     = errors.New("weekdays must contain values 0-6")
	errNoWeekdays     = errors.New("at least one weekday is required")
	errBadSessionType = errors.New("invalid session_type")
)

// ExpandDates validates the request and returns every calendar day in the
// inclusive range whose weekday is in the set.
func (r BulkSlotRequest) ExpandDates() ([]time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return nil, errBadDate
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return nil, errBadDate
	}
	if _, err := time.Parse(timeLayout, r.StartTime); err != nil {
		return nil, errBadTime
	}
	if _, err := time.Parse(timeLayout, r.EndTime); err != nil {
		return nil, errBadTime
	}
	if !models.ValidSessionType(r.SessionType) {
		return nil, errBadSessionType
	}
	if end.Before(start) {
		return nil, errInvertedRange
	}
	if end.Sub(start) > 365*24*time.Hour {
		return nil, errRangeTooLong
	}
	if len(r.Weekdays) == 0 {
		return nil, errNoWeekdays
	}
	wanted := make(map[int]bool, len(r.Weekdays))
	for _, w := range r.Weekdays {
		if w < 0 || w > 6 {
			return nil, errBadWeekday
		}
		wanted[w] = true
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wanted[mondayIndexed(d.Weekday())] {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// mondayIndexed maps time.Weekday (Sunday=0) to the 0=Monday..6=Sunday
// convention used over the wire.
func mondayIndexed(w time.Weekday) int {
	return (int(w) + 6) % 7
}
