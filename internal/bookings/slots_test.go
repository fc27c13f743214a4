package bookings

import (
	"errors"
	"testing"
	"time"
)

func validBulkRequest() BulkSlotRequest {
	return BulkSlotRequest{
		StartDate:   "2025-02-03",
		EndDate:     "2025-02-09",
		Weekdays:    []int{0, 2, 4},
		StartTime:   "09:00",
		EndTime:     "10:00",
		SessionType: "standard",
	}
}

func TestExpandDatesMonWedFri(t *testing.T) {
	t.Parallel()
	// Feb 3 2025 is a Monday; Mon/Wed/Fri over one week is Feb 3, 5, 7.
	dates, err := validBulkRequest().ExpandDates()
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	want := []string{"2025-02-03", "2025-02-05", "2025-02-07"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i, d := range dates {
		if got := d.Format("2006-01-02"); got != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestExpandDatesSingleDay(t *testing.T) {
	t.Parallel()
	req := validBulkRequest()
	req.EndDate = req.StartDate
	req.Weekdays = []int{0}

	dates, err := req.ExpandDates()
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("got %d dates, want 1", len(dates))
	}
}

func TestExpandDatesNoMatchingWeekday(t *testing.T) {
	t.Parallel()
	req := validBulkRequest()
	req.EndDate = req.StartDate // Monday only
	req.Weekdays = []int{6}     // Sunday

	dates, err := req.ExpandDates()
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("got %d dates, want 0", len(dates))
	}
}

func TestExpandDatesValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*BulkSlotRequest)
		wantErr error
	}{
		{"inverted range", func(r *BulkSlotRequest) { r.EndDate = "2025-02-01" }, errInvertedRange},
		{"over one year", func(r *BulkSlotRequest) { r.EndDate = "2026-02-04" }, errRangeTooLong},
		{"bad start date", func(r *BulkSlotRequest) { r.StartDate = "03/02/2025" }, errBadDate},
		{"bad end date", func(r *BulkSlotRequest) { r.EndDate = "notadate" }, errBadDate},
		{"bad start time", func(r *BulkSlotRequest) { r.StartTime = "9am" }, errBadTime},
		{"bad end time", func(r *BulkSlotRequest) { r.EndTime = "25:00" }, errBadTime},
		{"weekday too high", func(r *BulkSlotRequest) { r.Weekdays = []int{0, 7} }, errBadWeekday},
		{"weekday negative", func(r *BulkSlotRequest) { r.Weekdays = []int{-1} }, errBadWeekday},
		{"no weekdays", func(r *BulkSlotRequest) { r.Weekdays = nil }, errNoWeekdays},
		{"bad session type", func(r *BulkSlotRequest) { r.SessionType = "marathon" }, errBadSessionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBulkRequest()
			tt.mutate(&req)
			_, err := req.ExpandDates()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMondayIndexed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		weekday time.Weekday
		want    int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Wednesday, 2},
		{time.Thursday, 3},
		{time.Friday, 4},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tt := range tests {
		if got := mondayIndexed(tt.weekday); got != tt.want {
			t.Errorf("mondayIndexed(%s) = %d, want %d", tt.weekday, got, tt.want)
		}
	}
}
