package views

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/logging"
)

// LatestSource returns the most recent record, nil when there is none.
type LatestSource interface {
	Latest(ctx context.Context) (*models.AttendanceRecord, error)
}

// HomeStatus is what the home screen shows.
type HomeStatus struct {
	IsCheckedIn bool
	Last        *models.AttendanceRecord
}

// StatusLabel is "Checked In" or "Checked Out".
func (s HomeStatus) StatusLabel() string {
	if s.IsCheckedIn {
		return "Checked In"
	}
	return "Checked Out"
}

// ActionLabel names the action "mark" performs next.
func (s HomeStatus) ActionLabel() string {
	if s.IsCheckedIn {
		return "Check Out"
	}
	return "Check In"
}

// LastEvent describes the most recent check-in or check-out, "" when there
// is no record.
func (s HomeStatus) LastEvent(loc *time.Location) string {
	if s.Last == nil {
		return ""
	}
	if s.IsCheckedIn {
		return "Last Check-in: " + FormatTime(s.Last.CheckInTime, loc)
	}
	if s.Last.CheckOutTime == nil {
		return "Last Check-out: N/A"
	}
	return "Last Check-out: " + FormatTime(*s.Last.CheckOutTime, loc)
}

// Tiredness returns the last score and its level.
func (s HomeStatus) Tiredness() (score float64, level models.TirednessLevel, ok bool) {
	if s.Last == nil {
		return 0, 0, false
	}
	return s.Last.TirednessScore, s.Last.Level(), true
}

// FormatTime renders a timestamp in loc (local time when nil).
func FormatTime(ts models.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return "N/A"
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format("2006-01-02 15:04:05")
}

type Home struct {
	src LatestSource
	log logging.Logger

	mu     sync.RWMutex
	status HomeStatus
}

func NewHome(src LatestSource, log logging.Logger) *Home {
	return &Home{src: src, log: log}
}

// Refresh reloads the status from the latest record. A failed load is
// logged and reported as checked out; the error is returned alongside so
// callers can react to an expired session.
func (h *Home) Refresh(ctx context.Context) (HomeStatus, error) {
	var status HomeStatus

	latest, err := h.src.Latest(ctx)
	if err != nil {
		h.log.Error(ctx, "error checking status", "error", err)
	} else if latest != nil {
		status = HomeStatus{IsCheckedIn: latest.IsCheckedIn, Last: latest}
	}

	h.mu.Lock()
	h.status = status
	h.mu.Unlock()
	return status, err
}

func (h *Home) Status() HomeStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// MarkRequest is what "mark" hands to the camera workflow.
type MarkRequest struct {
	CheckIn    bool
	OnComplete func(ctx context.Context)
}

// Mark asks for the opposite of the current status and refreshes the home
// status when the camera workflow completes.
func (h *Home) Mark() MarkRequest {
	return MarkRequest{
		CheckIn:    !h.Status().IsCheckedIn,
		OnComplete: func(ctx context.Context) { _, _ = h.Refresh(ctx) },
	}
}
