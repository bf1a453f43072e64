package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/attendance/internal/client/camera"
	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/logging"
)

type CameraState int

const (
	CameraIdle CameraState = iota
	CameraCapturing
	CameraUploading
	CameraSuccess
	CameraError
)

func (s CameraState) String() string {
	switch s {
	case CameraIdle:
		return "idle"
	case CameraCapturing:
		return "capturing"
	case CameraUploading:
		return "uploading"
	case CameraSuccess:
		return "success"
	case CameraError:
		return "error"
	default:
		return fmt.Sprintf("CameraState(%d)", int(s))
	}
}

// Locator resolves the submission location. It always returns usable
// coordinates; the error only explains a fallback.
type Locator interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

type Submitter interface {
	Submit(ctx context.Context, checkIn bool, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error)
}

// CameraResult is the outcome of one Run.
type CameraResult struct {
	// State is CameraSuccess, CameraError, or CameraIdle when the capture
	// was cancelled.
	State    CameraState
	Message  string
	Record   *models.AttendanceRecord
	Location models.Coordinates

	// Err is the capture or upload failure behind a CameraError.
	Err error
}

func (r CameraResult) Cancelled() bool { return r.State == CameraIdle }

// CameraFlow runs capture, locate and upload for one check-in/out.
type CameraFlow struct {
	capturer  camera.Capturer
	locator   Locator
	submitter Submitter
	log       logging.Logger

	// OnStateChange, when set, is told about every transition.
	OnStateChange func(CameraState)

	mu    sync.Mutex
	state CameraState
}

func NewCameraFlow(c camera.Capturer, l Locator, s Submitter, log logging.Logger) *CameraFlow {
	return &CameraFlow{capturer: c, locator: l, submitter: s, log: log.With("component", "camera")}
}

func (f *CameraFlow) State() CameraState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *CameraFlow) set(s CameraState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
	if f.OnStateChange != nil {
		f.OnStateChange(s)
	}
}

// begin moves Idle to Capturing; any other state rejects the run.
func (f *CameraFlow) begin() bool {
	f.mu.Lock()
	if f.state != CameraIdle {
		f.mu.Unlock()
		return false
	}
	f.state = CameraCapturing
	f.mu.Unlock()
	if f.OnStateChange != nil {
		f.OnStateChange(CameraCapturing)
	}
	return true
}

// Run performs one check-in (checkIn=true) or check-out. Starting while a
// run is in progress returns ErrBusy. The flow is back to Idle when Run
// returns. onComplete is called after a successful submission.
func (f *CameraFlow) Run(ctx context.Context, checkIn bool, onComplete func(context.Context)) (CameraResult, error) {
	if !f.begin() {
		return CameraResult{State: f.State()}, ErrBusy
	}
	defer f.set(CameraIdle)

	photo, err := f.capturer.Capture(ctx)
	if err != nil {
		if errors.Is(err, camera.ErrCancelled) {
			return CameraResult{State: CameraIdle}, nil
		}
		f.log.Error(ctx, "camera error", "error", err)
		f.set(CameraError)
		return CameraResult{State: CameraError, Message: MsgCaptureFailed, Err: err}, nil
	}

	f.set(CameraUploading)

	loc, locErr := f.locator.Current(ctx)
	if locErr != nil {
		f.log.Info(ctx, "submitting without device location", "reason", locErr)
	}

	rec, err := f.submitter.Submit(ctx, checkIn, photo.Path, &loc)
	if err != nil {
		f.log.Error(ctx, "upload error", "check_in", checkIn, "error", err)
		f.set(CameraError)
		return CameraResult{
			State:    CameraError,
			Message:  client.MessageOf(err, MsgMarkFailed),
			Location: loc,
			Err:      err,
		}, nil
	}

	f.set(CameraSuccess)
	msg := MsgCheckOutSuccess
	if checkIn {
		msg = MsgCheckInSuccess
	}
	if onComplete != nil {
		onComplete(ctx)
	}
	return CameraResult{State: CameraSuccess, Message: msg, Record: rec, Location: loc}, nil
}
