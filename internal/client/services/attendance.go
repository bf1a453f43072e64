package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/models"
)

// AttendanceService serves the home, camera, history and stats views.
type AttendanceService struct {
	client client.Client
}

func NewAttendanceService(c client.Client) (*AttendanceService, error) {
	if c == nil {
		return nil, fmt.Errorf("attendance service: client: %w", ErrNilDependency)
	}
	return &AttendanceService{client: c}, nil
}

// Latest returns the most recent record, or nil when there is none.
func (s *AttendanceService) Latest(ctx context.Context) (*models.AttendanceRecord, error) {
	page, err := s.client.Records(ctx, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, nil
	}
	rec := page.Records[0]
	return &rec, nil
}

// Submit checks in or out with the photo at imagePath.
func (s *AttendanceService) Submit(ctx context.Context, checkIn bool, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error) {
	if checkIn {
		return s.client.CheckIn(ctx, imagePath, loc)
	}
	return s.client.CheckOut(ctx, imagePath, loc)
}

func (s *AttendanceService) Records(ctx context.Context, page, perPage int) (*models.RecordsPage, error) {
	return s.client.Records(ctx, page, perPage)
}

func (s *AttendanceService) Stats(ctx context.Context) (*models.AttendanceStats, error) {
	return s.client.Stats(ctx)
}
