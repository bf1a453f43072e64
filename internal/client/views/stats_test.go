package views

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFunc func(ctx context.Context) (*models.AttendanceStats, error)

func (f statsFunc) Stats(ctx context.Context) (*models.AttendanceStats, error) { return f(ctx) }

func TestSummarize(t *testing.T) {
	sum := Summarize(models.AttendanceStats{
		TotalRecords:     4,
		AverageTiredness: 0.5,
		TirednessDistribution: map[string]int{
			models.DistributionLowKey:    1,
			models.DistributionMediumKey: 1,
			models.DistributionHighKey:   2,
		},
	})

	require.Len(t, sum.Buckets, 3)
	assert.Equal(t, BucketRow{Level: models.TirednessLow, Count: 1, Share: 0.25}, sum.Buckets[0])
	assert.Equal(t, BucketRow{Level: models.TirednessHigh, Count: 2, Share: 0.5}, sum.Buckets[2])
	assert.Equal(t, 4, sum.Total)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(models.AttendanceStats{})
	for _, b := range sum.Buckets {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Share)
	}
}

func TestLoadStats(t *testing.T) {
	_, err := LoadStats(context.Background(), statsFunc(func(context.Context) (*models.AttendanceStats, error) {
		return nil, errors.New("down")
	}))
	require.Error(t, err)

	sum, err := LoadStats(context.Background(), statsFunc(func(context.Context) (*models.AttendanceStats, error) {
		return &models.AttendanceStats{TotalRecords: 2}, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
}
