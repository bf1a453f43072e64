package views

import (
	"context"

	"github.com/dmitrijs2005/attendance/internal/client/models"
)

type StatsSource interface {
	Stats(ctx context.Context) (*models.AttendanceStats, error)
}

// BucketRow is one line of the tiredness distribution.
type BucketRow struct {
	Level models.TirednessLevel
	Count int
	// Share of all records in the bucket, 0..1.
	Share float64
}

type StatsSummary struct {
	Total            int
	AverageTiredness float64
	Buckets          []BucketRow
	Daily            []models.DailyStat
}

// LoadStats fetches the aggregate stats and arranges them for display.
func LoadStats(ctx context.Context, src StatsSource) (StatsSummary, error) {
	st, err := src.Stats(ctx)
	if err != nil {
		return StatsSummary{}, err
	}
	return Summarize(*st), nil
}

func Summarize(st models.AttendanceStats) StatsSummary {
	sum := StatsSummary{
		Total:            st.TotalRecords,
		AverageTiredness: st.AverageTiredness,
		Daily:            st.DailyStats,
	}

	bucketed := 0
	for _, l := range models.Levels() {
		bucketed += st.Count(l)
	}
	for _, l := range models.Levels() {
		row := BucketRow{Level: l, Count: st.Count(l)}
		if bucketed > 0 {
			row.Share = float64(row.Count) / float64(bucketed)
		}
		sum.Buckets = append(sum.Buckets, row)
	}
	return sum
}
