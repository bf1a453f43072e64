package models

// Keys of AttendanceStats.TirednessDistribution as sent by the server.
const (
	DistributionLowKey    = "low (0-0.3)"
	DistributionMediumKey = "medium (0.3-0.7)"
	DistributionHighKey   = "high (0.7-1.0)"
)

// DailyStat is one entry of the per-day series.
type DailyStat struct {
	Date         string  `json:"date"`
	Count        int     `json:"count"`
	AvgTiredness float64 `json:"avg_tiredness"`
}

// AttendanceStats is the body of GET /attendance/stats.
type AttendanceStats struct {
	TotalRecords          int            `json:"total_records"`
	AverageTiredness      float64        `json:"average_tiredness"`
	TirednessDistribution map[string]int `json:"tiredness_distribution"`
	DailyStats            []DailyStat    `json:"daily_stats"`
}

func (s AttendanceStats) Low() int    { return s.TirednessDistribution[DistributionLowKey] }
func (s AttendanceStats) Medium() int { return s.TirednessDistribution[DistributionMediumKey] }
func (s AttendanceStats) High() int   { return s.TirednessDistribution[DistributionHighKey] }

// Count returns the distribution bucket for level.
func (s AttendanceStats) Count(level TirednessLevel) int {
	switch level {
	case TirednessLow:
		return s.Low()
	case TirednessMedium:
		return s.Medium()
	default:
		return s.High()
	}
}
