package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/client/views"
)

// ANSI colors for the tiredness levels.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorOrange = "\033[38;5;208m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

func levelColor(l models.TirednessLevel) string {
	switch l {
	case models.TirednessLow:
		return colorGreen
	case models.TirednessMedium:
		return colorOrange
	default:
		return colorRed
	}
}

func (a *App) paint(color, s string) string {
	if !a.color {
		return s
	}
	return color + s + colorReset
}

func (a *App) tiredness(score float64) string {
	return a.paint(levelColor(models.LevelOf(score)), models.Percent(score))
}

func (a *App) renderHome(user *models.User, st views.HomeStatus) {
	if user != nil {
		printlnFn(a.paint(colorBold, fmt.Sprintf("Welcome, %s!", user.Username)))
	}
	printlnFn("Status:", st.StatusLabel())
	if ev := st.LastEvent(nil); ev != "" {
		printlnFn(ev)
	}
	if score, level, ok := st.Tiredness(); ok {
		printlnFn(fmt.Sprintf("Last Tiredness Score: %s (%s tiredness)", a.tiredness(score), level))
	}
	printlnFn(fmt.Sprintf("Type 'mark' to %s.", strings.ToLower(st.ActionLabel())))
}

func (a *App) renderRecord(r models.AttendanceRecord) {
	printlnFn(fmt.Sprintf("#%d  %s  %s", r.ID, views.FormatTime(r.CheckInTime, nil), a.tiredness(r.TirednessScore)))
	printlnFn("    Check In: ", views.FormatTime(r.CheckInTime, nil))
	if r.CheckOutTime != nil {
		printlnFn("    Check Out:", views.FormatTime(*r.CheckOutTime, nil))
	}
	if loc, ok := r.Location(); ok && loc != models.ZeroCoordinates {
		printlnFn(fmt.Sprintf("    Location:  %.4f, %.4f", loc.Latitude, loc.Longitude))
	}
}

func (a *App) renderHistory(header string, records []models.AttendanceRecord, hasMore bool) {
	printlnFn(a.paint(colorBold, "Attendance History"), "-", header)
	if len(records) == 0 {
		printlnFn(views.MsgNoRecords)
		printlnFn(views.MsgNoRecordsHint)
		return
	}
	for _, r := range records {
		a.renderRecord(r)
	}
	if hasMore {
		printlnFn("Type 'more' to load older records.")
	}
}

func (a *App) renderStats(sum views.StatsSummary) {
	printlnFn(a.paint(colorBold, "Attendance Stats"))
	printlnFn("Total records:    ", sum.Total)
	printlnFn("Average tiredness:", a.tiredness(sum.AverageTiredness))
	for _, b := range sum.Buckets {
		printlnFn(fmt.Sprintf("  %-6s %4d  %s", b.Level, b.Count, a.paint(levelColor(b.Level), models.Percent(b.Share))))
	}
	if len(sum.Daily) > 0 {
		printlnFn("Daily:")
		for _, d := range sum.Daily {
			printlnFn(fmt.Sprintf("  %s  %3d  avg %s", d.Date, d.Count, a.tiredness(d.AvgTiredness)))
		}
	}
}
