package calendar

import (
	"fmt"
	"strconv"

	"github.com/sheetcal/sheetcal/pkg/callback"
)

const (
	EventMarker = "📅"
	PrevLabel   = "⬅️"
	NextLabel   = "➡️"
	TodayLabel  = "Today"
	daysPerRow  = 7
	headerRows  = 2
)

type Button struct {
	Label   string
	Payload string
}

// View is one rendered month. Month is a 0-based index.
type View struct {
	Year  int
	Month int
	Rows  [][]Button
}

func (v View) Title() string {
	return fmt.Sprintf("%s %d", MonthName(v.Month), v.Year)
}

// DayButtons returns the day rows, without the navigation header.
func (v View) DayButtons() [][]Button {
	if len(v.Rows) < headerRows {
		return nil
	}
	return v.Rows[headerRows:]
}

// Render builds the month view for a 0-based month. Days whose key is
// present in marked carry the event marker.
func Render(year, month int, marked map[DateKey]bool) View {
	year, month = Normalize(year, month)
	view := View{Year: year, Month: month}

	view.Rows = append(view.Rows, []Button{
		{Label: PrevLabel, Payload: callback.Encode(callback.PrevMonth(year, month))},
		{Label: view.Title(), Payload: callback.Encode(callback.Ignore())},
		{Label: NextLabel, Payload: callback.Encode(callback.NextMonth(year, month))},
	})
	view.Rows = append(view.Rows, []Button{
		{Label: TodayLabel, Payload: callback.Encode(callback.JumpToday(year, month))},
	})

	days := DaysIn(year, month)
	week := make([]Button, 0, daysPerRow)
	for day := 1; day <= days; day++ {
		date := Date{Year: year, Month: monthOf(month), Day: day}
		label := strconv.Itoa(day)
		if marked[date.Key()] {
			label = EventMarker + " " + label
		}
		week = append(week, Button{
			Label:   label,
			Payload: callback.Encode(callback.SelectDate(date.Year, int(date.Month), date.Day)),
		})
		if len(week) == daysPerRow || day == days {
			view.Rows = append(view.Rows, week)
			week = make([]Button, 0, daysPerRow)
		}
	}
	return view
}
