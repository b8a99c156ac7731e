package pdf

import (
	"strconv"

	"github.com/docfiller/docfiller/internal/model"
)

// dayRowKeys is the fixed Monday-to-Sunday column order of the grid.
var dayRowKeys = [7]string{
	KeyWorkingRowMonday,
	KeyWorkingRowTuesday,
	KeyWorkingRowWednesday,
	KeyWorkingRowThursday,
	KeyWorkingRowFriday,
	KeyWorkingRowSaturday,
	KeyWorkingRowSunday,
}

// fillWorkingTime handles the two working-time modes. In variable mode each
// of up to five calendar weeks becomes one grid row; weeks beyond the fifth
// are ignored because the printed form has no rows for them.
func (f *Filler) fillWorkingTime(form Form, wt model.WorkingTime) []WriteResult {
	var out []WriteResult

	switch wt.Type {
	case model.WorkingTimeConstant:
		f.check(form, KeyWorkingConstant, &out)
		var hours float64
		if wt.ConstantHours != nil {
			hours = *wt.ConstantHours
		}
		f.setText(form, KeyWorkingConstantHours, formatNumber(hours), &out)

	case model.WorkingTimeVariable:
		f.check(form, KeyWorkingVariable, &out)

		weeks := wt.CalendarWeeks
		if len(weeks) > model.MaxCalendarWeeks {
			weeks = weeks[:model.MaxCalendarWeeks]
		}
		for i, week := range weeks {
			row := i + 1
			f.setRowText(form, KeyWorkingRowStart, row, week.StartDate, &out)
			f.setRowText(form, KeyWorkingRowEnd, row, week.EndDate, &out)

			weekNo := ""
			if week.CalendarWeek > 0 {
				weekNo = strconv.Itoa(week.CalendarWeek)
			}
			f.setRowText(form, KeyWorkingRowWeek, row, weekNo, &out)

			total := week.Hours.Total()
			totalText := ""
			if total > 0 {
				totalText = formatNumber(total)
			}
			f.setRowText(form, KeyWorkingRowTotal, row, totalText, &out)

			// Zero-hour days stay blank, they are not written as "0".
			for d, value := range week.Hours.Values() {
				dayText := ""
				if value > 0 {
					dayText = formatNumber(value)
				}
				f.setRowText(form, dayRowKeys[d], row, dayText, &out)
			}
		}
	}

	return out
}
