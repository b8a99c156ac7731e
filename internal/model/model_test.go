package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	hours := 20.0
	return Submission{
		MasterData: MasterData{
			CustomerNumber: "KD-1",
			FirstName:      "Anna",
			LastName:       "Muster",
			BirthDate:      "1990-04-01",
			Street:         "Musterstr. 1",
			PostalCode:     "10115",
			City:           "Berlin",
		},
		GeneralInfo: GeneralInfo{
			ActivityStartDate: "2025-01-01",
			IsIndefinite:      true,
			ActivityLocation:  "Berlin",
			ActivityType:      "Beratung",
		},
		WorkingTime: WorkingTime{
			Type:          WorkingTimeConstant,
			ConstantHours: &hours,
		},
		Income: Income{
			Type: IncomeExisting,
			ExistingActivity: &ExistingActivity{
				Scope:       ScopeSame,
				IsUnchanged: true,
			},
		},
		DeclarationConfirmed: true,
	}
}

func TestValidate_OK(t *testing.T) {
	sub := validSubmission()
	require.NoError(t, sub.Validate())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		problem string
	}{
		{
			name:    "missing customer number",
			mutate:  func(s *Submission) { s.MasterData.CustomerNumber = "" },
			problem: "masterData.customerNumber is required",
		},
		{
			name:    "missing activity location",
			mutate:  func(s *Submission) { s.GeneralInfo.ActivityLocation = "  " },
			problem: "generalInfo.activityLocation is required",
		},
		{
			name: "too many calendar weeks",
			mutate: func(s *Submission) {
				s.WorkingTime = WorkingTime{
					Type:          WorkingTimeVariable,
					CalendarWeeks: make([]CalendarWeek, 6),
				}
			},
			problem: "workingTime.calendarWeeks must not exceed 5 entries",
		},
		{
			name: "day hours out of range",
			mutate: func(s *Submission) {
				s.WorkingTime = WorkingTime{
					Type: WorkingTimeVariable,
					CalendarWeeks: []CalendarWeek{
						{StartDate: "2025-03-03", Hours: DayHours{Monday: 25}},
					},
				}
			},
			problem: "workingTime.calendarWeeks[0].hours.monday must be between 0 and 24",
		},
		{
			name:    "unknown working time type",
			mutate:  func(s *Submission) { s.WorkingTime.Type = "sometimes" },
			problem: `workingTime.type must be "constant" or "variable"`,
		},
		{
			name:    "unknown income type",
			mutate:  func(s *Submission) { s.Income.Type = "other" },
			problem: `income.type must be one of "existing", "new", "detailed"`,
		},
		{
			name: "bad expense treatment",
			mutate: func(s *Submission) {
				s.Income.DetailedInfo = &DetailedIncome{ExpenseTreatment: "all"}
			},
			problem: `income.detailedInfo.expenseTreatment must be "flat" or "detailed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			err := sub.Validate()
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Contains(t, verr.Problems, tt.problem)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	sub := validSubmission()
	sub.MasterData.FirstName = ""
	sub.MasterData.LastName = ""
	err := sub.Validate()
	require.Error(t, err)
	verr := err.(*ValidationError)
	assert.Len(t, verr.Problems, 2)
}

func TestDayHours_Total(t *testing.T) {
	h := DayHours{Monday: 4, Wednesday: 3.5, Sunday: 0.5}
	assert.Equal(t, 8.0, h.Total())
	assert.Equal(t, [7]float64{4, 0, 3.5, 0, 0, 0, 0.5}, h.Values())
}

func TestWeekStart_End(t *testing.T) {
	tests := []struct {
		date   string
		monday string
		sunday string
		week   int
	}{
		{"2025-03-05", "2025-03-03", "2025-03-09", 10}, // Wednesday
		{"2025-03-03", "2025-03-03", "2025-03-09", 10}, // Monday itself
		{"2025-03-09", "2025-03-03", "2025-03-09", 10}, // Sunday belongs to preceding Monday
		{"2025-01-01", "2024-12-30", "2025-01-05", 1},  // year boundary
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse(DateLayout, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.monday, WeekStart(d).Format(DateLayout))
			assert.Equal(t, tt.sunday, WeekEnd(d).Format(DateLayout))
			assert.Equal(t, tt.week, ISOWeekNumber(d))
		})
	}
}

func TestCalendarWeek_Normalize(t *testing.T) {
	w := CalendarWeek{StartDate: "2025-03-03"}
	require.NoError(t, w.Normalize())
	assert.Equal(t, "2025-03-09", w.EndDate)
	assert.Equal(t, 10, w.CalendarWeek)

	// Explicit values are preserved.
	w = CalendarWeek{StartDate: "2025-03-03", EndDate: "2025-03-08", CalendarWeek: 11}
	require.NoError(t, w.Normalize())
	assert.Equal(t, "2025-03-08", w.EndDate)
	assert.Equal(t, 11, w.CalendarWeek)

	// Malformed start date is reported but non-fatal for the submission.
	w = CalendarWeek{StartDate: "03.03.2025"}
	assert.Error(t, w.Normalize())
}
