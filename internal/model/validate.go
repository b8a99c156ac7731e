package model

import (
	"fmt"
	"strings"
)

// MaxCalendarWeeks caps the variable working-hours grid; the printed form
// has exactly five rows.
const MaxCalendarWeeks = 5

// ValidationError reports all schema violations found in a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + strings.Join(e.Problems, "; ")
}

// Validate checks the submission against the schema constraints. It returns
// a *ValidationError listing every violation, or nil. Validation runs before
// any fill attempt; a failing submission never reaches the PDF layer.
func (s *Submission) Validate() error {
	var problems []string

	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	// Master data: all fields required.
	md := s.MasterData
	required := []struct{ name, value string }{
		{"masterData.customerNumber", md.CustomerNumber},
		{"masterData.firstName", md.FirstName},
		{"masterData.lastName", md.LastName},
		{"masterData.birthDate", md.BirthDate},
		{"masterData.street", md.Street},
		{"masterData.postalCode", md.PostalCode},
		{"masterData.city", md.City},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			add("%s is required", f.name)
		}
	}

	gi := s.GeneralInfo
	if strings.TrimSpace(gi.ActivityStartDate) == "" {
		add("generalInfo.activityStartDate is required")
	}
	if strings.TrimSpace(gi.ActivityLocation) == "" {
		add("generalInfo.activityLocation is required")
	}
	if strings.TrimSpace(gi.ActivityType) == "" {
		add("generalInfo.activityType is required")
	}

	switch s.WorkingTime.Type {
	case WorkingTimeConstant:
		if s.WorkingTime.ConstantHours != nil && (*s.WorkingTime.ConstantHours < 0 || *s.WorkingTime.ConstantHours > 168) {
			add("workingTime.constantHours must be between 0 and 168")
		}
	case WorkingTimeVariable:
		if len(s.WorkingTime.CalendarWeeks) > MaxCalendarWeeks {
			add("workingTime.calendarWeeks must not exceed %d entries", MaxCalendarWeeks)
		}
		for i, week := range s.WorkingTime.CalendarWeeks {
			for day, hours := range map[string]float64{
				"monday":    week.Hours.Monday,
				"tuesday":   week.Hours.Tuesday,
				"wednesday": week.Hours.Wednesday,
				"thursday":  week.Hours.Thursday,
				"friday":    week.Hours.Friday,
				"saturday":  week.Hours.Saturday,
				"sunday":    week.Hours.Sunday,
			} {
				if hours < 0 || hours > 24 {
					add("workingTime.calendarWeeks[%d].hours.%s must be between 0 and 24", i, day)
				}
			}
		}
	default:
		add("workingTime.type must be %q or %q", WorkingTimeConstant, WorkingTimeVariable)
	}

	switch s.Income.Type {
	case IncomeExisting, IncomeNew, IncomeDetailed:
	default:
		add("income.type must be one of %q, %q, %q", IncomeExisting, IncomeNew, IncomeDetailed)
	}
	if ea := s.Income.ExistingActivity; ea != nil && ea.Scope != "" && ea.Scope != ScopeSame && ea.Scope != ScopeDifferent {
		add("income.existingActivity.scope must be %q or %q", ScopeSame, ScopeDifferent)
	}
	if na := s.Income.NewActivity; na != nil && na.ExpectedIncome != "" &&
		na.ExpectedIncome != ExpectedIncomeLow && na.ExpectedIncome != ExpectedIncomeHigh {
		add("income.newActivity.expectedIncome must be %q or %q", ExpectedIncomeLow, ExpectedIncomeHigh)
	}
	if di := s.Income.DetailedInfo; di != nil && di.ExpenseTreatment != ExpenseFlat && di.ExpenseTreatment != ExpenseDetailed {
		add("income.detailedInfo.expenseTreatment must be %q or %q", ExpenseFlat, ExpenseDetailed)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
