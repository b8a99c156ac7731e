package model

import "time"

// Working time mode constants
const (
	WorkingTimeConstant = "constant"
	WorkingTimeVariable = "variable"
)

// Income mode constants
const (
	IncomeExisting = "existing"
	IncomeNew      = "new"
	IncomeDetailed = "detailed"
)

// Activity scope constants (existing income)
const (
	ScopeSame      = "same"
	ScopeDifferent = "different"
)

// Expected income constants (new income)
const (
	ExpectedIncomeLow  = "low"
	ExpectedIncomeHigh = "high"
)

// Expense treatment constants (detailed income)
const (
	ExpenseFlat     = "flat"
	ExpenseDetailed = "detailed"
)

// MasterData holds identity and address information for the declaring person.
type MasterData struct {
	CustomerNumber string `json:"customerNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate"`
	Street         string `json:"street"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
}

// GeneralInfo describes the self-employed activity itself.
type GeneralInfo struct {
	ActivityStartDate string `json:"activityStartDate"`
	ActivityEndDate   string `json:"activityEndDate,omitempty"`
	IsIndefinite      bool   `json:"isIndefinite"`
	ActivityLocation  string `json:"activityLocation"`
	ActivityType      string `json:"activityType"`
}

// DayHours maps each weekday to the hours worked that day.
type DayHours struct {
	Monday    float64 `json:"monday"`
	Tuesday   float64 `json:"tuesday"`
	Wednesday float64 `json:"wednesday"`
	Thursday  float64 `json:"thursday"`
	Friday    float64 `json:"friday"`
	Saturday  float64 `json:"saturday"`
	Sunday    float64 `json:"sunday"`
}

// Values returns the day hours in fixed Monday-to-Sunday order.
func (d DayHours) Values() [7]float64 {
	return [7]float64{d.Monday, d.Tuesday, d.Wednesday, d.Thursday, d.Friday, d.Saturday, d.Sunday}
}

// Total returns the sum of all seven day values.
func (d DayHours) Total() float64 {
	var sum float64
	for _, v := range d.Values() {
		sum += v
	}
	return sum
}

// CalendarWeek is one row of the variable working-hours grid.
// EndDate and CalendarWeek are derived from StartDate when absent.
type CalendarWeek struct {
	ID           string   `json:"id"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	CalendarWeek int      `json:"calendarWeek,omitempty"`
	Hours        DayHours `json:"hours"`
}

// WorkingTime describes the declared working hours, either as a constant
// weekly figure or as a per-week grid.
type WorkingTime struct {
	Type          string         `json:"type"`
	ConstantHours *float64       `json:"constantHours,omitempty"`
	CalendarWeeks []CalendarWeek `json:"calendarWeeks,omitempty"`
}

// ExistingActivity covers section 3.1 of the declaration: an activity that
// already existed before the benefit claim.
type ExistingActivity struct {
	Scope         string   `json:"scope,omitempty"`
	MonthlyIncome *float64 `json:"monthlyIncome,omitempty"`
	IsUnchanged   bool     `json:"isUnchanged"`
}

// NewActivity covers section 3.2: an activity taken up during the claim.
type NewActivity struct {
	ExpectedIncome string `json:"expectedIncome,omitempty"`
}

// DetailedIncome covers section 3.3: the itemized income/expense breakdown.
// Pointer fields distinguish "absent" from an explicit zero; a zero is
// written to the form, a nil is skipped.
type DetailedIncome struct {
	MonthlyIncome         *float64 `json:"monthlyIncome,omitempty"`
	ExpenseTreatment      string   `json:"expenseTreatment"`
	BusinessExpenses      *float64 `json:"businessExpenses,omitempty"`
	Depreciation          *float64 `json:"depreciation,omitempty"`
	IncomeTax             *float64 `json:"incomeTax,omitempty"`
	ChurchTax             *float64 `json:"churchTax,omitempty"`
	SolidarityTax         *float64 `json:"solidarityTax,omitempty"`
	TaxYear               *int     `json:"taxYear,omitempty"`
	TaxReturnSubmitted    *bool    `json:"taxReturnSubmitted,omitempty"`
	TaxReturnAttached     *bool    `json:"taxReturnAttached,omitempty"`
	TaxAssessmentAttached *bool    `json:"taxAssessmentAttached,omitempty"`
	TaxReturnReason       *string  `json:"taxReturnReason,omitempty"`
}

// Income selects one of the three declaration branches.
type Income struct {
	Type             string            `json:"type"`
	ExistingActivity *ExistingActivity `json:"existingActivity,omitempty"`
	NewActivity      *NewActivity      `json:"newActivity,omitempty"`
	DetailedInfo     *DetailedIncome   `json:"detailedInfo,omitempty"`
}

// Submission is the root entity for one user's declaration.
type Submission struct {
	MasterData           MasterData  `json:"masterData"`
	GeneralInfo          GeneralInfo `json:"generalInfo"`
	WorkingTime          WorkingTime `json:"workingTime"`
	Income               Income      `json:"income"`
	DeclarationConfirmed bool        `json:"declarationConfirmed"`
}

// Draft wraps a Submission with persistence metadata.
type Draft struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"userId"`
	FormData  Submission `json:"formData"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SaveDraftRequest is the body of POST /api/form.
type SaveDraftRequest struct {
	UserID   string     `json:"userId"`
	FormData Submission `json:"formData"`
}

// GeneratePDFRequest is the body of POST /api/generate-pdf.
type GeneratePDFRequest struct {
	FormData *Submission `json:"formData"`
}
