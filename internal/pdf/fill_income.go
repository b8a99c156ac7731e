package pdf

import (
	"strconv"

	"github.com/docfiller/docfiller/internal/model"
)

// detailedSectionActive decides whether the itemized income/expense block
// (section 3.3) gets filled. The rule is evaluated on every fill,
// independently of which primary branch applies: an existing activity with a
// different scope and a new activity above the allowance both require the
// full breakdown.
func detailedSectionActive(inc model.Income) bool {
	switch inc.Type {
	case model.IncomeExisting:
		return inc.ExistingActivity != nil && inc.ExistingActivity.Scope == model.ScopeDifferent
	case model.IncomeNew:
		return inc.NewActivity != nil && inc.NewActivity.ExpectedIncome == model.ExpectedIncomeHigh
	case model.IncomeDetailed:
		return true
	}
	return false
}

func (f *Filler) fillIncome(form Form, inc model.Income) []WriteResult {
	var out []WriteResult

	switch inc.Type {
	case model.IncomeExisting:
		if ea := inc.ExistingActivity; ea != nil {
			if ea.Scope == model.ScopeSame {
				f.check(form, KeyIncomeSameScope, &out)
			}
			f.checkPair(form, KeyIncomeUnchangedYes, KeyIncomeUnchangedNo, ea.IsUnchanged, &out)
			if ea.MonthlyIncome != nil {
				f.setText(form, KeyIncomeMonthly, formatNumber(*ea.MonthlyIncome), &out)
			}
		}

	case model.IncomeNew:
		if na := inc.NewActivity; na != nil {
			f.checkPair(form, KeyIncomeLowYes, KeyIncomeLowNo,
				na.ExpectedIncome == model.ExpectedIncomeLow, &out)
		}
	}

	if detailedSectionActive(inc) && inc.DetailedInfo != nil {
		out = append(out, f.fillDetailedIncome(form, inc.DetailedInfo)...)
	}

	return out
}

// fillDetailedIncome writes section 3.3. The numeric fields distinguish
// absent from zero: a nil pointer is skipped, an explicit 0 is written.
func (f *Filler) fillDetailedIncome(form Form, di *model.DetailedIncome) []WriteResult {
	var out []WriteResult

	numbers := []struct {
		key   string
		value *float64
	}{
		{KeyDetailMonthlyIncome, di.MonthlyIncome},
		{KeyDetailExpenses, di.BusinessExpenses},
		{KeyDetailDepreciation, di.Depreciation},
		{KeyDetailIncomeTax, di.IncomeTax},
		{KeyDetailChurchTax, di.ChurchTax},
		{KeyDetailSolidarity, di.SolidarityTax},
	}
	for _, n := range numbers {
		if n.value == nil {
			out = append(out, WriteResult{Key: n.key, Status: StatusSkipped})
			continue
		}
		f.setText(form, n.key, formatNumber(*n.value), &out)
	}

	if boolValue(di.TaxAssessmentAttached) && di.TaxYear != nil {
		f.setText(form, KeyDetailTaxYear, strconv.Itoa(*di.TaxYear), &out)
	}

	if di.TaxReturnReason != nil {
		f.setTextIfPresent(form, KeyDetailReason, *di.TaxReturnReason, &out)
	}

	f.checkPair(form, KeyDetailFlatYes, KeyDetailFlatNo, di.ExpenseTreatment == model.ExpenseFlat, &out)

	f.checkPair(form, KeyDetailAssessmentYes, KeyDetailAssessmentNo, boolValue(di.TaxAssessmentAttached), &out)
	f.checkPair(form, KeyDetailSubmittedYes, KeyDetailSubmittedNo, boolValue(di.TaxReturnSubmitted), &out)
	f.checkPair(form, KeyDetailAttachedYes, KeyDetailAttachedNo, boolValue(di.TaxReturnAttached), &out)

	return out
}

func boolValue(p *bool) bool {
	return p != nil && *p
}
