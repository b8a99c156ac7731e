package pdf

import "github.com/docfiller/docfiller/internal/model"

// fillGeneralInfo writes the four fixed activity fields and the indefinite
// checkbox. An open-ended activity blanks the end-date field on purpose;
// template revisions pre-fill it with a hint text.
func (f *Filler) fillGeneralInfo(form Form, gi model.GeneralInfo) []WriteResult {
	var out []WriteResult

	f.setTextIfPresent(form, KeyGeneralStartDate, gi.ActivityStartDate, &out)

	endDate := gi.ActivityEndDate
	if gi.IsIndefinite {
		endDate = ""
	}
	f.setText(form, KeyGeneralEndDate, endDate, &out)

	f.setTextIfPresent(form, KeyGeneralLocation, gi.ActivityLocation, &out)
	f.setTextIfPresent(form, KeyGeneralType, gi.ActivityType, &out)

	if gi.IsIndefinite {
		f.check(form, KeyGeneralIndefinite, &out)
	}

	return out
}

// markDeclaration writes the confirmation date/location pair. Invoked only
// when the user attested correctness.
func (f *Filler) markDeclaration(form Form, activityLocation string) []WriteResult {
	var out []WriteResult
	f.setText(form, KeyDeclarationDate, f.now().Format("02.01.2006"), &out)
	f.setTextIfPresent(form, KeyDeclarationLocation, activityLocation, &out)
	return out
}
