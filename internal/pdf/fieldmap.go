package pdf

import (
	"encoding/json"
	"fmt"
	"os"
)

// Semantic field keys. The fillers address the template exclusively through
// these keys; the mapping to concrete field paths is data, so a template
// revision only requires a new field map, not new fill logic.
const (
	KeyMasterCustomerNumber = "master.customerNumber"
	KeyMasterFullName       = "master.fullName"
	KeyMasterBirthDate      = "master.birthDate"
	KeyMasterStreet         = "master.street"
	KeyMasterPostalCity     = "master.postalCity"

	KeyGeneralStartDate  = "general.startDate"
	KeyGeneralEndDate    = "general.endDate"
	KeyGeneralLocation   = "general.location"
	KeyGeneralType       = "general.type"
	KeyGeneralIndefinite = "general.indefinite"

	KeyWorkingConstant      = "working.constant"
	KeyWorkingConstantHours = "working.constantHours"
	KeyWorkingVariable      = "working.variable"
	KeyWorkingRowStart      = "working.row.start"
	KeyWorkingRowEnd        = "working.row.end"
	KeyWorkingRowWeek       = "working.row.week"
	KeyWorkingRowTotal      = "working.row.total"
	KeyWorkingRowMonday     = "working.row.monday"
	KeyWorkingRowTuesday    = "working.row.tuesday"
	KeyWorkingRowWednesday  = "working.row.wednesday"
	KeyWorkingRowThursday   = "working.row.thursday"
	KeyWorkingRowFriday     = "working.row.friday"
	KeyWorkingRowSaturday   = "working.row.saturday"
	KeyWorkingRowSunday     = "working.row.sunday"

	KeyIncomeSameScope    = "income.sameScope"
	KeyIncomeUnchangedYes = "income.unchangedYes"
	KeyIncomeUnchangedNo  = "income.unchangedNo"
	KeyIncomeMonthly      = "income.monthly"
	KeyIncomeLowYes       = "income.lowYes"
	KeyIncomeLowNo        = "income.lowNo"

	KeyDetailMonthlyIncome = "detail.monthlyIncome"
	KeyDetailExpenses      = "detail.businessExpenses"
	KeyDetailDepreciation  = "detail.depreciation"
	KeyDetailIncomeTax     = "detail.incomeTax"
	KeyDetailChurchTax     = "detail.churchTax"
	KeyDetailSolidarity    = "detail.solidarityTax"
	KeyDetailTaxYear       = "detail.taxYear"
	KeyDetailReason        = "detail.taxReturnReason"
	KeyDetailFlatYes       = "detail.flatRateYes"
	KeyDetailFlatNo        = "detail.flatRateNo"
	KeyDetailAssessmentYes = "detail.assessmentAttachedYes"
	KeyDetailAssessmentNo  = "detail.assessmentAttachedNo"
	KeyDetailSubmittedYes  = "detail.returnSubmittedYes"
	KeyDetailSubmittedNo   = "detail.returnSubmittedNo"
	KeyDetailAttachedYes   = "detail.returnAttachedYes"
	KeyDetailAttachedNo    = "detail.returnAttachedNo"

	KeyDeclarationDate     = "declaration.date"
	KeyDeclarationLocation = "declaration.location"
)

// FieldRef binds a semantic key to a concrete template field. Path is the
// exact fully-qualified field path; Patterns are lowercase substrings tried
// against all field names when the exact path is absent.
type FieldRef struct {
	Path     string    `json:"path"`
	Kind     FieldKind `json:"kind"`
	Patterns []string  `json:"patterns,omitempty"`
}

// FieldMap is a versioned mapping from semantic keys to template fields.
// Row-addressed keys (the working-time grid) carry a %d verb in their path
// and are resolved through Row.
type FieldMap struct {
	Version string              `json:"version"`
	Fields  map[string]FieldRef `json:"fields"`
}

// Ref returns the reference for a semantic key.
func (m *FieldMap) Ref(key string) (FieldRef, bool) {
	ref, ok := m.Fields[key]
	return ref, ok
}

// Row returns the reference for a row-addressed key, with the row number
// (1-based) substituted into the path.
func (m *FieldMap) Row(key string, row int) (FieldRef, bool) {
	ref, ok := m.Fields[key]
	if !ok {
		return FieldRef{}, false
	}
	ref.Path = fmt.Sprintf(ref.Path, row)
	ref.Patterns = nil // per-row fields are always addressed exactly
	return ref, true
}

// LoadFieldMap reads a field map override from a JSON file.
func LoadFieldMap(path string) (*FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field map %s: %w", path, err)
	}
	var m FieldMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid field map %s: %w", path, err)
	}
	if len(m.Fields) == 0 {
		return nil, fmt.Errorf("field map %s defines no fields", path)
	}
	return &m, nil
}

// DefaultFieldMap returns the built-in mapping for the Arbeitsagentur
// "Erklärung zu selbständiger Arbeit" template. The paths were recovered
// from the live template with the field inspector; the master-data entries
// additionally carry patterns because those paths shift between template
// revisions.
func DefaultFieldMap() *FieldMap {
	const page1 = "Arbeitsbescheinigung[0].Seite1[0]."
	const general = page1 + "Allgemeine_Angaben_1[0]."

	return &FieldMap{
		Version: "arbeitsagentur-2023",
		Fields: map[string]FieldRef{
			KeyMasterCustomerNumber: {Path: page1 + "Kundennummer[0]", Kind: FieldKindText, Patterns: []string{"kundennummer", "customer"}},
			KeyMasterFullName:       {Path: page1 + "Name_Vorname[0]", Kind: FieldKindText, Patterns: []string{"name_vorname", "name"}},
			KeyMasterBirthDate:      {Path: page1 + "Geburtsdatum[0]", Kind: FieldKindText, Patterns: []string{"geburtsdatum", "birth"}},
			KeyMasterStreet:         {Path: page1 + "Straße_Haus-Nr.[0]", Kind: FieldKindText, Patterns: []string{"straße", "strasse", "street"}},
			KeyMasterPostalCity:     {Path: page1 + "Postleitzahl_Wohnort[0]", Kind: FieldKindText, Patterns: []string{"postleitzahl", "wohnort", "postal"}},

			KeyGeneralStartDate:  {Path: general + "Die_Tätigkeit_wird_ausgeübt[0]", Kind: FieldKindText},
			KeyGeneralEndDate:    {Path: general + "voraussichtlich_bis_Datum[0]", Kind: FieldKindText},
			KeyGeneralLocation:   {Path: general + "Ort_der_Taetigkeit[0]", Kind: FieldKindText},
			KeyGeneralType:       {Path: general + "Art_der_Taetigkeit[0]", Kind: FieldKindText},
			KeyGeneralIndefinite: {Path: general + "Kontrollkaestchen1[0]", Kind: FieldKindCheckbox},

			KeyWorkingConstant:      {Path: "gleichbleibend_ja", Kind: FieldKindCheckbox},
			KeyWorkingConstantHours: {Path: "Stundenzahl_wöchentlich", Kind: FieldKindText},
			KeyWorkingVariable:      {Path: "gleichbleibend_nein", Kind: FieldKindCheckbox},
			KeyWorkingRowStart:      {Path: "vom_%d", Kind: FieldKindText},
			KeyWorkingRowEnd:        {Path: "bis_%d", Kind: FieldKindText},
			KeyWorkingRowWeek:       {Path: "KW_%d", Kind: FieldKindText},
			KeyWorkingRowTotal:      {Path: "gesamt_%d", Kind: FieldKindText},
			KeyWorkingRowMonday:     {Path: "MO_%d", Kind: FieldKindText},
			KeyWorkingRowTuesday:    {Path: "DI_%d", Kind: FieldKindText},
			KeyWorkingRowWednesday:  {Path: "MI_%d", Kind: FieldKindText},
			KeyWorkingRowThursday:   {Path: "DO_%d", Kind: FieldKindText},
			KeyWorkingRowFriday:     {Path: "FR_%d", Kind: FieldKindText},
			KeyWorkingRowSaturday:   {Path: "SA_%d", Kind: FieldKindText},
			KeyWorkingRowSunday:     {Path: "SO_%d", Kind: FieldKindText},

			KeyIncomeSameScope:    {Path: "gleicher_Umfang_ja", Kind: FieldKindCheckbox},
			KeyIncomeUnchangedYes: {Path: "unverändert_ja", Kind: FieldKindCheckbox},
			KeyIncomeUnchangedNo:  {Path: "unverändert_nein", Kind: FieldKindCheckbox},
			KeyIncomeMonthly:      {Path: "Höhe_Einnahmen_monatlich", Kind: FieldKindText},
			KeyIncomeLowYes:       {Path: "bis_165_ja", Kind: FieldKindCheckbox},
			KeyIncomeLowNo:        {Path: "über_165_ja", Kind: FieldKindCheckbox},

			KeyDetailMonthlyIncome: {Path: "Einnahmen_monatlich", Kind: FieldKindText},
			KeyDetailExpenses:      {Path: "Ausgaben", Kind: FieldKindText},
			KeyDetailDepreciation:  {Path: "Abschreibung", Kind: FieldKindText},
			KeyDetailIncomeTax:     {Path: "Einkommensteuer", Kind: FieldKindText},
			KeyDetailChurchTax:     {Path: "Kirchensteuer", Kind: FieldKindText},
			KeyDetailSolidarity:    {Path: "Solidaritätszuschlag", Kind: FieldKindText},
			KeyDetailTaxYear:       {Path: "Steuerjahr", Kind: FieldKindText},
			KeyDetailReason:        {Path: "Begründung_keine_Steuererklärung", Kind: FieldKindText},
			KeyDetailFlatYes:       {Path: "30_Prozent_ja", Kind: FieldKindCheckbox},
			KeyDetailFlatNo:        {Path: "30_Prozent_nein", Kind: FieldKindCheckbox},
			KeyDetailAssessmentYes: {Path: "Steuerbescheid_beigefügt_ja", Kind: FieldKindCheckbox},
			KeyDetailAssessmentNo:  {Path: "Steuerbescheid_beigefügt_nein", Kind: FieldKindCheckbox},
			KeyDetailSubmittedYes:  {Path: "Steuererklärung_abgegeben_ja", Kind: FieldKindCheckbox},
			KeyDetailSubmittedNo:   {Path: "Steuererklärung_abgegeben_nein", Kind: FieldKindCheckbox},
			KeyDetailAttachedYes:   {Path: "Steuererklärung_beigefügt_ja", Kind: FieldKindCheckbox},
			KeyDetailAttachedNo:    {Path: "Steuererklärung_beigefügt_nein", Kind: FieldKindCheckbox},

			KeyDeclarationDate:     {Path: "Datum", Kind: FieldKindText},
			KeyDeclarationLocation: {Path: "Ort", Kind: FieldKindText},
		},
	}
}
