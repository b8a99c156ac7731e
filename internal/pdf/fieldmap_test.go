package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFieldMap_CoversAllKeys(t *testing.T) {
	m := DefaultFieldMap()
	keys := []string{
		KeyMasterCustomerNumber, KeyMasterFullName, KeyMasterBirthDate,
		KeyMasterStreet, KeyMasterPostalCity,
		KeyGeneralStartDate, KeyGeneralEndDate, KeyGeneralLocation,
		KeyGeneralType, KeyGeneralIndefinite,
		KeyWorkingConstant, KeyWorkingConstantHours, KeyWorkingVariable,
		KeyWorkingRowStart, KeyWorkingRowEnd, KeyWorkingRowWeek, KeyWorkingRowTotal,
		KeyWorkingRowMonday, KeyWorkingRowTuesday, KeyWorkingRowWednesday,
		KeyWorkingRowThursday, KeyWorkingRowFriday, KeyWorkingRowSaturday, KeyWorkingRowSunday,
		KeyIncomeSameScope, KeyIncomeUnchangedYes, KeyIncomeUnchangedNo,
		KeyIncomeMonthly, KeyIncomeLowYes, KeyIncomeLowNo,
		KeyDetailMonthlyIncome, KeyDetailExpenses, KeyDetailDepreciation,
		KeyDetailIncomeTax, KeyDetailChurchTax, KeyDetailSolidarity,
		KeyDetailTaxYear, KeyDetailReason, KeyDetailFlatYes, KeyDetailFlatNo,
		KeyDetailAssessmentYes, KeyDetailAssessmentNo,
		KeyDetailSubmittedYes, KeyDetailSubmittedNo,
		KeyDetailAttachedYes, KeyDetailAttachedNo,
		KeyDeclarationDate, KeyDeclarationLocation,
	}
	for _, key := range keys {
		_, ok := m.Ref(key)
		assert.True(t, ok, "default map missing %s", key)
	}
	assert.NotEmpty(t, m.Version)
}

func TestFieldMap_Row(t *testing.T) {
	m := DefaultFieldMap()
	ref, ok := m.Row(KeyWorkingRowStart, 3)
	require.True(t, ok)
	assert.Equal(t, "vom_3", ref.Path)
	assert.Empty(t, ref.Patterns)

	_, ok = m.Row("working.row.unknown", 1)
	assert.False(t, ok)
}

func TestLoadFieldMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fieldmap.json")
	content := `{
		"version": "arbeitsagentur-2026",
		"fields": {
			"master.customerNumber": {
				"path": "Neu[0].Kundennummer[0]",
				"kind": "text",
				"patterns": ["kundennummer"]
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := LoadFieldMap(path)
	require.NoError(t, err)
	assert.Equal(t, "arbeitsagentur-2026", m.Version)
	ref, ok := m.Ref(KeyMasterCustomerNumber)
	require.True(t, ok)
	assert.Equal(t, "Neu[0].Kundennummer[0]", ref.Path)
	assert.Equal(t, FieldKindText, ref.Kind)
}

func TestLoadFieldMap_Errors(t *testing.T) {
	_, err := LoadFieldMap(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadFieldMap(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"version":"x","fields":{}}`), 0o600))
	_, err = LoadFieldMap(empty)
	assert.Error(t, err)
}
