package pdf

import (
	"fmt"
	"strings"

	"github.com/docfiller/docfiller/internal/model"
)

// fillMasterData writes the five identity targets. Master-data paths are the
// ones that move between template revisions, so every target resolves
// exact-path-first with a pattern fallback (see locate).
func (f *Filler) fillMasterData(form Form, md model.MasterData) []WriteResult {
	var out []WriteResult

	fullName := ""
	if md.LastName != "" || md.FirstName != "" {
		fullName = fmt.Sprintf("%s, %s", md.LastName, md.FirstName)
	}
	postalCity := strings.TrimSpace(md.PostalCode + " " + md.City)

	f.setTextIfPresent(form, KeyMasterCustomerNumber, md.CustomerNumber, &out)
	f.setTextIfPresent(form, KeyMasterFullName, fullName, &out)
	f.setTextIfPresent(form, KeyMasterBirthDate, md.BirthDate, &out)
	f.setTextIfPresent(form, KeyMasterStreet, md.Street, &out)
	f.setTextIfPresent(form, KeyMasterPostalCity, postalCity, &out)

	return out
}
