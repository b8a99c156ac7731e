package pdf

import "fmt"

// WriteStatus is the outcome of a single field write.
type WriteStatus string

const (
	// StatusWritten means the value was written to the field.
	StatusWritten WriteStatus = "written"
	// StatusChecked means the checkbox was ticked.
	StatusChecked WriteStatus = "checked"
	// StatusSkipped means the submission carried no value for this field.
	StatusSkipped WriteStatus = "skipped"
	// StatusMissing means no matching field exists in the template.
	StatusMissing WriteStatus = "missing"
	// StatusFailed means the field exists but the write errored.
	StatusFailed WriteStatus = "failed"
)

// WriteResult records what happened to one logical field target. Fillers
// collect results instead of raising, so a missing field in the template
// never blocks the remaining writes and callers can assert partial-success
// behavior precisely.
type WriteResult struct {
	Key    string      `json:"key"`             // semantic key, e.g. "master.fullName"
	Field  string      `json:"field,omitempty"` // resolved template field path
	Status WriteStatus `json:"status"`
	Err    error       `json:"-"`
}

func (r WriteResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", r.Key, r.Field, r.Status, r.Err)
	}
	return fmt.Sprintf("%s (%s): %s", r.Key, r.Field, r.Status)
}

// Written reports how many results carry a written or checked status.
func Written(results []WriteResult) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusWritten || r.Status == StatusChecked {
			n++
		}
	}
	return n
}
