package sheet

import (
	"encoding/json"
	"os"
)

// WriteReportJSON dumps the run report as indented JSON, handy for
// checking placements against the printed sheet.
func WriteReportJSON(rep *Report, path string) error {
	if rep == nil {
		return nil
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
