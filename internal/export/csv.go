// Package export renders worklog listings for download. The caller is
// responsible for scoping the records first; nothing here consults the
// authorization policy.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"worklog/internal/model"
)

var header = []string{"ID", "Date", "Name", "Surname", "Hours", "Meals", "Nights", "Created by"}

// WriteWorklogsCSV writes the given worklogs as CSV.
func WriteWorklogsCSV(w io.Writer, worklogs []model.Worklog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, wl := range worklogs {
		row := []string{
			strconv.FormatUint(uint64(wl.ID), 10),
			wl.WorkDate.Format("2006-01-02"),
			wl.Employee.Name,
			wl.Employee.Surname,
			wl.Hours.StringFixed(2),
			strconv.Itoa(wl.Meals),
			strconv.Itoa(wl.Nights),
			wl.CreatedBy,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write worklog %d: %w", wl.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
