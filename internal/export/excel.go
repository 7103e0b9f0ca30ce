// Package export renders the problem list as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/problem-finder/internal/models"
)

const sheetName = "Problems"

var headers = []string{
	"ID", "Statement", "Solution", "Solution URL",
	"Negative Reviews", "Review URL", "Sources", "Created At", "Updated At",
}

// Problems builds a single-sheet workbook with one row per problem. The
// sources column carries the citation URLs joined with newlines so the cell
// stays readable in a spreadsheet.
func Problems(problems []models.Problem) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	for col, header := range headers {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return nil, fmt.Errorf("header cell: %w", cellErr)
		}
		if setErr := f.SetCellValue(sheetName, cell, header); setErr != nil {
			return nil, fmt.Errorf("set header: %w", setErr)
		}
	}

	for row, p := range problems {
		values := []any{
			p.ID,
			p.Statement,
			p.Solution,
			p.SolutionURL,
			p.HasNegativeReviews,
			p.ReviewURL,
			joinSourceURLs(p.Sources),
			p.CreatedAt.Format("2006-01-02 15:04:05"),
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, row+2)
			if cellErr != nil {
				return nil, fmt.Errorf("data cell: %w", cellErr)
			}
			if setErr := f.SetCellValue(sheetName, cell, value); setErr != nil {
				return nil, fmt.Errorf("set cell: %w", setErr)
			}
		}
	}

	return f, nil
}

// Write streams the workbook for problems to w.
func Write(w io.Writer, problems []models.Problem) error {
	f, err := Problems(problems)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func joinSourceURLs(sources []models.Source) string {
	out := ""
	for i, s := range sources {
		if i > 0 {
			out += "\n"
		}
		out += s.URL
	}
	return out
}
