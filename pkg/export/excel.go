package export

import (
	"fmt"
	"io"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Change Rates"

// WriteChangeRates renders a change-rate table as an .xlsx workbook. Absent
// rates become empty cells, not zeros.
func WriteChangeRates(w io.Writer, product string, changeRates []domain.ChangeRate) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []any{"Product", "Date", "Level", "MoM %", "YoY %"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rate := range changeRates {
		row := []any{
			product,
			rate.Timestamp.Format("2006-01"),
			rate.Level,
			optionalCell(rate.MoMPct),
			optionalCell(rate.YoYPct),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func optionalCell(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
