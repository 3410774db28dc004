package export

import (
	"io"

	"github.com/casegen/casegen/server/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Test Cases"

func WriteExcel(w io.Writer, cases []models.TestCase) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return errors.WithStack(err)
	}

	cols := append(append([]column{}, columns...), createdAtColumn)
	for i, col := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return errors.WithStack(err)
		}
	}

	header := headers(cols)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.WithStack(err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return errors.WithStack(err)
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return errors.WithStack(err)
	}

	for i := range cases {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}
		row := values(cols, &cases[i])
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(f.Write(w))
}
