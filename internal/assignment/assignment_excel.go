package assignment

import (
	"io"
	"strconv"
	"strings"

	"go-metallurg/internal/shared/dateutil"

	"github.com/xuri/excelize/v2"
)

const (
	templateSheet    = "Assignments"
	TemplateFilename = "assignments_template.xlsx"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Column order of the import sheet.
var templateHeader = []string{
	"Customer",
	"Order",
	"Shift date (YYYY-MM-DD)",
	"Shift (day/night)",
	"Operator login",
	"Planned quantity",
	"Machine",
}

// ParseSheet reads the first sheet of a workbook. The first row is the header;
// blank rows are dropped but still counted so row numbers match the file.
func ParseSheet(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var out []ImportRow
	for i, cells := range rows {
		if i == 0 || blank(cells) {
			continue
		}
		out = append(out, ImportRow{
			Row:             i,
			Customer:        cell(cells, 0),
			OrderName:       cell(cells, 1),
			ShiftDate:       sheetDate(cell(cells, 2)),
			ShiftType:       cell(cells, 3),
			OperatorLogin:   cell(cells, 4),
			PlannedQuantity: cell(cells, 5),
			MachineNumber:   cell(cells, 6),
		})
	}
	return out, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sheetDate converts a date cell stored as a serial number to YYYY-MM-DD and
// passes text through unchanged.
func sheetDate(raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < 1 {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format(dateutil.Layout)
}

// BuildTemplate returns an empty import workbook with the header row.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(templateSheet, "A1", &templateHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(templateSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(templateSheet, "A", "G", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
