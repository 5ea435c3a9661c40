package assignment_test

import (
	"bytes"
	"testing"
	"time"

	"go-metallurg/internal/assignment"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func TestParseSheet(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Customer", "Order", "Date", "Shift", "Login", "Qty", "Machine"},
		{"Уралмаш", "З-101", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), "day", "ivanov", 40, "CNC-3"},
		{"  "},
		{"ЧТЗ", "З-7", "15.10.2026", "ночь", "petrov", "12", "LATHE-1"},
	})

	rows, err := assignment.ParseSheet(buf)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Row)
	assert.Equal(t, "2026-10-14", rows[0].ShiftDate)
	assert.Equal(t, "ivanov", rows[0].OperatorLogin)
	assert.Equal(t, "40", rows[0].PlannedQuantity)
	assert.Equal(t, "CNC-3", rows[0].MachineNumber)

	assert.Equal(t, 3, rows[1].Row)
	assert.Equal(t, "15.10.2026", rows[1].ShiftDate)
	assert.Equal(t, "ночь", rows[1].ShiftType)
}

func TestParseSheet_NotAWorkbook(t *testing.T) {
	_, err := assignment.ParseSheet(bytes.NewBufferString("customer,order\n"))

	assert.Error(t, err)
}

func TestBuildTemplate(t *testing.T) {
	data, err := assignment.BuildTemplate()
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	header, err := f.GetRows("Assignments")
	assert.NoError(t, err)
	assert.Len(t, header, 1)
	assert.Equal(t, "Operator login", header[0][4])

	rows, err := assignment.ParseSheet(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
