// Package export renders report summaries as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/lalith-99/propmaster/internal/derived"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	MonthlySheet = "Monthly"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var monthlyHeader = []string{"Month", "Revenue", "Expenses", "Net"}

// Workbook holds everything a report export needs.
type Workbook struct {
	Title   string
	Date    string
	Owner   models.OwnerSettings
	Summary derived.ReportSummary
}

// Render builds the .xlsx file: a key/value Summary sheet and a Monthly
// sheet with one row per month.
func (w Workbook) Render() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(MonthlySheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("create number style: %w", err)
	}

	if err := w.writeSummary(f, header, money); err != nil {
		return nil, err
	}
	if err := w.writeMonthly(f, header, money); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w Workbook) writeSummary(f *excelize.File, header, money int) error {
	s := w.Summary
	scope := func(v string) string {
		if v == "" {
			return "All"
		}
		return v
	}
	rooms := "All"
	if s.Filter.Rooms > 0 {
		rooms = fmt.Sprint(s.Filter.Rooms)
	}

	rows := [][]any{
		{w.Title, ""},
		{"Owner", w.Owner.Name},
		{"Generated", w.Date},
		{"Building", scope(s.Filter.Building)},
		{"Rooms", rooms},
		{"Tenant status", scope(string(s.Filter.TenantStatus))},
		{"From", scope(s.Filter.From)},
		{"To", scope(s.Filter.To)},
		{"Income", s.Income},
		{"Expenses", s.Expenses},
		{"Net profit", s.NetProfit},
		{"Occupancy rate (%)", s.OccupancyRate},
		{"Apartments", s.Apartments},
		{"Tenants", s.Tenants},
		{"Transactions", s.Transactions},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("set title style: %w", err)
	}
	// Income, Expenses, Net profit
	if err := f.SetCellStyle(SummarySheet, "B9", "B11", money); err != nil {
		return fmt.Errorf("set number style: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return f.SetColWidth(SummarySheet, "B", "B", 30)
}

func (w Workbook) writeMonthly(f *excelize.File, header, money int) error {
	if err := f.SetSheetRow(MonthlySheet, "A1", &monthlyHeader); err != nil {
		return fmt.Errorf("write monthly header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(monthlyHeader), 1)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(MonthlySheet, "A1", last, header); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, m := range w.Summary.Monthly {
		row := []any{m.Month, m.Revenue, m.Expense, m.Revenue - m.Expense}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(MonthlySheet, cell, &row); err != nil {
			return fmt.Errorf("write monthly row %s: %w", m.Month, err)
		}
	}
	if n := len(w.Summary.Monthly); n > 0 {
		end, _ := excelize.CoordinatesToCellName(len(monthlyHeader), n+1)
		if err := f.SetCellStyle(MonthlySheet, "B2", end, money); err != nil {
			return fmt.Errorf("set number style: %w", err)
		}
	}
	return f.SetColWidth(MonthlySheet, "A", "D", 15)
}

// FormatSize renders a byte count the way the reports list shows it.
func FormatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
