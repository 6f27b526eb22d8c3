package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescli/internal/config"
	"salescli/internal/report"
)

// ExcelWriter lays a run summary out as a multi-sheet workbook.
type ExcelWriter struct {
	paths *config.Paths
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(paths *config.Paths) *ExcelWriter {
	return &ExcelWriter{paths: paths}
}

// WriteSummary writes the full summary workbook to filePath. Relative
// paths resolve against the output directory.
func (w *ExcelWriter) WriteSummary(filePath string, s *report.Summary) error {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) && w.paths != nil {
		fullPath = w.paths.GetOutputPath(fullPath)
	}

	slog.Info("Writing Excel summary",
		slog.String("full_path", fullPath),
		slog.String("run_id", s.RunID))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, s); err != nil {
		return err
	}
	if err := w.writeRegionSheet(f, s); err != nil {
		return err
	}
	if err := w.writeDailySheet(f, s); err != nil {
		return err
	}
	if err := w.writeProductSheet(f, s); err != nil {
		return err
	}
	if err := w.writeCustomerSheet(f, s); err != nil {
		return err
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, s *report.Summary) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run ID", s.RunID},
		{"Generated At", s.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Revenue (USD)", s.TotalRevenue},
		{"Records Parsed", s.Filter.TotalInput},
		{"Invalid Records", s.Parse.Rejected() + s.Filter.Invalid},
		{"Filtered By Region", s.Filter.FilteredByRegion},
		{"Filtered By Amount", s.Filter.FilteredByAmount},
		{"Final Record Count", s.Filter.FinalCount},
	}
	if s.ConvertedRevenue != nil {
		rows = append(rows,
			[]interface{}{fmt.Sprintf("Total Revenue (%s)", s.ConvertedRevenue.Currency), s.ConvertedRevenue.Amount},
			[]interface{}{"Exchange Rate", s.ConvertedRevenue.Rate})
	}
	if s.PeakDay != nil {
		rows = append(rows,
			[]interface{}{"Peak Sales Day", s.PeakDay.Date},
			[]interface{}{"Peak Day Revenue", s.PeakDay.Revenue})
	}

	return writeRows(f, sheet, nil, rows)
}

func (w *ExcelWriter) writeRegionSheet(f *excelize.File, s *report.Summary) error {
	rows := make([][]interface{}, 0, len(s.Regions))
	for _, r := range s.Regions {
		rows = append(rows, []interface{}{r.Region, r.TotalSales, r.TransactionCount, r.Percentage})
	}
	return addSheet(f, "Regions",
		[]string{"Region", "Total Sales", "Transactions", "Percentage"}, rows)
}

func (w *ExcelWriter) writeDailySheet(f *excelize.File, s *report.Summary) error {
	rows := make([][]interface{}, 0, len(s.Daily))
	for _, d := range s.Daily {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers})
	}
	return addSheet(f, "Daily Trend",
		[]string{"Date", "Revenue", "Transactions", "Unique Customers"}, rows)
}

func (w *ExcelWriter) writeProductSheet(f *excelize.File, s *report.Summary) error {
	rows := make([][]interface{}, 0, len(s.TopProducts)+len(s.LowProducts))
	for _, p := range s.TopProducts {
		rows = append(rows, []interface{}{p.ProductName, p.Quantity, p.Revenue, "top"})
	}
	for _, p := range s.LowProducts {
		rows = append(rows, []interface{}{p.ProductName, p.Quantity, p.Revenue, "low"})
	}
	return addSheet(f, "Products",
		[]string{"Product", "Quantity Sold", "Revenue", "Tier"}, rows)
}

func (w *ExcelWriter) writeCustomerSheet(f *excelize.File, s *report.Summary) error {
	rows := make([][]interface{}, 0, len(s.Customers))
	for _, c := range s.Customers {
		rows = append(rows, []interface{}{
			c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue, len(c.ProductsBought),
		})
	}
	return addSheet(f, "Customers",
		[]string{"Customer", "Total Spent", "Purchases", "Avg Order Value", "Distinct Products"}, rows)
}

func addSheet(f *excelize.File, name string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return writeRows(f, name, headers, rows)
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	rowNum := 1
	if len(headers) > 0 {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &headers); err != nil {
			return fmt.Errorf("failed to write headers on %s: %w", sheet, err)
		}
		rowNum++
	}
	for _, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", rowNum, sheet, err)
		}
		rowNum++
	}
	return nil
}
