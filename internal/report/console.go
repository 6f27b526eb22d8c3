package report

import (
	"fmt"
	"io"
)

// Render writes a human-readable rendition of the summary. All
// computation happened upstream; this only formats.
func Render(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "=== Sales Analytics Report ===\n")
	fmt.Fprintf(w, "Total records parsed: %d\n", s.Filter.TotalInput)
	fmt.Fprintf(w, "Invalid records removed: %d\n", s.Parse.Rejected()+s.Filter.Invalid)
	if s.Filter.FilteredByRegion > 0 || s.Filter.FilteredByAmount > 0 {
		fmt.Fprintf(w, "Filtered out: %d by region, %d by amount\n",
			s.Filter.FilteredByRegion, s.Filter.FilteredByAmount)
	}
	fmt.Fprintf(w, "Valid records after cleaning: %d\n\n", s.Filter.FinalCount)

	fmt.Fprintf(w, "Total Revenue: $%s\n", FormatMoney(s.TotalRevenue))
	if s.ConvertedRevenue != nil {
		fmt.Fprintf(w, "Total Revenue in %s: %s (rate %.4f)\n",
			s.ConvertedRevenue.Currency, FormatMoney(s.ConvertedRevenue.Amount), s.ConvertedRevenue.Rate)
	}
	if s.PeakDay != nil {
		fmt.Fprintf(w, "Peak Sales Day: %s ($%s across %d transactions)\n",
			s.PeakDay.Date, FormatMoney(s.PeakDay.Revenue), s.PeakDay.TransactionCount)
	}

	if len(s.Regions) > 0 {
		fmt.Fprintf(w, "\n--- Sales by Region ---\n")
		for _, r := range s.Regions {
			fmt.Fprintf(w, "%-12s $%-14s %4d transactions  %s\n",
				r.Region, FormatMoney(r.TotalSales), r.TransactionCount, FormatPercent(r.Percentage))
		}
	}

	if len(s.Daily) > 0 {
		fmt.Fprintf(w, "\n--- Daily Sales Trend ---\n")
		for _, d := range s.Daily {
			fmt.Fprintf(w, "%s  $%-14s %4d transactions  %d customers\n",
				d.Date, FormatMoney(d.Revenue), d.TransactionCount, d.UniqueCustomers)
		}
	}

	if len(s.TopProducts) > 0 {
		fmt.Fprintf(w, "\n--- Top Selling Products ---\n")
		for i, p := range s.TopProducts {
			fmt.Fprintf(w, "%d. %-20s qty %-6d $%s\n", i+1, p.ProductName, p.Quantity, FormatMoney(p.Revenue))
		}
	}

	if len(s.LowProducts) > 0 {
		fmt.Fprintf(w, "\n--- Low Performing Products ---\n")
		for _, p := range s.LowProducts {
			fmt.Fprintf(w, "%-23s qty %-6d $%s\n", p.ProductName, p.Quantity, FormatMoney(p.Revenue))
		}
	}

	if len(s.Customers) > 0 {
		fmt.Fprintf(w, "\n--- Customer Analysis ---\n")
		for _, c := range s.Customers {
			fmt.Fprintf(w, "%-8s spent $%-12s %3d purchases  avg $%s\n",
				c.CustomerID, FormatMoney(c.TotalSpent), c.PurchaseCount, FormatMoney(c.AvgOrderValue))
		}
	}
}
