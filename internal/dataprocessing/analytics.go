package dataprocessing

import (
	"math"
	"sort"

	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// TotalRevenue sums total sales over all transactions. Zero for an empty
// slice, by definition rather than by error.
func TotalRevenue(transactions []domain.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		total += tx.TotalSales()
	}
	return total
}

// RegionSales groups transactions by region and returns per-region totals
// ordered by summed sales descending. Ties keep first-encountered order.
func RegionSales(transactions []domain.Transaction) []RegionStat {
	totalRevenue := TotalRevenue(transactions)

	index := make(map[string]int)
	stats := make([]RegionStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.Region]
		if !ok {
			i = len(stats)
			index[tx.Region] = i
			stats = append(stats, RegionStat{Region: tx.Region})
		}
		stats[i].TotalSales += tx.TotalSales()
		stats[i].TransactionCount++
	}

	for i := range stats {
		if totalRevenue > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / totalRevenue * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// DailyTrend groups revenue, transaction counts and distinct customers by
// date string, ordered by date ascending. Dates are grouped by exact
// string match; no calendar parsing happens here.
func DailyTrend(transactions []domain.Transaction) []DailyStat {
	index := make(map[string]int)
	customers := make(map[string]map[string]struct{})
	stats := make([]DailyStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.Date]
		if !ok {
			i = len(stats)
			index[tx.Date] = i
			stats = append(stats, DailyStat{Date: tx.Date})
			customers[tx.Date] = make(map[string]struct{})
		}
		stats[i].Revenue += tx.TotalSales()
		stats[i].TransactionCount++
		customers[tx.Date][tx.CustomerID] = struct{}{}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[stats[i].Date])
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// PeakDay returns the date with the highest revenue. Ties go to the
// earliest date since the scan walks the trend in ascending date order.
// Callers must check for an empty valid set first; an empty input returns
// errors.ErrNoTransactions.
func PeakDay(transactions []domain.Transaction) (DailyStat, error) {
	trend := DailyTrend(transactions)
	if len(trend) == 0 {
		return DailyStat{}, apperrors.ErrNoTransactions
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}
	return peak, nil
}

// productMetrics groups quantity and revenue by product name, preserving
// first-encountered order.
func productMetrics(transactions []domain.Transaction) []ProductStat {
	index := make(map[string]int)
	stats := make([]ProductStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, ProductStat{ProductName: tx.ProductName})
		}
		stats[i].Quantity += tx.Quantity
		stats[i].Revenue += tx.TotalSales()
	}

	return stats
}

// TopProducts returns the n best-selling products by summed quantity,
// descending. Ties keep group insertion order. The result is a prefix of
// the full quantity-descending ordering.
func TopProducts(transactions []domain.Transaction, n int) []ProductStat {
	stats := productMetrics(transactions)

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns all products whose summed quantity is
// strictly below threshold, ordered by quantity ascending.
func LowPerformingProducts(transactions []domain.Transaction, threshold int) []ProductStat {
	all := productMetrics(transactions)

	low := make([]ProductStat, 0)
	for _, p := range all {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})

	return low
}

// CustomerStats groups spending by customer, ordered by total spent
// descending. The distinct product list is sorted alphabetically so the
// output is deterministic.
func CustomerStats(transactions []domain.Transaction) []CustomerStat {
	index := make(map[string]int)
	products := make(map[string]map[string]struct{})
	stats := make([]CustomerStat, 0)

	for _, tx := range transactions {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(stats)
			index[tx.CustomerID] = i
			stats = append(stats, CustomerStat{CustomerID: tx.CustomerID})
			products[tx.CustomerID] = make(map[string]struct{})
		}
		stats[i].TotalSpent += tx.TotalSales()
		stats[i].PurchaseCount++
		products[tx.CustomerID][tx.ProductName] = struct{}{}
	}

	for i := range stats {
		set := products[stats[i].CustomerID]
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		stats[i].ProductsBought = names
		stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// AvailableRegions returns the distinct regions in first-encountered
// order, for the interactive filter prompt.
func AvailableRegions(transactions []domain.Transaction) []string {
	seen := make(map[string]struct{})
	regions := make([]string, 0)
	for _, tx := range transactions {
		if _, ok := seen[tx.Region]; ok {
			continue
		}
		seen[tx.Region] = struct{}{}
		regions = append(regions, tx.Region)
	}
	return regions
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
