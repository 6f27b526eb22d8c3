package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// sampleTransactions is a small but representative valid set:
// two regions, three days, three products, three customers.
func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		makeTx("T101", "2024-12-05", "P101", "Laptop", 2, 500, "C501", "North"),   // 1000
		makeTx("T102", "2024-12-05", "P102", "Mouse", 10, 20, "C502", "South"),    // 200
		makeTx("T103", "2024-12-06", "P103", "Keyboard", 4, 80, "C501", "North"),  // 320
		makeTx("T104", "2024-12-07", "P102", "Mouse", 5, 20, "C503", "South"),     // 100
		makeTx("T105", "2024-12-07", "P101", "Laptop", 1, 500, "C502", "North"),   // 500
	}
}

func TestTotalRevenue(t *testing.T) {
	assert.Equal(t, 2120.0, TotalRevenue(sampleTransactions()))
}

func TestTotalRevenue_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalRevenue(nil))
}

func TestRegionSales(t *testing.T) {
	stats := RegionSales(sampleTransactions())

	require.Len(t, stats, 2)
	assert.Equal(t, "North", stats[0].Region)
	assert.Equal(t, 1820.0, stats[0].TotalSales)
	assert.Equal(t, 3, stats[0].TransactionCount)
	assert.Equal(t, "South", stats[1].Region)
	assert.Equal(t, 300.0, stats[1].TotalSales)

	// Percentages sum to 100 within rounding.
	var pctSum float64
	for _, s := range stats {
		pctSum += s.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 0.02)

	// Non-increasing by sales.
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].TotalSales, stats[i].TotalSales)
	}
}

func TestRegionSales_ZeroRevenue(t *testing.T) {
	// Percentage must be defined (0) when there is no revenue to divide by.
	stats := RegionSales(nil)
	assert.Empty(t, stats)
}

func TestRegionSales_TieKeepsFirstEncountered(t *testing.T) {
	txs := []domain.Transaction{
		makeTx("T1", "2024-12-01", "P1", "A", 1, 100, "C1", "East"),
		makeTx("T2", "2024-12-01", "P1", "A", 1, 100, "C2", "West"),
	}

	stats := RegionSales(txs)
	require.Len(t, stats, 2)
	assert.Equal(t, "East", stats[0].Region)
	assert.Equal(t, "West", stats[1].Region)
}

func TestDailyTrend(t *testing.T) {
	trend := DailyTrend(sampleTransactions())

	require.Len(t, trend, 3)
	assert.Equal(t, "2024-12-05", trend[0].Date)
	assert.Equal(t, 1200.0, trend[0].Revenue)
	assert.Equal(t, 2, trend[0].TransactionCount)
	assert.Equal(t, 2, trend[0].UniqueCustomers)

	assert.Equal(t, "2024-12-06", trend[1].Date)
	assert.Equal(t, 320.0, trend[1].Revenue)
	assert.Equal(t, 1, trend[1].UniqueCustomers)

	assert.Equal(t, "2024-12-07", trend[2].Date)
	assert.Equal(t, 600.0, trend[2].Revenue)
	assert.Equal(t, 2, trend[2].UniqueCustomers)

	// Dates are non-decreasing.
	for i := 1; i < len(trend); i++ {
		assert.LessOrEqual(t, trend[i-1].Date, trend[i].Date)
	}
}

func TestDailyTrend_SingleTransaction(t *testing.T) {
	tx := makeTx("T101", "2024-12-05", "P101", "Laptop", 2, 500, "C501", "North")
	trend := DailyTrend([]domain.Transaction{tx})

	require.Len(t, trend, 1)
	assert.Equal(t, tx.TotalSales(), trend[0].Revenue)
	assert.Equal(t, 1, trend[0].TransactionCount)
	assert.Equal(t, 1, trend[0].UniqueCustomers)
}

func TestPeakDay(t *testing.T) {
	peak, err := PeakDay(sampleTransactions())
	require.NoError(t, err)

	assert.Equal(t, "2024-12-05", peak.Date)
	assert.Equal(t, 1200.0, peak.Revenue)
}

func TestPeakDay_TieGoesToEarliestDate(t *testing.T) {
	txs := []domain.Transaction{
		makeTx("T2", "2024-12-09", "P1", "A", 1, 100, "C1", "East"),
		makeTx("T1", "2024-12-03", "P1", "A", 1, 100, "C1", "East"),
	}

	peak, err := PeakDay(txs)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-03", peak.Date)
}

func TestPeakDay_SingleTransaction(t *testing.T) {
	tx := makeTx("T101", "2024-12-05", "P101", "Laptop", 2, 500, "C501", "North")

	peak, err := PeakDay([]domain.Transaction{tx})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-05", peak.Date)
	assert.Equal(t, 1000.0, peak.Revenue)
}

func TestPeakDay_EmptyInput(t *testing.T) {
	_, err := PeakDay(nil)
	assert.ErrorIs(t, err, apperrors.ErrNoTransactions)
}

func TestTopProducts(t *testing.T) {
	top := TopProducts(sampleTransactions(), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "Mouse", top[0].ProductName)
	assert.Equal(t, 15, top[0].Quantity)
	assert.Equal(t, 300.0, top[0].Revenue)
	assert.Equal(t, "Keyboard", top[1].ProductName)
	assert.Equal(t, 4, top[1].Quantity)
}

func TestTopProducts_IsPrefixOfFullOrdering(t *testing.T) {
	txs := sampleTransactions()
	full := TopProducts(txs, 0)
	top2 := TopProducts(txs, 2)

	require.GreaterOrEqual(t, len(full), 2)
	assert.Equal(t, full[:2], top2)

	for i := 1; i < len(full); i++ {
		assert.GreaterOrEqual(t, full[i-1].Quantity, full[i].Quantity)
	}
}

func TestLowPerformingProducts(t *testing.T) {
	low := LowPerformingProducts(sampleTransactions(), 10)

	// Mouse sold 15, above threshold; Laptop 3 and Keyboard 4 are below.
	require.Len(t, low, 2)
	assert.Equal(t, "Laptop", low[0].ProductName)
	assert.Equal(t, 3, low[0].Quantity)
	assert.Equal(t, "Keyboard", low[1].ProductName)
	assert.Equal(t, 4, low[1].Quantity)
}

func TestLowPerformingProducts_ThresholdIsExclusive(t *testing.T) {
	txs := []domain.Transaction{
		makeTx("T1", "2024-12-01", "P1", "A", 10, 5, "C1", "East"),
	}
	assert.Empty(t, LowPerformingProducts(txs, 10))
	assert.Len(t, LowPerformingProducts(txs, 11), 1)
}

func TestCustomerStats(t *testing.T) {
	stats := CustomerStats(sampleTransactions())

	require.Len(t, stats, 3)

	// C501 spent 1320, C502 700, C503 100.
	assert.Equal(t, "C501", stats[0].CustomerID)
	assert.Equal(t, 1320.0, stats[0].TotalSpent)
	assert.Equal(t, 2, stats[0].PurchaseCount)
	assert.Equal(t, 660.0, stats[0].AvgOrderValue)
	assert.Equal(t, []string{"Keyboard", "Laptop"}, stats[0].ProductsBought)

	assert.Equal(t, "C502", stats[1].CustomerID)
	assert.Equal(t, 700.0, stats[1].TotalSpent)
	assert.Equal(t, []string{"Laptop", "Mouse"}, stats[1].ProductsBought)

	assert.Equal(t, "C503", stats[2].CustomerID)

	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].TotalSpent, stats[i].TotalSpent)
	}
}

func TestCustomerStats_AvgOrderValueRounded(t *testing.T) {
	txs := []domain.Transaction{
		makeTx("T1", "2024-12-01", "P1", "A", 1, 10, "C1", "East"),
		makeTx("T2", "2024-12-01", "P1", "A", 1, 10, "C1", "East"),
		makeTx("T3", "2024-12-01", "P1", "A", 1, 5, "C1", "East"),
	}

	stats := CustomerStats(txs)
	require.Len(t, stats, 1)
	// 25 / 3 = 8.333... rounds to 8.33
	assert.Equal(t, 8.33, stats[0].AvgOrderValue)
}

func TestAvailableRegions(t *testing.T) {
	regions := AvailableRegions(sampleTransactions())
	assert.Equal(t, []string{"North", "South"}, regions)
}

func TestAggregations_AreIdempotentAndNonMutating(t *testing.T) {
	txs := sampleTransactions()
	snapshot := sampleTransactions()

	first := RegionSales(txs)
	second := RegionSales(txs)
	assert.Equal(t, first, second)

	trendFirst := DailyTrend(txs)
	trendSecond := DailyTrend(txs)
	assert.Equal(t, trendFirst, trendSecond)

	_ = TopProducts(txs, 3)
	_ = CustomerStats(txs)

	// The input slice is never reordered or mutated.
	assert.Equal(t, snapshot, txs)
}
