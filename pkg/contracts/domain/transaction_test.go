package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalSales(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		price    float64
		expected float64
	}{
		{"typical", 2, 499.99, 999.98},
		{"single unit", 1, 20, 20},
		{"zero quantity", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Quantity: tt.quantity, UnitPrice: tt.price}
			assert.Equal(t, tt.expected, tx.TotalSales())
		})
	}
}

func TestFeedColumns(t *testing.T) {
	cols := FeedColumns()
	assert.Len(t, cols, 8)
	assert.Equal(t, "TransactionID", cols[0])
	assert.Equal(t, "Region", cols[7])
}
