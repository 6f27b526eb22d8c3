package dataprocessing

// RegionStat accumulates sales for one region. Percentage is the region's
// share of total revenue, rounded to two decimals, and 0 when total
// revenue is zero.
type RegionStat struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// DailyStat accumulates one calendar day of the sales trend. Dates are
// compared as zero-padded YYYY-MM-DD strings, so lexical order is
// chronological order.
type DailyStat struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	UniqueCustomers  int     `json:"unique_customers"`
}

// ProductStat accumulates quantity and revenue for one product name.
type ProductStat struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// CustomerStat accumulates spending behaviour for one customer.
type CustomerStat struct {
	CustomerID     string   `json:"customer_id"`
	TotalSpent     float64  `json:"total_spent"`
	PurchaseCount  int      `json:"purchase_count"`
	ProductsBought []string `json:"products_bought"`
	AvgOrderValue  float64  `json:"avg_order_value"`
}
