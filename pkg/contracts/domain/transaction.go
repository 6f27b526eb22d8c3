package domain

// Transaction represents a single validated sales event derived from one
// line of the pipe-delimited feed. Instances are constructed only by the
// parsing stage and are never mutated afterwards; any derived value is a
// pure function of the fields below.
type Transaction struct {
	TransactionID string  `json:"transaction_id" csv:"TransactionID" validate:"required,startswith=T"`
	Date          string  `json:"date" csv:"Date"`
	ProductID     string  `json:"product_id" csv:"ProductID" validate:"required,startswith=P"`
	ProductName   string  `json:"product_name" csv:"ProductName"`
	Quantity      int     `json:"quantity" csv:"Quantity" validate:"gt=0"`
	UnitPrice     float64 `json:"unit_price" csv:"UnitPrice" validate:"gt=0"`
	CustomerID    string  `json:"customer_id" csv:"CustomerID" validate:"required,startswith=C"`
	Region        string  `json:"region" csv:"Region" validate:"required"`
}

// TotalSales returns the transaction value. It is always recomputed from
// quantity and unit price so it can never desynchronize from its inputs.
func (t Transaction) TotalSales() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// FeedColumns lists the feed column names in positional order. The same
// order is used for the cleaned-data export, with a derived TotalSales
// column appended.
func FeedColumns() []string {
	return []string{
		"TransactionID",
		"Date",
		"ProductID",
		"ProductName",
		"Quantity",
		"UnitPrice",
		"CustomerID",
		"Region",
	}
}
