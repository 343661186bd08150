package models

import "github.com/shopspring/decimal"

func init() {
	// цена отдаётся клиенту числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}

// Product представляет товар, выставленный фермером
type Product struct {
	ID          int64           `json:"product_id"`
	FarmerID    int64           `json:"farmer_id"`
	Name        string          `json:"product_name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       *string         `json:"image"`
}
