package inventory

import (
	"github.com/shopspring/decimal"
)

//Record represents one purchasable item in Clink's catalog
type Record struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	ColorID  string `json:"color_id"`
	NumHoles string `json:"num_holes"`

	//PriceClink is the per-unit price at Clink
	PriceClink decimal.Decimal `json:"price_clink"`

	//PriceHomeDepot is the per-unit competitor price. nil means the price is
	//unknown, which is not the same as free
	PriceHomeDepot *decimal.Decimal `json:"price_home_depot,omitempty"`

	//Available is the unit count currently in stock
	Available int `json:"available"`

	LengthIn *float64 `json:"length_in,omitempty"`
	WidthIn  *float64 `json:"width_in,omitempty"`
	HeightIn *float64 `json:"height_in,omitempty"`
}

//CalculationResult is the outcome of a successful cost calculation
type CalculationResult struct {
	MaterialName      string `json:"material_name"`
	RequestedQuantity int    `json:"requested_quantity"`

	ClinkPrice  decimal.Decimal  `json:"clink_price"`
	RetailPrice *decimal.Decimal `json:"retail_price,omitempty"`
	Savings     *decimal.Decimal `json:"savings,omitempty"`

	//RecommendedQuantity is the requested quantity inflated by a 10% buffer
	//and rounded up to the next multiple of 5
	RecommendedQuantity    int              `json:"recommended_quantity"`
	RecommendedClinkPrice  decimal.Decimal  `json:"recommended_clink_price"`
	RecommendedRetailPrice *decimal.Decimal `json:"recommended_retail_price,omitempty"`
	RecommendedSavings     *decimal.Decimal `json:"recommended_savings,omitempty"`
}
