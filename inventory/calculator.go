package inventory

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	buffer = decimal.RequireFromString("1.1")
	five   = decimal.NewFromInt(5)
)

//Calculate looks up name case-insensitively and computes pricing for the
//requested quantity. It returns *NotFoundError when no record matches and
//*InsufficientStockError when fewer units are available than requested. The
//stock check happens before any price computation: a savings figure is never
//produced when the full quantity cannot be fulfilled.
//
//All currency figures are computed unrounded and rounded to 2 decimal places
//once at the end, so savings is never a subtraction of two already-rounded
//quantities
func (s *Store) Calculate(name string, quantity int) (*CalculationResult, error) {
	if quantity < 1 {
		return nil, &Error{Description: "quantity must be positive", Type: ErrorTypeUser, Err: errors.New("invalid quantity")}
	}

	rec := s.FindByName(name)
	if rec == nil {
		return nil, &NotFoundError{Name: name}
	}

	if quantity > rec.Available {
		return nil, &InsufficientStockError{Name: rec.Name, Requested: quantity, Available: rec.Available}
	}

	res := &CalculationResult{
		MaterialName:        rec.Name,
		RequestedQuantity:   quantity,
		RecommendedQuantity: recommendedQuantity(quantity),
	}

	res.ClinkPrice, res.RetailPrice, res.Savings = priceAt(rec, quantity)
	res.RecommendedClinkPrice, res.RecommendedRetailPrice, res.RecommendedSavings = priceAt(rec, res.RecommendedQuantity)

	return res, nil
}

//priceAt computes the Clink price, retail price, and savings for quantity
//units of rec. Retail and savings are nil when the competitor price is unknown
func priceAt(rec *Record, quantity int) (clink decimal.Decimal, retail, savings *decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))

	clinkFull := rec.PriceClink.Mul(qty)
	clink = clinkFull.Round(2)

	if rec.PriceHomeDepot == nil {
		return clink, nil, nil
	}

	retailFull := rec.PriceHomeDepot.Mul(qty)
	r := retailFull.Round(2)
	sv := retailFull.Sub(clinkFull).Round(2)
	return clink, &r, &sv
}

//ClinkPriceFor returns the Clink price for quantity units, rounded to 2
//decimal places
func (r *Record) ClinkPriceFor(quantity int) decimal.Decimal {
	return r.PriceClink.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

//recommendedQuantity inflates quantity by a 10% buffer and rounds up to the
//next multiple of 5. Standard ceiling semantics: an exact multiple of 5 is
//not bumped further
func recommendedQuantity(quantity int) int {
	q := decimal.NewFromInt(int64(quantity))
	return int(q.Mul(buffer).Div(five).Ceil().Mul(five).IntPart())
}
