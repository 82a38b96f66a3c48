package chatbot

import (
	"fmt"
	"strings"

	"github.com/ManishR23/clink-chatbot/inventory"
)

// The composer is the single place savings figures are surfaced: a comparison
// is only ever shown when the exact requested quantity is fully in stock and
// the competitor price is known.

// ComposeQuote renders a successful calculation as a customer-facing message,
// including the buffered order recommendation
func ComposeQuote(res *inventory.CalculationResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d %s will cost you $%s at Clink", res.RequestedQuantity, res.MaterialName, res.ClinkPrice.StringFixed(2))
	if res.RetailPrice != nil && res.Savings != nil {
		fmt.Fprintf(&sb, ", compared to $%s at Home Depot, so you save $%s", res.RetailPrice.StringFixed(2), res.Savings.StringFixed(2))
	}
	sb.WriteString(". ")

	fmt.Fprintf(&sb, "We recommend ordering %d to cover cuts and breakage: $%s at Clink", res.RecommendedQuantity, res.RecommendedClinkPrice.StringFixed(2))
	if res.RecommendedRetailPrice != nil && res.RecommendedSavings != nil {
		fmt.Fprintf(&sb, " vs $%s at Home Depot, saving you $%s", res.RecommendedRetailPrice.StringFixed(2), res.RecommendedSavings.StringFixed(2))
	}
	sb.WriteString(".")

	return sb.String()
}

// ComposeNotFound renders an apology for a material that is not in the
// catalog. No figures are included
func ComposeNotFound(name string) string {
	return fmt.Sprintf("Sorry, we couldn't find %q in Clink's inventory. Double-check the material name, or ask me what we carry.", name)
}

// ComposeShortStock renders the fallback for a request that exceeds current
// availability. With nothing in stock it states so plainly; otherwise it
// quotes the Clink-only price for the available units and notes how many must
// be sourced elsewhere
func ComposeShortStock(rec *inventory.Record, requested int) string {
	if rec.Available == 0 {
		return fmt.Sprintf("Unfortunately %s is out of stock at Clink right now, so you'll need to source these elsewhere.", rec.Name)
	}

	remainder := requested - rec.Available
	return fmt.Sprintf("We only have %d %s in stock, which comes to $%s at Clink. You'll need to source the remaining %d elsewhere.",
		rec.Available, rec.Name, rec.ClinkPriceFor(rec.Available).StringFixed(2), remainder)
}
