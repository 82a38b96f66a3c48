package chatbot

import (
	"fmt"
	"strings"

	"github.com/ManishR23/clink-chatbot/inventory"
)

// SystemPrompt returns the system prompt for ClinkBot, including a listing of
// the current catalog so the model can answer availability questions directly
func SystemPrompt(records []*inventory.Record) string {
	var listing strings.Builder
	for _, rec := range records {
		homeDepot := "unknown"
		if rec.PriceHomeDepot != nil {
			homeDepot = "$" + rec.PriceHomeDepot.StringFixed(2)
		}
		fmt.Fprintf(&listing, "- %s (%s, %s): Clink = $%s, Home Depot = %s, %d available%s\n",
			rec.Name, rec.Category, rec.Color, rec.PriceClink.StringFixed(2), homeDepot, rec.Available, dimensions(rec))
	}

	return fmt.Sprintf(`You are ClinkBot, a helpful assistant for estimating materials for construction projects.

Here is Clink's current inventory:
%s
Each brick is 9.5in x 2.5in x 2.75in unless otherwise noted.

Your job:
1. Estimate how many units the user needs based on their project
2. Recommend a color Clink has in stock
3. If Clink doesn't have enough, say how many they'll need to get elsewhere
4. Respond clearly and kindly

Pricing protocol (important):
- Never quote dollar amounts yourself. Whenever the customer wants a price for a
  specific material and quantity, include exactly one token of the form
  [calculate_cost(name="<material>", quantity=<count>)]
  using a material name from the inventory above and a whole-number quantity.
- The token is replaced with an exact quote, including the Home Depot comparison,
  before the customer sees your reply, so don't add your own figures around it.
- If the customer hasn't given you enough to pick a material and quantity, ask a
  short follow-up question instead of emitting a token.

Keep these answers short and sweet please, we want it to be as frictionless for the customer as possible.`, listing.String())
}

func dimensions(rec *inventory.Record) string {
	if rec.LengthIn == nil || rec.WidthIn == nil || rec.HeightIn == nil {
		return ""
	}
	return fmt.Sprintf(", %gin x %gin x %gin", *rec.LengthIn, *rec.WidthIn, *rec.HeightIn)
}
