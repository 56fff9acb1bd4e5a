package service

import (
	"bytes"
	"fmt"

	"github.com/foodgram/backend/internal/types"
)

// ShoppingListFilename is the fixed attachment name for the exported list
const ShoppingListFilename = "shopping_cart.txt"

// RenderShoppingList serializes the aggregated list to the downloadable
// plain-text document, one "name: amount unit" line per ingredient.
func RenderShoppingList(items []types.ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "%s: %d %s\n", item.Name, item.Amount, item.MeasurementUnit)
	}
	return buf.Bytes()
}
