package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wareroom/stockview/internal/gateway"
)

// Dash is the display value substituted for optional fields the backend
// omitted.
const Dash = "-"

// orDash returns the value, or the dash placeholder when it is empty.
func orDash(s string) string {
	if s == "" {
		return Dash
	}
	return s
}

// itemName returns the referenced item's display name, or a dash when the
// record carries no item reference.
func itemName(ref *gateway.ItemRef) string {
	if ref == nil {
		return Dash
	}
	return orDash(ref.Name)
}

// price formats a monetary amount the way the dashboard displays it.
func price(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// warehouseNames joins an item's warehouse names for display, or a dash
// when the item is stocked nowhere.
func warehouseNames(warehouses []gateway.Warehouse) string {
	if len(warehouses) == 0 {
		return Dash
	}
	names := make([]string, len(warehouses))
	for i, w := range warehouses {
		names[i] = w.WarehouseName
	}
	return strings.Join(names, ", ")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatQty(qty int64) string {
	return strconv.FormatInt(qty, 10)
}
