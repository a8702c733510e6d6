// Package report computes dashboard statistics from fetched collections.
package report

import (
	"strings"

	"github.com/wareroom/stockview/internal/gateway"
)

// Summary holds the four dashboard counters.
type Summary struct {
	TotalProducts int
	TotalSold     int64
	PendingOrders int
	TotalRevenue  float64
}

// Summarize derives the dashboard counters from already-fetched items and
// export records. It is pure: inputs are never mutated and no lookup can
// fail. An export record whose item is missing from the item collection
// contributes zero revenue.
func Summarize(items []gateway.Item, exports []gateway.ExportRecord) Summary {
	priceByID := make(map[int64]float64, len(items))
	for _, item := range items {
		priceByID[item.ID] = item.Price
	}

	s := Summary{TotalProducts: len(items)}
	for _, exp := range exports {
		s.TotalSold += exp.QuantityShipped
		if strings.EqualFold(exp.Status, "pending") {
			s.PendingOrders++
		}
		s.TotalRevenue += float64(exp.QuantityShipped) * priceByID[exp.Item.ID]
	}
	return s
}
