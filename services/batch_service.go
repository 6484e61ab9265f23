package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
)

// BatchServiceType is the sentinel service type shown on the synthetic row
// that represents a multi-item batch in the grouped view.
const BatchServiceType = "DIVERSOS"

// NewBatchID generates the identifier stamped on every order of a
// multi-item submission: creation time in unix millis plus a random suffix.
func NewBatchID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// GroupedOrder is one row of the grouped order view. For a batch it carries
// the full member list in Items; individual orders have no Items.
type GroupedOrder struct {
	models.Order
	Items []models.Order `json:"items,omitempty"`
}

// IsBatch reports whether the row represents a multi-item batch.
func (g *GroupedOrder) IsBatch() bool {
	return len(g.Items) > 0
}

// GroupOrders partitions orders into individual rows and batch rows. Orders
// sharing a batch id collapse into one synthetic row whose service type is
// BatchServiceType and whose total price is the sum over the members; the
// remaining fields come from the first member seen, which is authoritative
// since batch members are created and mutated together. The merged result
// is sorted by order date descending, stable on ties.
func GroupOrders(orders []models.Order) []GroupedOrder {
	out := make([]GroupedOrder, 0, len(orders))
	batchIndex := make(map[string]int)

	for _, o := range orders {
		if o.BatchID == nil || *o.BatchID == "" {
			out = append(out, GroupedOrder{Order: o})
			continue
		}

		if idx, ok := batchIndex[*o.BatchID]; ok {
			out[idx].TotalPrice += o.TotalPrice
			out[idx].Items = append(out[idx].Items, o)
			continue
		}

		group := GroupedOrder{Order: o, Items: []models.Order{o}}
		group.ServiceType = BatchServiceType
		batchIndex[*o.BatchID] = len(out)
		out = append(out, group)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate > out[j].OrderDate
	})

	return out
}
