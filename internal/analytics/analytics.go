// Package analytics aggregates sales and products for the dashboard and
// analytics endpoints. Everything here is pure and works on slices the
// repositories already loaded.
package analytics

import (
	"math"
	"sort"
	"time"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
)

// MonthlyRevenue is one calendar-month bucket.
type MonthlyRevenue struct {
	Month   string  `json:"month"` // 2006-01
	Label   string  `json:"label"` // Jan
	Revenue float64 `json:"revenue"`
	Sales   int     `json:"sales"`

	// Growth is the percentage change against the previous bucket; zero when
	// the previous bucket had no revenue.
	Growth float64 `json:"growth"`
}

type ProductPerformance struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Units     int       `json:"sales"`
	Revenue   float64   `json:"revenue"`
}

// Revenue sums quantity × price over sales.
func Revenue(sales []model.Sale) float64 {
	var total float64
	for i := range sales {
		total += sales[i].Revenue()
	}
	return round2(total)
}

// AverageOrderValue is Revenue divided by the number of sales, or zero.
func AverageOrderValue(sales []model.Sale) float64 {
	if len(sales) == 0 {
		return 0
	}
	return round2(Revenue(sales) / float64(len(sales)))
}

// InventoryValuation sums price × quantity on hand.
func InventoryValuation(products []model.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Quantity)
	}
	return round2(total)
}

// Monthly returns the last `months` calendar months ending with the month of
// now, oldest first. Sales outside the window are ignored.
func Monthly(sales []model.Sale, months int, now time.Time) []MonthlyRevenue {
	if months <= 0 {
		return nil
	}
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	buckets := make([]MonthlyRevenue, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		buckets[i] = MonthlyRevenue{Month: key, Label: m.Format("Jan")}
		index[key] = i
	}

	for i := range sales {
		key := sales[i].CreatedAt.UTC().Format("2006-01")
		if b, ok := index[key]; ok {
			buckets[b].Revenue += sales[i].Revenue()
			buckets[b].Sales++
		}
	}

	for i := range buckets {
		buckets[i].Revenue = round2(buckets[i].Revenue)
		if i > 0 && buckets[i-1].Revenue > 0 {
			prev := buckets[i-1].Revenue
			buckets[i].Growth = round2((buckets[i].Revenue - prev) / prev * 100)
		}
	}
	return buckets
}

// TopProducts ranks products by revenue, highest first, ties by name.
func TopProducts(sales []model.Sale, n int) []ProductPerformance {
	byID := make(map[uuid.UUID]*ProductPerformance)
	for i := range sales {
		s := &sales[i]
		perf, ok := byID[s.ProductID]
		if !ok {
			perf = &ProductPerformance{ProductID: s.ProductID}
			if s.Product != nil {
				perf.Name = s.Product.Name
				perf.SKU = s.Product.SKU
			}
			byID[s.ProductID] = perf
		}
		perf.Units += s.Quantity
		perf.Revenue += s.Revenue()
	}

	ranked := make([]ProductPerformance, 0, len(byID))
	for _, perf := range byID {
		perf.Revenue = round2(perf.Revenue)
		ranked = append(ranked, *perf)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
