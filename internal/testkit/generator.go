package testkit

import (
	"fmt"
	"math/rand"

	"dataqc/domain/quality"
)

// DatasetGenerator produces seeded synthetic order datasets for tests and
// demos. The same seed always yields the same dataset, so analysis results
// stay reproducible across runs.
type DatasetGenerator struct {
	rng *rand.Rand
}

// NewDatasetGenerator creates a generator with a fixed seed
func NewDatasetGenerator(seed int64) *DatasetGenerator {
	return &DatasetGenerator{rng: rand.New(rand.NewSource(seed))}
}

var generatorHeaders = []string{
	"order_id", "customer_name", "email", "country", "phone",
	"price", "quantity", "total", "order_date", "age",
}

var (
	firstNames = []string{"Alice", "Bruno", "Chen", "Dana", "Elif", "Felix", "Grace", "Hugo"}
	lastNames  = []string{"Meyer", "Okafor", "Santos", "Tanaka", "Novak", "Iqbal", "Larsen", "Petit"}
	countries  = []string{"US", "UK", "Germany", "France", "Japan"}
	prefixes   = map[string]string{"US": "+1", "UK": "+44", "Germany": "+49", "France": "+33", "Japan": "+81"}
)

// CleanDataset generates n rows with no nulls, duplicates or issues, the
// kind of input that scores a perfect 100.
func (g *DatasetGenerator) CleanDataset(n int) quality.Dataset {
	rows := make([]quality.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, g.cleanRow(i))
	}
	return quality.NewDataset(append([]string(nil), generatorHeaders...), rows)
}

// DirtyDataset generates n clean rows and then injects the classic defects:
// nulls, an exact duplicate, a numeric outlier, a malformed email and an
// inconsistent cross-field total.
func (g *DatasetGenerator) DirtyDataset(n int) quality.Dataset {
	ds := g.CleanDataset(n)
	if n < 5 {
		return ds
	}

	ds.Rows[1]["email"] = nil
	ds.Rows[2]["phone"] = nil
	ds.Rows[3] = copyRow(ds.Rows[0]) // exact duplicate of the first row
	ds.Rows[4]["price"] = 999999.0   // far outside the generated range
	if n > 5 {
		ds.Rows[5]["email"] = "not-an-email"
	}
	if n > 6 {
		ds.Rows[6]["total"] = 1.0 // breaks price * quantity
	}
	return ds
}

func (g *DatasetGenerator) cleanRow(i int) quality.Row {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	country := countries[g.rng.Intn(len(countries))]

	price := float64(g.rng.Intn(9000)+1000) / 100.0
	quantity := float64(g.rng.Intn(9) + 1)

	return quality.Row{
		"order_id":      fmt.Sprintf("ORD-%05d", i+1),
		"customer_name": first + " " + last,
		"email":         fmt.Sprintf("%s.%s%d@example.com", first, last, i),
		"country":       country,
		"phone":         fmt.Sprintf("%s 555 %04d", prefixes[country], g.rng.Intn(10000)),
		"price":         fmt.Sprintf("%.2f", price),
		"quantity":      fmt.Sprintf("%.0f", quantity),
		"total":         fmt.Sprintf("%.2f", price*quantity),
		"order_date":    fmt.Sprintf("2024-%02d-%02d", g.rng.Intn(12)+1, g.rng.Intn(28)+1),
		"age":           fmt.Sprintf("%d", g.rng.Intn(60)+18),
	}
}

func copyRow(row quality.Row) quality.Row {
	copied := make(quality.Row, len(row))
	for k, v := range row {
		copied[k] = v
	}
	return copied
}
