package sales

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Total is the revenue aggregated under a key (country, category, customer...).
type Total struct {
	Key     string
	Revenue float64
}

// MonthTotal is the revenue of a calendar month.
type MonthTotal struct {
	Year    int
	Month   time.Month
	Revenue float64
}

// TotalRevenue is the net revenue over all records.
func TotalRevenue(records []Record) float64 {
	return lo.SumBy(records, Record.NetAmount)
}

// AverageOrderValue is the mean net revenue per record, 0 without records.
func AverageOrderValue(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	return TotalRevenue(records) / float64(len(records))
}

// ReturnsRate is the share of returned records in [0, 1], 0 without records.
func ReturnsRate(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	returned := lo.CountBy(records, func(r Record) bool { return r.Returned })
	return float64(returned) / float64(len(records))
}

// GroupSum groups records by key and sums value inside each group.
func GroupSum[K comparable](records []Record, key func(Record) K, value func(Record) float64) map[K]float64 {
	return lo.MapValues(lo.GroupBy(records, key), func(group []Record, _ K) float64 {
		return lo.SumBy(group, value)
	})
}

// RevenueByCountry is the net revenue per country, highest first.
func RevenueByCountry(records []Record) []Total {
	return sortedTotals(GroupSum(records, func(r Record) string { return r.Country }, Record.NetAmount))
}

// RevenueByCategory is the net revenue per category, highest first.
func RevenueByCategory(records []Record) []Total {
	return sortedTotals(GroupSum(records, func(r Record) string { return r.Category }, Record.NetAmount))
}

// TopCustomers returns the n customers bringing the most net revenue, highest first.
// It returns every customer when there are fewer than n, and none when n <= 0.
func TopCustomers(records []Record, n int) []Total {
	if n <= 0 {
		return []Total{}
	}
	totals := sortedTotals(GroupSum(records, func(r Record) string { return r.CustomerID }, Record.NetAmount))
	return totals[:min(n, len(totals))]
}

// MonthlyRevenue is the net revenue per calendar month, oldest first.
func MonthlyRevenue(records []Record) []MonthTotal {
	type month struct {
		year  int
		month time.Month
	}
	sums := GroupSum(records, func(r Record) month {
		return month{year: r.OrderDate.Year(), month: r.OrderDate.Month()}
	}, Record.NetAmount)

	totals := lo.MapToSlice(sums, func(m month, revenue float64) MonthTotal {
		return MonthTotal{Year: m.year, Month: m.month, Revenue: revenue}
	})
	slices.SortFunc(totals, func(a, b MonthTotal) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})
	return totals
}

// sortedTotals orders totals by revenue, highest first, then by key for equal revenues.
func sortedTotals(sums map[string]float64) []Total {
	totals := lo.MapToSlice(sums, func(key string, revenue float64) Total {
		return Total{Key: key, Revenue: revenue}
	})
	slices.SortFunc(totals, func(a, b Total) int {
		return cmp.Or(cmp.Compare(b.Revenue, a.Revenue), cmp.Compare(a.Key, b.Key))
	})
	return totals
}
