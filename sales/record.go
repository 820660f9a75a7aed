// Package sales loads sales records from CSV and computes revenue analytics over them.
//
// All functions are pure: they never modify the records they are given.
package sales

import "time"

// Record is a single order line.
type Record struct {
	OrderID    string
	OrderDate  time.Time
	Country    string
	Category   string
	Product    string
	CustomerID string
	Quantity   int
	UnitPrice  float64
	Discount   float64 // ratio in [0, 1], 0.10 means 10%
	Returned   bool
}

// GrossAmount is the amount before discount.
func (r Record) GrossAmount() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// NetAmount is the revenue after discount. A returned order brings no revenue.
func (r Record) NetAmount() float64 {
	if r.Returned {
		return 0
	}
	return r.GrossAmount() * (1 - r.Discount)
}
