package sales

// DefaultTop is the number of customers reported by Summary.
const DefaultTop = 5

// Analyzer holds a set of records and exposes the analytics over them.
type Analyzer struct {
	records []Record
}

// NewAnalyzer copies records so later changes to the caller's slice are not seen.
func NewAnalyzer(records []Record) *Analyzer {
	return &Analyzer{records: append([]Record{}, records...)}
}

// Len returns the number of records.
func (a *Analyzer) Len() int { return len(a.records) }

// TotalRevenue returns the net revenue of the records.
func (a *Analyzer) TotalRevenue() float64 { return TotalRevenue(a.records) }

// AverageOrderValue returns the net revenue per record.
func (a *Analyzer) AverageOrderValue() float64 { return AverageOrderValue(a.records) }

// ReturnsRate returns the share of returned records.
func (a *Analyzer) ReturnsRate() float64 { return ReturnsRate(a.records) }

// RevenueByCountry returns net revenue per country, highest first.
func (a *Analyzer) RevenueByCountry() []Total { return RevenueByCountry(a.records) }

// RevenueByCategory returns net revenue per category, highest first.
func (a *Analyzer) RevenueByCategory() []Total { return RevenueByCategory(a.records) }

// MonthlyRevenue returns net revenue per month, oldest first.
func (a *Analyzer) MonthlyRevenue() []MonthTotal { return MonthlyRevenue(a.records) }

// TopCustomers returns the n customers with the highest net revenue.
func (a *Analyzer) TopCustomers(n int) []Total { return TopCustomers(a.records, n) }

// Summary gathers every metric in one report.
type Summary struct {
	Records           int
	TotalRevenue      float64
	AverageOrderValue float64
	ReturnsRate       float64
	RevenueByCountry  []Total
	RevenueByCategory []Total
	MonthlyRevenue    []MonthTotal
	TopCustomers      []Total
}

// Summary computes the full report, with the DefaultTop customers.
func (a *Analyzer) Summary() Summary {
	return Summary{
		Records:           a.Len(),
		TotalRevenue:      a.TotalRevenue(),
		AverageOrderValue: a.AverageOrderValue(),
		ReturnsRate:       a.ReturnsRate(),
		RevenueByCountry:  a.RevenueByCountry(),
		RevenueByCategory: a.RevenueByCategory(),
		MonthlyRevenue:    a.MonthlyRevenue(),
		TopCustomers:      a.TopCustomers(DefaultTop),
	}
}
