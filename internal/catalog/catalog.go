// Package catalog holds the static reference data the sample-data
// simulation draws from. Everything here is immutable configuration.
package catalog

// Product is an immutable catalog entry with its list-price band.
type Product struct {
	ID        string
	Name      string
	Category  string
	PriceLow  float64
	PriceHigh float64
}

// Segments drive price adjustment and retention reporting.
const (
	SegmentEnterprise = "Enterprise"
	SegmentSMB        = "SMB"
	SegmentIndividual = "Individual"
)

// Products returns the product catalog.
func Products() []Product {
	return []Product{
		{ID: "PROD001", Name: "CloudSync Pro", Category: "Software", PriceLow: 99, PriceHigh: 299},
		{ID: "PROD002", Name: "DataVault Enterprise", Category: "Software", PriceLow: 199, PriceHigh: 799},
		{ID: "PROD003", Name: "SmartAnalytics Suite", Category: "Analytics", PriceLow: 149, PriceHigh: 499},
		{ID: "PROD004", Name: "SecureShield Advanced", Category: "Security", PriceLow: 79, PriceHigh: 249},
		{ID: "PROD005", Name: "WorkFlow Optimizer", Category: "Productivity", PriceLow: 59, PriceHigh: 199},
		{ID: "PROD006", Name: "Mobile Connect API", Category: "Integration", PriceLow: 29, PriceHigh: 99},
		{ID: "PROD007", Name: "AI Assistant Premium", Category: "AI/ML", PriceLow: 199, PriceHigh: 599},
		{ID: "PROD008", Name: "Cloud Storage Plus", Category: "Storage", PriceLow: 19, PriceHigh: 89},
	}
}

// Regions returns the sales regions.
func Regions() []string {
	return []string{"North America", "Europe", "Asia-Pacific", "Latin America", "Middle East & Africa"}
}

// Channels returns the sales channels.
func Channels() []string {
	return []string{"Online", "Retail", "Direct Sales", "Partner"}
}

// Segments returns the customer segments.
func Segments() []string {
	return []string{SegmentEnterprise, SegmentSMB, SegmentIndividual}
}

// SalesReps returns the fixed roster of sales representative names.
func SalesReps() []string {
	return []string{
		"Ava Thompson", "Liam Rodriguez", "Sophia Chen", "Noah Patel",
		"Isabella Nguyen", "Ethan Brooks", "Mia Kowalski", "Lucas Fernandez",
		"Amelia Hart", "Oliver Jensen", "Charlotte Reyes", "Elijah Moreau",
		"Harper Lindqvist", "James Okafor", "Evelyn Tanaka", "Benjamin Silva",
		"Abigail Novak", "Henry Dubois", "Emily Castellanos", "Daniel Varga",
	}
}
