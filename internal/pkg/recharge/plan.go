package recharge

import "strconv"

const (
	DefaultOperator = "Airtel"
	NotAvailable    = "N/A"
)

// Plan is the display model of a plan record.
type Plan struct {
	// ID is the backend identity, empty when the record carries none.
	ID string
	// Key identifies the plan within one rendered list only.
	Key         string
	Price       string
	Amount      float64
	Validity    string
	Data        string
	Call        string
	Operator    string
	Description string
	Category    Category
}

// Purchasable reports whether the plan has an amount that can be charged.
func (p Plan) Purchasable() bool {
	return p.Amount > 0
}

// NormalizePlan projects a raw plan record onto the display model.
func NormalizePlan(r Record, index int) Plan {
	p := Plan{
		ID:          r.textSet("id", "_id"),
		Validity:    r.textSet("validity", "Validity"),
		Data:        r.text("data"),
		Call:        r.text("call"),
		Operator:    DefaultOperator,
		Description: r.text("description"),
		Category:    Classify(r),
	}

	p.Key = p.ID
	if p.Key == "" {
		p.Key = strconv.Itoa(index)
	}

	if v, ok := r.first("price", "amount"); ok {
		p.Price = toText(v)
		p.Amount = toNumber(v)
	}
	if p.Price == "" {
		p.Price = NotAvailable
	}
	if p.Validity == "" {
		p.Validity = NotAvailable
	}
	if v, ok := r.firstSet("operator"); ok {
		p.Operator = toText(v)
	}
	return p
}

// NormalizePlans normalizes a fetched plan list.
func NormalizePlans(records []Record) []Plan {
	plans := make([]Plan, 0, len(records))
	for i, r := range records {
		plans = append(plans, NormalizePlan(r, i))
	}
	return plans
}

// FilterPlans keeps the plans listed under tab.
func FilterPlans(plans []Plan, tab Category) []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if p.Category.Matches(tab) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultPlans is shown when the plan list cannot be fetched at all. It
// holds one plan per tab.
func DefaultPlans() []Record {
	return []Record{
		{"_id": "1", "price": float64(199), "validity": "28 Days", "data": "1.5GB/Day", "call": "Unlimited", "operator": "Airtel", "type": string(CategoryRecommended)},
		{"_id": "2", "price": float64(49), "validity": "1 Day", "data": "1GB", "call": "100 mins", "operator": "Airtel", "type": string(CategorySmartRecharge)},
		{"_id": "3", "price": float64(599), "validity": "84 Days", "data": "Unlimited", "call": "Unlimited", "operator": "Airtel", "type": string(CategoryTrulyUnlimited)},
		{"_id": "4", "price": float64(299), "validity": "30 Days", "data": "25GB", "call": "No Voice", "operator": "Airtel", "type": string(CategoryData)},
		{"_id": "5", "price": float64(999), "validity": "365 Days", "data": "2GB/Day 5G", "call": "Unlimited", "operator": "Airtel", "type": string(CategoryUnlimited5G)},
	}
}
