package recharge

import (
	"regexp"
	"strconv"
	"strings"
)

// Category is the tab a plan is listed under.
type Category string

const (
	CategoryUnlimited5G    Category = "UNLIMITED 5G"
	CategorySmartRecharge  Category = "SMART RECHARGE"
	CategoryData           Category = "DATA"
	CategoryTrulyUnlimited Category = "TRULY UNLIMITED"
	CategoryRecommended    Category = "RECOMMENDED"

	DefaultTab = CategoryRecommended
)

// Tabs lists the fixed tabs in display order.
var Tabs = []Category{
	CategoryRecommended,
	CategoryTrulyUnlimited,
	CategorySmartRecharge,
	CategoryData,
	CategoryUnlimited5G,
}

const trulyUnlimitedMinDays = 56

var daysPattern = regexp.MustCompile(`(?i)(\d+)\s*DAY`)

// Features are the normalized inputs the classifier looks at.
type Features struct {
	Data     string
	Call     string
	Validity string
	Price    float64
	Days     int
	HasDays  bool
}

// Inspect derives the classification features of a record.
func Inspect(r Record) Features {
	f := Features{
		Data:  NormalizeText(r.fieldOrEmpty("data")),
		Call:  NormalizeText(r.fieldOrEmpty("call")),
		Price: toNumber(r["price"]),
	}
	if v, ok := r.firstSet("validity", "Validity"); ok {
		f.Validity = NormalizeText(v)
	}
	if m := daysPattern.FindStringSubmatch(f.Validity); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.Days = n
			f.HasDays = true
		}
	}
	return f
}

func (r Record) fieldOrEmpty(key string) any {
	if v, ok := r[key]; ok && isSet(v) {
		return v
	}
	return nil
}

// Classify assigns a record to exactly one category. An explicit type set by
// the backend is returned as is; otherwise the first matching heuristic wins
// and RECOMMENDED catches everything else.
func Classify(r Record) Category {
	if v, ok := r.firstSet("type", "Type"); ok {
		return Category(toText(v))
	}

	f := Inspect(r)
	switch {
	case strings.Contains(f.Data, string(CategoryUnlimited5G)):
		return CategoryUnlimited5G
	case f.HasDays && f.Days == 1:
		return CategorySmartRecharge
	case strings.Contains(f.Call, "NO CALLS"):
		return CategoryData
	case f.HasDays && f.Days >= trulyUnlimitedMinDays && strings.Contains(f.Call, "UNLIMITED CALLS"):
		return CategoryTrulyUnlimited
	default:
		return CategoryRecommended
	}
}

// Matches reports whether a category belongs under the given tab.
func (c Category) Matches(tab Category) bool {
	return NormalizeText(string(c)) == NormalizeText(string(tab))
}

// ParseTab resolves a requested tab label to one of the fixed tabs. Unknown
// or empty labels fall back to the default tab.
func ParseTab(raw string) Category {
	want := NormalizeText(raw)
	for _, tab := range Tabs {
		if string(tab) == want {
			return tab
		}
	}
	return DefaultTab
}

// FilterByTab returns the records classified under tab, in input order.
func FilterByTab(records []Record, tab Category) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if Classify(r).Matches(tab) {
			out = append(out, r)
		}
	}
	return out
}
