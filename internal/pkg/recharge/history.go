package recharge

import (
	"strconv"
	"strings"
	"time"
)

const DefaultStatus = "SUCCESS"

// HistoryDateLayout is how recharge dates are shown to the user.
const HistoryDateLayout = "02/01/2006, 15:04:05"

// HistoryEntry is the display model of a recharge history record.
type HistoryEntry struct {
	Key      string
	Amount   string
	Validity string
	Data     string
	Call     string
	Operator string
	Date     string
	Status   string
}

// Summary joins validity and data the way the history card shows them.
func (e HistoryEntry) Summary() string {
	switch {
	case e.Validity != "" && e.Data != "":
		return e.Validity + " • " + e.Data
	case e.Validity != "":
		return e.Validity
	default:
		return e.Data
	}
}

// NormalizeHistory projects a raw history record onto the display model.
func NormalizeHistory(r Record, index int, loc *time.Location) HistoryEntry {
	e := HistoryEntry{
		Key:      r.textSet("_id", "id"),
		Amount:   r.text("amount", "price"),
		Validity: r.textSet("validity", "Validity"),
		Data:     r.text("data"),
		Call:     r.text("call"),
		Operator: DefaultOperator,
		Status:   DefaultStatus,
	}
	if e.Key == "" {
		e.Key = strconv.Itoa(index)
	}
	if e.Amount == "" {
		e.Amount = NotAvailable
	}
	if v, ok := r.firstSet("operator"); ok {
		e.Operator = toText(v)
	}
	if v, ok := r.firstSet("status"); ok {
		e.Status = toText(v)
	}

	e.Date = NotAvailable
	if v, ok := r.firstSet("date", "createdAt"); ok {
		e.Date = FormatDate(v, loc)
	}
	return e
}

// NormalizeHistoryList normalizes a fetched history list.
func NormalizeHistoryList(records []Record, loc *time.Location) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(records))
	for i, r := range records {
		entries = append(entries, NormalizeHistory(r, i, loc))
	}
	return entries
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders a date field. Numbers are epoch milliseconds; text that
// cannot be parsed is returned unchanged.
func FormatDate(v any, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	raw := strings.TrimSpace(toText(v))
	if raw == "" {
		return NotAvailable
	}
	if _, isString := v.(string); !isString {
		if ms, err := strconv.ParseFloat(raw, 64); err == nil {
			return time.UnixMilli(int64(ms)).In(loc).Format(HistoryDateLayout)
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format(HistoryDateLayout)
		}
	}
	return raw
}
