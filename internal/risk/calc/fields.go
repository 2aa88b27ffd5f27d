package calc

import (
	"strconv"
	"strings"
)

// Equivalent field names across Dolibarr versions, highest priority first.
var (
	amountFields  = []string{"total_ttc", "total", "amount"}
	dueDateFields = []string{"date_lim_reglement", "due_date", "datedue"}
)

// firstUsable returns the first candidate whose value is present and
// non-empty/non-zero, mirroring the or-chaining the upstream payloads assume.
func firstUsable(record map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || !usable(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func usable(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// amountOf resolves the invoice amount, defaulting to 0 when every candidate
// is missing or malformed.
func amountOf(invoice map[string]any) float64 {
	v, ok := firstUsable(invoice, amountFields)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// isPaid reports whether the paid flag decodes to the number exactly 1.
// Boolean true, string "1" and anything else count as unpaid; the upstream
// rule is strict equality, not truthiness.
func isPaid(invoice map[string]any) bool {
	switch paid := invoice["paid"].(type) {
	case float64:
		return paid == 1
	case int:
		return paid == 1
	case int64:
		return paid == 1
	default:
		return false
	}
}

// dueDateRaw resolves the raw due-date value, nil when absent.
func dueDateRaw(invoice map[string]any) any {
	v, ok := firstUsable(invoice, dueDateFields)
	if !ok {
		return nil
	}
	return v
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
