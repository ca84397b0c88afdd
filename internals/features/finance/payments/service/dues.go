package service

import "time"

// MonthKey formats a time as the YYYY-MM key used across fee rules and
// payments.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthsBetween lists every YYYY-MM from the month of `from` through the
// month of `to`, inclusive. Returns nil when `to` precedes `from`.
func MonthsBetween(from, to time.Time) []string {
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return nil
	}
	var months []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		months = append(months, MonthKey(cur))
	}
	return months
}

// UnpaidMonths subtracts the paid set from the owed range, preserving order.
func UnpaidMonths(owed []string, paid []string) []string {
	paidSet := make(map[string]struct{}, len(paid))
	for _, m := range paid {
		paidSet[m] = struct{}{}
	}
	var due []string
	for _, m := range owed {
		if _, ok := paidSet[m]; !ok {
			due = append(due, m)
		}
	}
	return due
}
