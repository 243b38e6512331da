// Package cycle computes anniversary-anchored milestone cycles for cards
// and provides the formatting helpers used alongside them. Everything in
// this package is pure: given the same inputs the same outputs come back,
// and nothing here touches the database or the clock.
package cycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// urgencyHorizon is how close a cycle end has to be, with milestone spend
// still outstanding, before the cycle is flagged as urgent.
const urgencyHorizon = 60 * 24 * time.Hour

// Window is the rolling 12-month period for a card's anniversary month
// that contains the reference date. Months are "YYYY-MM" strings in
// chronological order; StartMonth and EndMonth are the first and last.
type Window struct {
	StartMonth string   `json:"start_month"`
	EndMonth   string   `json:"end_month"`
	Months     []string `json:"months"`
}

// Compute returns the cycle window for the given anniversary month (1-12)
// relative to ref. The cycle starts in ref's year when ref's month is at
// or past the anniversary month, otherwise in the previous year, so ref's
// own month is always inside the window. Behavior for an out-of-range
// anniversary month is undefined; callers validate at the boundary.
func Compute(anniversaryMonth int, ref time.Time) Window {
	startYear := ref.Year()
	if int(ref.Month()) < anniversaryMonth {
		startYear--
	}

	months := make([]string, 12)
	for i := 0; i < 12; i++ {
		m := (anniversaryMonth - 1 + i) % 12
		y := startYear + (anniversaryMonth-1+i)/12
		months[i] = fmt.Sprintf("%04d-%02d", y, m+1)
	}

	return Window{
		StartMonth: months[0],
		EndMonth:   months[11],
		Months:     months,
	}
}

// Contains reports whether the given "YYYY-MM" month falls in the window.
func (w Window) Contains(month string) bool {
	for _, m := range w.Months {
		if m == month {
			return true
		}
	}
	return false
}

// EndDate returns the last day of the window's end month in loc.
func (w Window) EndDate(loc *time.Location) time.Time {
	y, m, ok := parseMonthKey(w.EndMonth)
	if !ok {
		return time.Time{}
	}
	// Day zero of the following month is the last day of this one.
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, loc)
}

// MonthKey formats t as a zero-padded "YYYY-MM" string.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// FormatCurrency renders an amount in minor units (paise) as INR with
// zero decimal places and Indian digit grouping, e.g. 1234567 paise
// becomes "₹12,346". The paise remainder rounds half up.
func FormatCurrency(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}
	rupees := (paise + 50) / 100

	grouped := groupIndian(strconv.FormatInt(rupees, 10))
	if negative && rupees > 0 {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts Indian-style separators: the last three digits form
// one group, every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	// Leading group of one or two digits, then pairs.
	lead := len(head) % 2
	if lead == 0 {
		lead = 2
	}
	b.WriteString(head[:lead])
	for i := lead; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatMonth renders a "YYYY-MM" key as a short month name with year,
// e.g. "2024-03" becomes "Mar 2024". Malformed input is returned as-is.
func FormatMonth(monthKey string) string {
	y, m, ok := parseMonthKey(monthKey)
	if !ok {
		return monthKey
	}
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// ProgressPercentage returns spend progress toward a milestone as a
// percentage clamped to [0, 100]. A zero milestone yields 0, not NaN.
// Over-achievement is never reported; the cap is exactly 100.
func ProgressPercentage(spent, milestone int64) float64 {
	if milestone == 0 {
		return 0
	}
	pct := float64(spent) / float64(milestone) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Remaining returns the amount still needed to reach the milestone,
// floored at zero.
func Remaining(milestone, spent int64) int64 {
	if remaining := milestone - spent; remaining > 0 {
		return remaining
	}
	return 0
}

// IsUrgent reports whether a cycle deserves attention: milestone spend is
// still outstanding and the cycle ends within 60 days of now. Display
// hint only; nothing is scheduled off the back of it.
func IsUrgent(remaining int64, end, now time.Time) bool {
	return remaining > 0 && end.Sub(now) < urgencyHorizon
}

func parseMonthKey(key string) (year, month int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}
