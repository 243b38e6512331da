// Package insights holds the aggregation engine: pure reducers that turn
// already-loaded rows into derived summaries (trends, breakdowns, budget
// progress, forecasts). Every function is a synchronous single pass over
// its input; nothing is re-fetched and empty input is never an error.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"cardmile/internal/cycle"
	"cardmile/internal/models"
)

// TrendPeriod selects how SpendingTrends buckets transaction dates.
type TrendPeriod string

const (
	PeriodMonthly TrendPeriod = "monthly"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodDaily   TrendPeriod = "daily"
)

// ForecastInsufficientData is returned by Forecast when there are not
// enough trend periods to extrapolate from.
const ForecastInsufficientData = "Not enough transaction data to forecast."

// forecastLabel marks the single synthetic period Forecast appends.
const forecastLabel = "Forecast"

// TrendPoint is one period's summed expense amount.
type TrendPoint struct {
	Period string `json:"period"`
	Amount int64  `json:"amount"`
}

// CategoryAmount is one category's summed expense amount.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// BudgetActual pairs a category's allocated budget with its actual spend.
type BudgetActual struct {
	Name      string `json:"name"`
	Allocated int64  `json:"allocated"`
	Spent     int64  `json:"spent"`
}

// BudgetProgress is one budget's spend against its total.
type BudgetProgress struct {
	BudgetID string  `json:"budget_id"`
	Name     string  `json:"name"`
	Total    int64   `json:"total"`
	Spent    int64   `json:"spent"`
	Percent  float64 `json:"percent"`
}

// ForecastResult is the trend series with at most one synthetic point
// appended. Message is set instead when there is too little data.
type ForecastResult struct {
	Forecast []TrendPoint `json:"forecast"`
	Message  string       `json:"message,omitempty"`
}

// CycleSpendTotal sums amount_spent over the spends whose month falls in
// the cycle window. Months with no row contribute nothing.
func CycleSpendTotal(spends []models.MonthlySpend, window cycle.Window) int64 {
	inWindow := make(map[string]bool, len(window.Months))
	for _, m := range window.Months {
		inWindow[m] = true
	}

	var total int64
	for _, s := range spends {
		if inWindow[s.Month] {
			total += s.AmountSpent
		}
	}
	return total
}

// SpendingTrends groups expense transactions into period buckets and sums
// each bucket, returning points sorted ascending by period key.
//
// Weekly buckets use ceil(day-of-month / 7), not ISO week numbers. The
// first seven days of a month are week 1 regardless of weekday, so a
// month spans at most five buckets and keys look like "2024-W2".
func SpendingTrends(transactions []models.Transaction, period TrendPeriod) []TrendPoint {
	sums := make(map[string]int64)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		sums[periodKey(t.Date, period)] += t.Amount
	}

	points := make([]TrendPoint, 0, len(sums))
	for k, v := range sums {
		points = append(points, TrendPoint{Period: k, Amount: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}

func periodKey(date time.Time, period TrendPeriod) string {
	switch period {
	case PeriodWeekly:
		week := (date.Day() + 6) / 7
		return fmt.Sprintf("%d-W%d", date.Year(), week)
	case PeriodDaily:
		return date.Format("2006-01-02")
	default:
		return date.Format("2006-01")
	}
}

// CategoryBreakdown sums expense amounts per category name. Transactions
// whose category id has no matching Category row land under "Other".
// Categories with no expense transactions do not appear.
func CategoryBreakdown(transactions []models.Transaction, categories []models.Category) []CategoryAmount {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	sums := make(map[string]int64)
	order := make([]string, 0)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		name, ok := names[t.CategoryID]
		if !ok {
			name = "Other"
		}
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += t.Amount
	}

	breakdown := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, CategoryAmount{Name: name, Amount: sums[name]})
	}
	return breakdown
}

// BudgetVsActual pairs allocated amounts with actual expense spend for
// every category that appears in either the allocations or the expense
// transactions. Unlike CategoryBreakdown, allocated categories with zero
// spend are included. Categories holding an allocation sort before
// spend-only ones; ties break alphabetically by name.
func BudgetVsActual(
	categories []models.Category,
	transactions []models.Transaction,
	allocations []models.BudgetCategory,
) []BudgetActual {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	allocated := make(map[string]int64)
	for _, a := range allocations {
		allocated[a.CategoryID] += a.AllocatedAmount
	}

	spent := make(map[string]int64)
	for _, t := range transactions {
		if t.Type == models.TransactionTypeExpense {
			spent[t.CategoryID] += t.Amount
		}
	}

	ids := make([]string, 0, len(allocated)+len(spent))
	for id := range allocated {
		ids = append(ids, id)
	}
	for id := range spent {
		if _, ok := allocated[id]; !ok {
			ids = append(ids, id)
		}
	}

	result := make([]BudgetActual, 0, len(ids))
	hasAllocation := make(map[string]bool, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = "Other"
		}
		_, budgeted := allocated[id]
		hasAllocation[name] = hasAllocation[name] || budgeted
		result = append(result, BudgetActual{
			Name:      name,
			Allocated: allocated[id],
			Spent:     spent[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		bi, bj := hasAllocation[result[i].Name], hasAllocation[result[j].Name]
		if bi != bj {
			return bi
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Forecast extends the spending trend with one synthetic period equal to
// the arithmetic mean of the last three periods (or fewer when less than
// three exist), rounded to an integer. With fewer than two periods of
// data there is nothing to extrapolate and Message is set instead.
func Forecast(transactions []models.Transaction, period TrendPeriod) ForecastResult {
	trends := SpendingTrends(transactions, period)
	if len(trends) < 2 {
		return ForecastResult{Forecast: []TrendPoint{}, Message: ForecastInsufficientData}
	}

	window := trends
	if len(window) > 3 {
		window = window[len(window)-3:]
	}
	var sum int64
	for _, p := range window {
		sum += p.Amount
	}
	mean := int64(math.Round(float64(sum) / float64(len(window))))

	forecast := make([]TrendPoint, len(trends), len(trends)+1)
	copy(forecast, trends)
	forecast = append(forecast, TrendPoint{Period: forecastLabel, Amount: mean})
	return ForecastResult{Forecast: forecast}
}

// BudgetProgressList reports each budget's expense spend against its
// total. Spend counts only expense transactions tagged with the budget's
// id. Percent is clamped to 100 and a zero-total budget reports 0.
func BudgetProgressList(budgets []models.Budget, transactions []models.Transaction) []BudgetProgress {
	spentByBudget := make(map[string]int64)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense || t.BudgetID == nil {
			continue
		}
		spentByBudget[*t.BudgetID] += t.Amount
	}

	progress := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByBudget[b.ID]
		var percent float64
		if b.TotalAmount > 0 {
			percent = math.Min(100, float64(spent)/float64(b.TotalAmount)*100)
		}
		progress = append(progress, BudgetProgress{
			BudgetID: b.ID,
			Name:     b.Name,
			Total:    b.TotalAmount,
			Spent:    spent,
			Percent:  percent,
		})
	}
	return progress
}
