package main

import (
	"math"
	"time"

	"spendwise/models"
)

// Aggregation layer: SQL group-bys against the transactions table plus the
// pure shaping that turns row sets into response payloads. Queries run one
// at a time with no cross-call atomicity.

const dashboardWindowDays = 30

type CategoryTotal struct {
	Category models.Category `json:"category"`
	Amount   float64         `json:"amount"`
}

type MonthTotal struct {
	Year  int
	Month int
	Total float64
}

type CategoryStat struct {
	Category      models.Category `json:"category"`
	Total         float64         `json:"total"`
	Count         int64           `json:"count"`
	AverageAmount float64         `json:"averageAmount"`
}

type CategorySpend struct {
	Category models.Category
	Spent    float64
}

type MonthlyExpense struct {
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type RecentTransaction struct {
	Description     string                 `json:"description"`
	Amount          float64                `json:"amount"`
	Category        models.Category        `json:"category"`
	Date            time.Time              `json:"date"`
	TransactionType models.TransactionType `json:"transactionType"`
}

type CategoryInsight struct {
	Category   models.Category `json:"category"`
	Spent      float64         `json:"spent"`
	Budget     float64         `json:"budget"`
	Percentage float64         `json:"percentage"`
}

type MonthlyInsight struct {
	Month      string  `json:"month"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"` // unclamped, may exceed 100
}

type DashboardStats struct {
	TotalExpenses      float64             `json:"totalExpenses"`
	MonthlyBudget      MonthlyBudgetUsage  `json:"monthlyBudget"`
	TopCategory        CategoryTotal       `json:"topCategory"`
	MonthlyExpenses    []MonthlyExpense    `json:"monthlyExpenses"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

type MonthlyBudgetUsage struct {
	Total      float64 `json:"total"`
	Used       float64 `json:"used"`
	Percentage float64 `json:"percentage"`
}

// sumTransactions totals a user's spend since the given time.
func sumTransactions(userID uint, since time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ?", userID, since).
		Scan(&total).Error
	return total, err
}

// categoryTotals sums spend per category since the given time, largest first.
func categoryTotals(userID uint, since time.Time) ([]CategoryTotal, error) {
	rows, err := db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS amount").
		Where("user_id = ? AND date >= ?", userID, since).
		Group("category").
		Order("amount DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotal
	for rows.Next() {
		var r CategoryTotal
		if err := rows.Scan(&r.Category, &r.Amount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// monthlyTotals groups a user's spend by calendar (year, month), newest
// group first. A nil since means all time.
func monthlyTotals(userID uint, since *time.Time) ([]MonthTotal, error) {
	q := db.Model(&models.Transaction{}).
		Select("EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month, SUM(amount) AS total").
		Where("user_id = ?", userID)
	if since != nil {
		q = q.Where("date >= ?", *since)
	}
	rows, err := q.Group("year, month").Order("year DESC, month DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MonthTotal
	for rows.Next() {
		var r MonthTotal
		if err := rows.Scan(&r.Year, &r.Month, &r.Total); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// monthlyTotalsForYear groups spend by month within one calendar year,
// January first. Months with no transactions are absent.
func monthlyTotalsForYear(userID uint, year int) ([]MonthTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	rows, err := db.Model(&models.Transaction{}).
		Select("EXTRACT(MONTH FROM date)::int AS month, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("month").Order("month ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MonthTotal
	for rows.Next() {
		var r MonthTotal
		if err := rows.Scan(&r.Month, &r.Total); err != nil {
			return nil, err
		}
		r.Year = year
		out = append(out, r)
	}
	return out, rows.Err()
}

func recentTransactions(userID uint, limit int) ([]RecentTransaction, error) {
	var items []models.Transaction
	if err := db.Where("user_id = ?", userID).Order("date desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]RecentTransaction, 0, len(items))
	for _, t := range items {
		out = append(out, RecentTransaction{
			Description:     t.Description,
			Amount:          t.Amount,
			Category:        t.Category,
			Date:            t.Date,
			TransactionType: t.Type,
		})
	}
	return out, nil
}

// categoryStatsQuery computes per-category total/count/average, optionally
// bounded by an inclusive [start, end] date range.
func categoryStatsQuery(userID uint, start, end *time.Time) ([]CategoryStat, error) {
	q := db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count, AVG(amount) AS average_amount").
		Where("user_id = ?", userID)
	if start != nil && end != nil {
		q = q.Where("date >= ? AND date <= ?", *start, *end)
	}
	rows, err := q.Group("category").Order("total DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryStat
	for rows.Next() {
		var r CategoryStat
		if err := rows.Scan(&r.Category, &r.Total, &r.Count, &r.AverageAmount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// categorySpending sums per-category spend within an optional window.
func categorySpending(userID uint, from, to *time.Time) ([]CategorySpend, error) {
	q := db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS spent").
		Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	rows, err := q.Group("category").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategorySpend
	for rows.Next() {
		var r CategorySpend
		if err := rows.Scan(&r.Category, &r.Spent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// budgetsByCategory loads the user's budgets keyed by category.
func budgetsByCategory(userID uint) (map[models.Category]float64, error) {
	var budgets []models.Budget
	if err := db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, err
	}
	out := make(map[models.Category]float64, len(budgets))
	for _, b := range budgets {
		out[b.Category] = b.Amount
	}
	return out, nil
}

// currentMonthTotalFor picks the most recent (year, month) group inside the
// trailing dashboard window; zero when the window is empty.
func currentMonthTotalFor(userID uint, now time.Time) (float64, error) {
	since := now.AddDate(0, 0, -dashboardWindowDays)
	groups, err := monthlyTotals(userID, &since)
	if err != nil {
		return 0, err
	}
	if len(groups) == 0 {
		return 0, nil
	}
	return groups[0].Total, nil
}

// budgetUsagePercentage is spent over budget as a percentage, clamped at
// 100. A zero budget yields a non-finite intermediate (+Inf clamps to 100,
// zero spend over zero budget stays NaN); left as-is on purpose.
func budgetUsagePercentage(spent, budget float64) float64 {
	return math.Min(spent/budget*100, 100)
}

// topCategory returns the largest category total, or a "No Data" marker for
// an empty window.
func topCategory(totals []CategoryTotal) CategoryTotal {
	if len(totals) == 0 {
		return CategoryTotal{Category: "No Data", Amount: 0}
	}
	return totals[0]
}

// monthAbbr maps 1..12 to a 3-letter month name.
func monthAbbr(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()[:3]
}

// latestMonthlySeries keeps the newest n entries of a newest-first series
// and returns them chronologically ascending for charting.
func latestMonthlySeries(totals []MonthTotal, n int) []MonthlyExpense {
	if len(totals) > n {
		totals = totals[:n]
	}
	out := make([]MonthlyExpense, 0, len(totals))
	for i := len(totals) - 1; i >= 0; i-- {
		t := totals[i]
		out = append(out, MonthlyExpense{Month: monthAbbr(t.Month), Year: t.Year, Amount: t.Total})
	}
	return out
}

// joinCategoryInsights matches per-category spend against budget ceilings.
// Percentage is clamped at 100 and zero when no budget is set.
func joinCategoryInsights(spending []CategorySpend, budgets map[models.Category]float64) []CategoryInsight {
	out := make([]CategoryInsight, 0, len(spending))
	for _, s := range spending {
		ins := CategoryInsight{Category: s.Category, Spent: s.Spent, Budget: budgets[s.Category]}
		if ins.Budget > 0 {
			ins.Percentage = math.Min(s.Spent/ins.Budget*100, 100)
		}
		out = append(out, ins)
	}
	return out
}

// buildMonthlyInsights compares each month's spend against the flat
// per-user monthly budget. Unlike the dashboard computation the percentage
// is deliberately unclamped. Returns the shaped rows and the annual total.
func buildMonthlyInsights(spending []MonthTotal, monthlyBudget float64) ([]MonthlyInsight, float64) {
	out := make([]MonthlyInsight, 0, len(spending))
	var annual float64
	for _, m := range spending {
		annual += m.Total
		out = append(out, MonthlyInsight{
			Month:      monthAbbr(m.Month),
			Spent:      m.Total,
			Budget:     monthlyBudget,
			Percentage: m.Total / monthlyBudget * 100,
		})
	}
	return out, annual
}
