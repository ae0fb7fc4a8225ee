package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// dashboardStatsHandler aggregates the trailing-30-day spending summary.
// This is a pure read; the cached User.Expense value is only touched by
// recomputeExpenseHandler.
func dashboardStatsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	since := now.AddDate(0, 0, -dashboardWindowDays)

	total, err := sumTransactions(user.ID, since)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	perCategory, err := categoryTotals(user.ID, since)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	currentMonthTotal, err := currentMonthTotalFor(user.ID, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	allMonths, err := monthlyTotals(user.ID, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	recent, err := recentTransactions(user.ID, 5)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	stats := DashboardStats{
		TotalExpenses: total,
		MonthlyBudget: MonthlyBudgetUsage{
			Total:      user.MonthlyBudget,
			Used:       currentMonthTotal,
			Percentage: budgetUsagePercentage(currentMonthTotal, user.MonthlyBudget),
		},
		TopCategory:        topCategory(perCategory),
		MonthlyExpenses:    latestMonthlySeries(allMonths, 12),
		RecentTransactions: recent,
	}
	respondOK(c, http.StatusOK, stats, "Dashboard stats fetched successfully")
}

// categoryStatsHandler reports per-category total/count/average. The date
// filter only applies when both bounds are present, inclusive.
func categoryStatsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var start, end *time.Time
	startStr := strings.TrimSpace(c.Query("startDate"))
	endStr := strings.TrimSpace(c.Query("endDate"))
	if startStr != "" && endStr != "" {
		s, err := parseDateParam(startStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid startDate", err.Error())
			return
		}
		e, err := parseDateParam(endStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid endDate", err.Error())
			return
		}
		start, end = &s, &e
	}
	stats, err := categoryStatsQuery(user.ID, start, end)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	if stats == nil {
		stats = []CategoryStat{}
	}
	respondOK(c, http.StatusOK, stats, "Category stats fetched successfully")
}

// recomputeExpenseHandler recomputes the current-month total and persists it
// to the user's cached Expense field. Concurrent calls are last-write-wins.
func recomputeExpenseHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	total, err := currentMonthTotalFor(user.ID, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	if err := db.Model(user).Update("expense", total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusOK, gin.H{"expense": total}, "Expense recomputed")
}

// parseDateParam accepts either a bare date or a full RFC3339 timestamp.
func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
