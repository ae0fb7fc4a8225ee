package main

import (
	"net/http"
	"strconv"
	"time"

	"spendwise/models"

	"github.com/gin-gonic/gin"
)

// setBudgetHandler creates or updates the caller's budget ceiling for one
// category. A single record exists per (user, category); the lookup-then-
// write keeps upsert semantics without a database constraint.
func setBudgetHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Category models.Category `json:"category" binding:"required"`
		Amount   *float64        `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Category and valid amount are required", err.Error())
		return
	}
	if !req.Category.Valid() {
		respondError(c, http.StatusBadRequest, "invalid category", nil)
		return
	}
	if *req.Amount < 0 {
		respondError(c, http.StatusBadRequest, "Category and valid amount are required", nil)
		return
	}

	// The single-record-per-category invariant lives entirely in this
	// lookup: only a confirmed miss may create. A store fault must surface
	// as 500, or a retried insert would leave a duplicate row.
	var budget models.Budget
	err := db.Where("user_id = ? AND category = ?", user.ID, req.Category).First(&budget).Error
	if err != nil && !isNotFound(err) {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	if err == nil {
		budget.Amount = *req.Amount
		if err := db.Save(&budget).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Server error", err.Error())
			return
		}
		respondOK(c, http.StatusOK, budget, "Budget updated successfully")
		return
	}
	budget = models.Budget{UserID: user.ID, Category: req.Category, Amount: *req.Amount}
	if err := db.Create(&budget).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusCreated, budget, "Budget created successfully")
}

// categoryInsightsHandler joins per-category spend with budget ceilings.
// period selects the window: unset = all time, "month" = current calendar
// month, "year" = current calendar year.
func categoryInsightsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var from, to *time.Time
	now := time.Now()
	switch c.Query("period") {
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from, to = &start, &now
	case "year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		from, to = &start, &now
	}
	spending, err := categorySpending(user.ID, from, to)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	budgets, err := budgetsByCategory(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusOK, joinCategoryInsights(spending, budgets), "Category insights fetched successfully")
}

// monthlyInsightsHandler reports per-month spend for a year against the
// flat per-user monthly budget, plus annual totals.
func monthlyInsightsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid year", nil)
			return
		}
		year = y
	}
	spending, err := monthlyTotalsForYear(user.ID, year)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	monthlyData, annualTotal := buildMonthlyInsights(spending, user.MonthlyBudget)
	respondOK(c, http.StatusOK, gin.H{
		"monthlyData":  monthlyData,
		"annualTotal":  annualTotal,
		"annualBudget": user.MonthlyBudget * 12,
	}, "Monthly insights fetched successfully")
}
