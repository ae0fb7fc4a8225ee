package main

import (
	"net/http"
	"time"

	"spendwise/models"

	"github.com/gin-gonic/gin"
)

// addTransactionHandler records a new expense for the authenticated user.
func addTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Category        models.Category        `json:"category" binding:"required"`
		Amount          *float64               `json:"amount" binding:"required"`
		Date            *time.Time             `json:"date"`
		Description     string                 `json:"description" binding:"required"`
		TransactionType models.TransactionType `json:"transactionType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields", err.Error())
		return
	}
	if !req.Category.Valid() {
		respondError(c, http.StatusBadRequest, "invalid category", nil)
		return
	}
	if !req.TransactionType.Valid() {
		respondError(c, http.StatusBadRequest, "invalid transaction type", nil)
		return
	}
	if *req.Amount < 0 {
		respondError(c, http.StatusBadRequest, "amount must be non-negative", nil)
		return
	}
	tx := models.Transaction{
		UserID:      user.ID,
		Category:    req.Category,
		Amount:      *req.Amount,
		Description: req.Description,
		Type:        req.TransactionType,
		Date:        time.Now(),
	}
	if req.Date != nil {
		tx.Date = *req.Date
	}
	if err := db.Create(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusOK, tx, "Transaction added successfully")
}

// listTransactionsHandler returns the caller's transactions, newest first.
func listTransactionsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var items []models.Transaction
	if err := db.Where("user_id = ?", user.ID).Order("date desc").Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusOK, items, "Transactions fetched successfully")
}

// updateTransactionHandler mutates a transaction owned by the caller. The
// compound (id, user_id) filter makes cross-user interference impossible.
func updateTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Category        *models.Category        `json:"category"`
		Amount          *float64                `json:"amount"`
		Date            *time.Time              `json:"date"`
		Description     *string                 `json:"description"`
		TransactionType *models.TransactionType `json:"transactionType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	updates := map[string]any{}
	if req.Category != nil {
		if !req.Category.Valid() {
			respondError(c, http.StatusBadRequest, "invalid category", nil)
			return
		}
		updates["category"] = *req.Category
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			respondError(c, http.StatusBadRequest, "amount must be non-negative", nil)
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Description != nil {
		if *req.Description == "" {
			respondError(c, http.StatusBadRequest, "description must not be empty", nil)
			return
		}
		updates["description"] = *req.Description
	}
	if req.TransactionType != nil {
		if !req.TransactionType.Valid() {
			respondError(c, http.StatusBadRequest, "invalid transaction type", nil)
			return
		}
		updates["type"] = *req.TransactionType
	}

	var tx models.Transaction
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&tx).Error; err != nil {
		respondLookupError(c, "Transaction not found", err)
		return
	}
	if len(updates) > 0 {
		if err := db.Model(&tx).Updates(updates).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Server error", err.Error())
			return
		}
	}
	respondOK(c, http.StatusOK, tx, "Transaction updated")
}

func deleteTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var tx models.Transaction
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&tx).Error; err != nil {
		respondLookupError(c, "Transaction not found", err)
		return
	}
	if err := db.Delete(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	respondOK(c, http.StatusOK, tx, "Transaction deleted")
}
