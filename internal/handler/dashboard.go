package handler

import (
	"net/http"

	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/models"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardHandler serves the aggregate overview.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

const recentCount = 5

// sumByType adds up the user's amounts for one transaction type.
// Summation happens in Go on exact decimals; no rows means zero.
func (h *DashboardHandler) sumByType(userID uint, txType string) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := h.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

// Dashboard returns income and expense totals, their balance and the
// five most recent transactions.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	totalIncome, err := h.sumByType(user.ID, models.TypeIncome)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	totalExpense, err := h.sumByType(user.ID, models.TypeExpense)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	balance := totalIncome.Sub(totalExpense)

	var recent []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order(models.DefaultOrder).
		Limit(recentCount).
		Find(&recent).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	recentItems := make([]transactionResp, 0, len(recent))
	for i := range recent {
		recentItems = append(recentItems, toTransactionResp(&recent[i]))
	}

	util.Success(c, util.Response{
		"total_income":        totalIncome.StringFixed(2),
		"total_expense":       totalExpense.StringFixed(2),
		"balance":             balance.StringFixed(2),
		"recent_transactions": recentItems,
	})
}
