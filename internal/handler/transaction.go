package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/models"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD and listing.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

type transactionReq struct {
	Type       string `json:"type" binding:"required,oneof=income expense"`
	CategoryID *uint  `json:"category_id"`
	Amount     string `json:"amount" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Notes      string `json:"notes" binding:"max=1024"`
}

type transactionResp struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	CategoryID *uint     `json:"category_id"`
	Category   string    `json:"category"`
	Amount     string    `json:"amount"`
	Date       string    `json:"date"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	categoryName := ""
	if t.Category != nil {
		categoryName = t.Category.Name
	}
	return transactionResp{
		ID:         t.ID,
		Type:       t.Type,
		CategoryID: t.CategoryID,
		Category:   categoryName,
		Amount:     t.Amount.StringFixed(2),
		Date:       t.Date.Format("2006-01-02"),
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// validateCategory checks that the referenced category is usable by
// the user: one of their own or a global default.
func (h *TransactionHandler) validateCategory(userID uint, categoryID *uint) bool {
	if categoryID == nil {
		return true
	}
	var count int64
	h.DB.Model(&models.Category{}).
		Where("id = ? AND (user_id = ? OR is_default = ?)", *categoryID, userID, true).
		Count(&count)
	return count > 0
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.FieldError(c, "amount", "enter a valid amount")
		return
	}
	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.FieldError(c, "date", "enter a valid date (YYYY-MM-DD)")
		return
	}
	if !h.validateCategory(user.ID, req.CategoryID) {
		util.FieldError(c, "category_id", "invalid category")
		return
	}

	tx := models.Transaction{
		UserID:     user.ID,
		Type:       req.Type,
		CategoryID: req.CategoryID,
		Amount:     amount,
		Date:       date,
		Notes:      req.Notes,
	}
	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}
	_ = h.DB.Preload("Category").First(&tx, tx.ID).Error

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// findOwned resolves a transaction by id for the given user. Another
// user's transaction is indistinguishable from a missing one.
func (h *TransactionHandler) findOwned(userID uint, id int) (*models.Transaction, error) {
	var tx models.Transaction
	err := h.DB.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	tx, err := h.findOwned(user.ID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.FieldError(c, "amount", "enter a valid amount")
		return
	}
	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.FieldError(c, "date", "enter a valid date (YYYY-MM-DD)")
		return
	}
	if !h.validateCategory(user.ID, req.CategoryID) {
		util.FieldError(c, "category_id", "invalid category")
		return
	}

	tx, err := h.findOwned(user.ID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	tx.Type = req.Type
	tx.CategoryID = req.CategoryID
	tx.Category = nil
	tx.Amount = amount
	tx.Date = date
	tx.Notes = req.Notes

	if err := h.DB.Save(tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}
	_ = h.DB.Preload("Category").First(tx, tx.ID).Error

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// List returns the user's transactions. Filters compose with AND:
// type, category id, inclusive date range and a free-text query over
// notes or category name. Results come in default order in fixed-size
// pages.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	base := h.DB.Model(&models.Transaction{}).
		Where("transactions.user_id = ?", user.ID)

	// unrecognized type values apply no filter
	txType := c.Query("type")
	if txType != models.TypeIncome && txType != models.TypeExpense {
		txType = ""
	}
	if txType != "" {
		base = base.Where("transactions.type = ?", txType)
	}

	if catStr := c.Query("category"); catStr != "" {
		catID, err := strconv.Atoi(catStr)
		if err != nil || catID <= 0 {
			util.FieldError(c, "category", "invalid category filter")
			return
		}
		base = base.Where("transactions.category_id = ?", catID)
	}

	if startStr := c.Query("start"); startStr != "" {
		start, err := util.ParseDate(startStr)
		if err != nil {
			util.FieldError(c, "start", "invalid start date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("transactions.date >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := util.ParseDate(endStr)
		if err != nil {
			util.FieldError(c, "end", "invalid end date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("transactions.date <= ?", end)
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		base = base.
			Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("LOWER(transactions.notes) LIKE ? OR LOWER(categories.name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	page := clampPage(c.Query("page"), total, h.PageSize)
	pages := pageCount(total, h.PageSize)
	offset := (page - 1) * h.PageSize

	var txs []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Preload("Category").
		Order(models.DefaultOrder).
		Limit(h.PageSize).
		Offset(offset).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"items":     items,
		"total":     total,
		"page":      page,
		"pages":     pages,
		"page_size": h.PageSize,
	})
}

// pageCount reports how many pages the result set spans. An empty set
// still has one page.
func pageCount(total int64, size int) int {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clampPage resolves a raw page parameter: missing or malformed values
// fall back to the first page, values past the end land on the last.
func clampPage(raw string, total int64, size int) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}
	if pages := pageCount(total, size); page > pages {
		page = pages
	}
	return page
}
