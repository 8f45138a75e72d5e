package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/models"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves category listing and creation.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryResp struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// List returns the user's own categories plus the global defaults,
// ordered by name.
func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var cats []models.Category
	if err := h.DB.
		Where("user_id = ? OR is_default = ?", user.ID, true).
		Order("name ASC").
		Find(&cats).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for _, cat := range cats {
		items = append(items, categoryResp{ID: cat.ID, Name: cat.Name, IsDefault: cat.IsDefault})
	}

	util.Success(c, util.Response{
		"categories": items,
	})
}

type createCategoryReq struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	cat, err := CreateUserCategory(h.DB, user.ID, req.Name)
	if err != nil {
		util.FieldError(c, "name", err.Error())
		return
	}

	util.Success(c, util.Response{
		"category": categoryResp{ID: cat.ID, Name: cat.Name, IsDefault: cat.IsDefault},
	})
}

// CreateUserCategory validates and persists a user-owned category. The
// name must be non-empty after trimming and unique among the user's
// own categories, compared case-insensitively.
func CreateUserCategory(db *gorm.DB, userID uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("category name too long")
	}

	var count int64
	if err := db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("you already have this category")
	}

	cat := models.Category{
		UserID: &userID,
		Name:   name,
	}
	if err := db.Create(&cat).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}
