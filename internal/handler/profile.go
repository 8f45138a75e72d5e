package handler

import (
	"net/http"
	"strings"

	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/models"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile returns the profile page data: display name, the current
// session's theme and the user's own categories.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			return
		}
		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			return
		}

		var cats []models.Category
		if err := db.Where("user_id = ?", user.ID).
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
			"full_name":  user.FullName(),
			"theme":      session.Theme,
			"categories": items,
		})
	}
}

// updateProfileReq carries three independent optional sub-operations.
// An absent field is a no-op, not an error.
type updateProfileReq struct {
	Theme       *string `json:"theme"`
	Name        *string `json:"name"`
	NewCategory *string `json:"new_category"`
}

// UpdateProfile applies the requested sub-operations: switch the
// session theme, rename the user, create a category. A failing
// category sub-validation is swallowed; the other operations still
// apply.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			return
		}
		session, ok := middleware.CurrentSession(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
			return
		}

		if req.Theme != nil {
			theme := strings.TrimSpace(*req.Theme)
			if err := db.Model(session).Update("theme", theme).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update theme")
				return
			}
			session.Theme = theme
		}

		if req.Name != nil {
			first, last := util.SplitFullName(*req.Name)
			updates := map[string]interface{}{
				"first_name": first,
				"last_name":  last,
			}
			if err := db.Model(user).Updates(updates).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update name")
				return
			}
			user.FirstName = first
			user.LastName = last
		}

		if req.NewCategory != nil && strings.TrimSpace(*req.NewCategory) != "" {
			// best effort, invalid names are ignored
			_, _ = CreateUserCategory(db, user.ID, *req.NewCategory)
		}

		util.Success(c, util.Response{
			"full_name": user.FullName(),
			"theme":     session.Theme,
		})
	}
}
