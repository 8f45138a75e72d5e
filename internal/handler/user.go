package handler

import (
	"net/http"

	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the current authenticated user (requires AuthMiddleware).
func GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	util.Success(c, util.Response{
		"user": userResp(user),
	})
}
