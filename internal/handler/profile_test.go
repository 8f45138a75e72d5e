package handler_test

import (
	"net/http"
	"testing"

	"github.com/SYAAGalib/money-flow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGet(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, env := e.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada Lovelace", env.Data["full_name"])
	assert.Equal(t, "", env.Data["theme"])
	// only the user's own categories, defaults excluded
	assert.Empty(t, env.Data["categories"])
}

func TestProfileUpdateTheme(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, _ := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"theme": "dark",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := e.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", env.Data["theme"])

	// the theme lives on the session, not the user
	var user models.User
	require.NoError(t, e.db.First(&user).Error)
	var session models.Session
	require.NoError(t, e.db.Where("user_id = ?", user.ID).First(&session).Error)
	assert.Equal(t, "dark", session.Theme)
}

func TestProfileUpdateName(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, env := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"name": "Augusta Ada King",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Augusta Ada King", env.Data["full_name"])

	var user models.User
	require.NoError(t, e.db.First(&user).Error)
	assert.Equal(t, "Augusta", user.FirstName)
	assert.Equal(t, "Ada King", user.LastName)
}

func TestProfileCreateCategory(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, _ := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"new_category": "Hobby",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, e.db.Model(&models.Category{}).
		Where("name = ? AND user_id IS NOT NULL", "Hobby").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileSubOperationsIndependent(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	// duplicate category fails silently, the other updates still apply
	w, _ := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"new_category": "Hobby",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"theme":        "light",
		"name":         "Grace Hopper",
		"new_category": "hobby",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Grace Hopper", env.Data["full_name"])
	assert.Equal(t, "light", env.Data["theme"])

	var count int64
	require.NoError(t, e.db.Model(&models.Category{}).
		Where("user_id IS NOT NULL").
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "duplicate category not created")
}

func TestProfileAbsentFieldsNoOp(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, env := e.do(http.MethodPost, "/api/profile", token, map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada Lovelace", env.Data["full_name"])

	var user models.User
	require.NoError(t, e.db.First(&user).Error)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
}
