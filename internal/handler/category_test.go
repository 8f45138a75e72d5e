package handler_test

import (
	"net/http"
	"testing"

	"github.com/SYAAGalib/money-flow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, env := e.do(http.MethodPost, "/api/categories", token, map[string]interface{}{
		"name": "  Travel  ",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cat := env.Data["category"].(map[string]interface{})
	assert.Equal(t, "Travel", cat["name"], "name is trimmed")
	assert.Equal(t, false, cat["is_default"])

	var stored models.Category
	require.NoError(t, e.db.Where("name = ?", "Travel").First(&stored).Error)
	require.NotNil(t, stored.UserID)
	assert.False(t, stored.IsDefault)
}

func TestCategoryUniquePerUserCaseInsensitive(t *testing.T) {
	e := newTestEnv(t)
	tokenA := e.register("Ada Lovelace", "ada@example.com", "Secret123")
	tokenB := e.register("Grace Hopper", "grace@example.com", "Secret123")

	w, _ := e.do(http.MethodPost, "/api/categories", tokenA, map[string]interface{}{"name": "Hobby"})
	require.Equal(t, http.StatusOK, w.Code)

	// same user, different case: rejected
	w, env := e.do(http.MethodPost, "/api/categories", tokenA, map[string]interface{}{"name": "hobby"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name", env.Field)

	// different user, same name: allowed
	w, _ = e.do(http.MethodPost, "/api/categories", tokenB, map[string]interface{}{"name": "hobby"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryEmptyNameRejected(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, _ := e.do(http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryListOwnPlusDefaults(t *testing.T) {
	e := newTestEnv(t)
	tokenA := e.register("Ada Lovelace", "ada@example.com", "Secret123")
	tokenB := e.register("Grace Hopper", "grace@example.com", "Secret123")

	w, _ := e.do(http.MethodPost, "/api/categories", tokenA, map[string]interface{}{"name": "Hobby"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := e.do(http.MethodGet, "/api/categories", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := env.Data["categories"].([]interface{})
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	// six defaults plus the private one, ordered by name
	assert.Equal(t, []string{"Bills", "Food", "Hobby", "Others", "Rent", "Salary", "Shopping"}, names)

	// B does not see A's private category
	w, env = e.do(http.MethodGet, "/api/categories", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["categories"].([]interface{}), 6)
}

func TestCategoryDeleteNullsTransactions(t *testing.T) {
	e := newTestEnv(t)
	token := e.register("Ada Lovelace", "ada@example.com", "Secret123")

	w, env := e.do(http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "Hobby"})
	require.Equal(t, http.StatusOK, w.Code)
	hobby := uint(env.Data["category"].(map[string]interface{})["id"].(float64))

	id := e.addTransaction(token, "expense", "5.00", "2024-03-01", "", &hobby)

	// category rows go away only with their owner; emulate the cascade
	// path by deleting the row directly and observe SET NULL
	require.NoError(t, e.db.Delete(&models.Category{}, hobby).Error)

	var tx models.Transaction
	require.NoError(t, e.db.First(&tx, id).Error)
	assert.Nil(t, tx.CategoryID)
}
