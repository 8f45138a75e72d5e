package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SYAAGalib/money-flow/internal/config"
	"github.com/SYAAGalib/money-flow/internal/database"
	"github.com/SYAAGalib/money-flow/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

// envelope is the unified response format.
type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field"`
	Data    map[string]interface{} `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// one shared in-memory database per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.SessionHours = 24
	cfg.Auth.RememberDays = 14
	cfg.App.PageSize = 10

	return &testEnv{
		t:      t,
		db:     db,
		router: router.SetupRouter(cfg, db),
		cfg:    cfg,
	}
}

func (e *testEnv) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// register creates an account and returns its auth token.
func (e *testEnv) register(fullName, email, password string) string {
	e.t.Helper()
	w, env := e.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"full_name":        fullName,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(e.t, http.StatusOK, w.Code, "register %s: %s", email, w.Body.String())
	token, _ := env.Data["token"].(string)
	require.NotEmpty(e.t, token)
	return token
}

// addTransaction creates a transaction and returns its id.
func (e *testEnv) addTransaction(token, txType, amount, date, notes string, categoryID *uint) uint {
	e.t.Helper()
	body := map[string]interface{}{
		"type":   txType,
		"amount": amount,
		"date":   date,
		"notes":  notes,
	}
	if categoryID != nil {
		body["category_id"] = *categoryID
	}
	w, env := e.do(http.MethodPost, "/api/transactions", token, body)
	require.Equal(e.t, http.StatusOK, w.Code, "create transaction: %s", w.Body.String())
	tx := env.Data["transaction"].(map[string]interface{})
	return uint(tx["id"].(float64))
}

// categoryID looks up a category id by name through the API.
func (e *testEnv) categoryID(token, name string) uint {
	e.t.Helper()
	w, env := e.do(http.MethodGet, "/api/categories", token, nil)
	require.Equal(e.t, http.StatusOK, w.Code)
	for _, item := range env.Data["categories"].([]interface{}) {
		cat := item.(map[string]interface{})
		if cat["name"] == name {
			return uint(cat["id"].(float64))
		}
	}
	e.t.Fatalf("category %q not found", name)
	return 0
}
