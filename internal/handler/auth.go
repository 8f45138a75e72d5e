package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/SYAAGalib/money-flow/internal/config"
	"github.com/SYAAGalib/money-flow/internal/middleware"
	"github.com/SYAAGalib/money-flow/internal/models"
	"github.com/SYAAGalib/money-flow/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default categories shared by every account, seeded on registration.
var defaultCategoryNames = []string{"Salary", "Food", "Rent", "Bills", "Shopping", "Others"}

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	DB          *gorm.DB
	Secret      string
	SessionTTL  time.Duration // lifetime without "remember"
	RememberTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		DB:          db,
		Secret:      cfg.Secret,
		SessionTTL:  time.Duration(cfg.SessionHours) * time.Hour,
		RememberTTL: time.Duration(cfg.RememberDays) * 24 * time.Hour,
	}
}

type registerReq struct {
	FullName        string `json:"full_name" binding:"required,max=150"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		util.FieldError(c, "full_name", "full name required")
		return
	}

	if req.Password != req.ConfirmPassword {
		util.FieldError(c, "confirm_password", "passwords do not match")
		return
	}

	// emails differing only in case collide
	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check email")
		return
	}
	if count > 0 {
		util.FieldError(c, "email", "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	first, last := util.SplitFullName(req.FullName)
	user := models.User{
		Username:     email,
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	if err := EnsureDefaultCategories(h.DB); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to seed categories")
		return
	}

	// log the new user in right away
	token, session, err := h.createSession(&user, false)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}
	h.setSessionCookie(c, token, session)

	util.Success(c, util.Response{
		"token": token,
		"user":  userResp(&user),
	})
}

// EnsureDefaultCategories creates the shared default categories once.
// The partial unique index on ownerless names makes this safe under
// concurrent first registrations; a loser of that race just sees the
// row the winner inserted.
func EnsureDefaultCategories(db *gorm.DB) error {
	for _, name := range defaultCategoryNames {
		cat := models.Category{Name: name, IsDefault: true}
		if err := db.Where("user_id IS NULL AND name = ?", name).
			FirstOrCreate(&cat).Error; err != nil {
			// duplicate insert lost the race, the row exists now
			var again models.Category
			if lookupErr := db.Where("user_id IS NULL AND name = ?", name).
				First(&again).Error; lookupErr != nil {
				return err
			}
		}
	}
	return nil
}

type loginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Remember   bool   `json:"remember"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	ident := strings.TrimSpace(req.Identifier)

	// an email identifier resolves to the stored username first; no
	// match keeps the original identifier (and fails verification)
	if strings.Contains(ident, "@") {
		var byEmail models.User
		if err := h.DB.Where("LOWER(email) = LOWER(?)", ident).
			First(&byEmail).Error; err == nil {
			ident = byEmail.Username
		}
	}

	var user models.User
	if err := h.DB.Where("username = ?", ident).First(&user).Error; err != nil {
		// same rejection as a bad password, do not reveal which
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		return
	}

	token, session, err := h.createSession(&user, req.Remember)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}
	h.setSessionCookie(c, token, session)

	util.Success(c, util.Response{
		"token": token,
		"user":  userResp(&user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	if err := h.DB.Model(session).Update("revoked", true).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to log out")
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	util.Success(c, util.Response{
		"message": "logged out",
	})
}

// createSession fixes the session lifetime at creation time: remember
// picks the long expiry, otherwise the short default applies and the
// cookie is scoped to the browser session.
func (h *AuthHandler) createSession(user *models.User, remember bool) (string, *models.Session, error) {
	ttl := h.SessionTTL
	if remember {
		ttl = h.RememberTTL
	}
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ttl),
		Remember:  remember,
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return "", nil, err
	}

	token, err := util.GenerateToken(h.Secret, user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, err
	}
	return token, &session, nil
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, session *models.Session) {
	maxAge := 0 // expires when the client closes
	if session.Remember {
		maxAge = int(time.Until(session.ExpiresAt).Seconds())
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"full_name":  u.FullName(),
	}
}
