package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/config"
	"github.com/elcomensal/restaurante-api/internal/model"
	"github.com/elcomensal/restaurante-api/internal/repository"
	"github.com/elcomensal/restaurante-api/internal/utils"
)

// userStore, profileStore and tokenStore are the repository slices the
// auth endpoints need.
type userStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

type profileStore interface {
	Create(ctx context.Context, userID uint64, email, nombre, rol string) error
	GetByUserID(ctx context.Context, userID uint64) (model.Profile, error)
}

type tokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler bundles dependencies for auth and session endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    userStore
	Profiles profileStore
	Tokens   tokenStore
	Carts    *cart.Store
}

func NewAuthHandler(cfg config.Config, u userStore, p profileStore, t tokenStore, carts *cart.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Profiles: p, Tokens: t, Carts: carts}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID         uint64  `json:"id"`
	Email      string  `json:"email"`
	Nombre     string  `json:"nombre"`
	Rol        *string `json:"rol"` // null when the profile record is missing
	RolMissing bool    `json:"rol_missing,omitempty"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// resolveRole looks up the usuarios record for an authenticated identity.
// A missing record is logged, not surfaced: the identity stays signed in
// with the role unset and the routing layer applies its fallback.
func (h *AuthHandler) resolveRole(ctx context.Context, userID uint64) (model.Profile, bool) {
	p, err := h.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileMissing) {
			log.Printf("auth: no usuarios record for user_id=%d; authenticated with role unset", userID)
		} else {
			log.Printf("auth: profile lookup failed for user_id=%d: %v", userID, err)
		}
		return model.Profile{}, false
	}
	return p, true
}

func rolePtr(p model.Profile, ok bool) (*string, string) {
	if !ok {
		return nil, ""
	}
	rol := p.Rol
	return &rol, rol
}

// Register creates the auth identity plus its usuarios profile (always
// rol='cliente'; there is no self-service role change) and returns tokens
// immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Email == "" || req.Password == "" || req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/nombre required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	if err := h.Profiles.Create(ctx, uid, req.Email, req.Nombre, model.RoleCliente); err != nil {
		// Identity exists but the role record does not: the account lands in
		// the role-unset state until the record is repaired.
		log.Printf("auth: create usuarios record failed for user_id=%d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	rol := model.RoleCliente
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, rol, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Email: req.Email, Nombre: req.Nombre, Rol: &rol},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login verifies credentials, resolves the role record and returns a new
// token pair. A missing role record does not fail the login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	profile, haveProfile := h.resolveRole(ctx, u.ID)
	rolField, rolClaim := rolePtr(profile, haveProfile)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, rolClaim, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Email: u.Email, Nombre: profile.Nombre, Rol: rolField, RolMissing: !haveProfile},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh validates by hash, revokes the old token and issues a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)
	hash := utils.HashRefreshRaw(raw)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	profile, haveProfile := h.resolveRole(ctx, userID)
	rolField, rolClaim := rolePtr(profile, haveProfile)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, rolClaim, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: userID, Email: u.Email, Nombre: profile.Nombre, Rol: rolField, RolMissing: !haveProfile},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
	})
}

// Logout revokes a session. With a refresh token in the body, only that
// session is revoked; with a valid bearer, all of the user's refresh
// tokens are revoked and the in-memory cart is dropped (the cart lives
// for the session only and is never persisted).
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		userID, err := h.Tokens.ValidateRefresh(ctx, hash)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		h.Carts.Drop(userID)
		return c.NoContent(http.StatusNoContent)
	}

	// No refresh token: fall back to the bearer identity set by JWTAuth.
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide refresh_token or Authorization header"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	h.Carts.Drop(uid)
	return c.NoContent(http.StatusNoContent)
}

// Session reports the authenticated identity together with its role
// state. It is JWT-protected but deliberately not role-gated: the
// role-unset state must be observable so the client can route to its
// fallback screen instead of crashing.
func (h *AuthHandler) Session(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	profile, haveProfile := h.resolveRole(ctx, uid)
	rolField, _ := rolePtr(profile, haveProfile)

	return c.JSON(http.StatusOK, userPart{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     profile.Nombre,
		Rol:        rolField,
		RolMissing: !haveProfile,
	})
}
