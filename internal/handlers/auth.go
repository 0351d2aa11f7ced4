package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/merchstore/internal/config"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/models"
	"github.com/example/merchstore/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Guest issues an anonymous session token. A shopper who already holds a
// valid token gets a fresh one for the same session.
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	sessionID := h.sessionFor(c)

	token, err := utils.GenerateToken(h.cfg.JWTSecret, utils.Identity{SessionID: sessionID}, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"token":      token,
		"session_id": sessionID,
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

// Register creates a new customer account. The cart of the caller's current
// session carries over.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(req.FullName),
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return h.respondWithToken(c, fiber.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an existing customer.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	return h.respondWithToken(c, fiber.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	id := utils.Identity{
		SessionID: h.sessionFor(c),
		UserID:    user.ID,
		Email:     user.Email,
	}
	token, err := utils.GenerateToken(h.cfg.JWTSecret, id, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"points":    user.Points,
			"is_admin":  h.cfg.IsAdmin(user.Email),
		},
		"token":      token,
		"session_id": id.SessionID,
	})
}

// sessionFor keeps the session of a valid bearer token, or starts a new one.
func (h *AuthHandler) sessionFor(c *fiber.Ctx) string {
	if id, ok := middleware.OptionalIdentity(c, h.cfg); ok {
		return id.SessionID
	}
	return utils.NewSessionID()
}
