package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/storage"
)

const defaultLanguage = "ru"

// PreferencesHandler stores per-session UI preferences.
type PreferencesHandler struct {
	sessions *Sessions
	log      logger.Logger
}

// NewPreferencesHandler constructs PreferencesHandler.
func NewPreferencesHandler(sessions *Sessions, log logger.Logger) *PreferencesHandler {
	return &PreferencesHandler{sessions: sessions, log: log}
}

// GetLanguage returns the preferred language, "ru" when unset.
func (h *PreferencesHandler) GetLanguage(c *fiber.Ctx) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	language := defaultLanguage
	value, found, err := h.sessions.Store(id.SessionID).Get(c.UserContext(), storage.KeyPreferredLanguage)
	switch {
	case err != nil:
		h.log.Warn("read preferred language", logger.String("session_id", id.SessionID), logger.Error(err))
	case found && (value == "en" || value == "ru"):
		language = value
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"language": language}})
}

type languageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ru"`
}

// SetLanguage stores the preferred language.
func (h *PreferencesHandler) SetLanguage(c *fiber.Ctx) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req languageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.sessions.Store(id.SessionID).Set(c.UserContext(), storage.KeyPreferredLanguage, req.Language); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"language": req.Language}})
}
