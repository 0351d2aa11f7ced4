package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/cart"
	"github.com/example/merchstore/internal/checkout"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/storage"
)

const sessionNamespacePrefix = "session:"

// Sessions opens the storage and cart of the session behind a request.
type Sessions struct {
	backend storage.Backend
	log     logger.Logger
}

// NewSessions constructs Sessions over backend.
func NewSessions(backend storage.Backend, log logger.Logger) *Sessions {
	return &Sessions{backend: backend, log: log}
}

// Store returns the key-value store of sessionID.
func (s *Sessions) Store(sessionID string) storage.Store {
	return s.backend.Namespace(sessionNamespacePrefix + sessionID)
}

// Open loads the session of the current request. It must run behind
// middleware.SessionMiddleware.
func (s *Sessions) Open(c *fiber.Ctx) (checkout.Session, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return checkout.Session{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	store := s.Store(id.SessionID)
	log := s.log.With(logger.String("session_id", id.SessionID))
	return checkout.Session{
		ID:    id.SessionID,
		Store: store,
		Cart:  cart.Load(c.UserContext(), log, store),
	}, nil
}
