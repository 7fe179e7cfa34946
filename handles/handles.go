package handles

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"kkj123/database"
	"kkj123/models"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Store is the part of *database.Store the handlers call.
type Store interface {
	RegisterUser(ctx context.Context, email string) (*models.User, error)
	CreateChannel(ctx context.Context, userID uint, title string, isPublic bool) (*models.Channel, error)
	GetChannel(ctx context.Context, id uint) (*models.Channel, error)
	ListMembers(ctx context.Context, channelID uint) ([]models.Membership, error)
	UserChannels(ctx context.Context, userID uint) ([]models.Channel, error)
}

// Notifier is told about channels after they are committed.
type Notifier interface {
	ChannelCreated(ctx context.Context, channel *models.Channel) error
}

type Handler struct {
	store    Store
	notifier Notifier
	log      logrus.FieldLogger
}

// New builds the handlers. notifier may be nil.
func New(store Store, notifier Notifier, log logrus.FieldLogger) *Handler {
	return &Handler{store: store, notifier: notifier, log: log}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, map[string]string{"error": message})
}

// storeError turns a store failure into a response.
func (h *Handler) storeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return errorJSON(ctx, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrConflict):
		return errorJSON(ctx, http.StatusConflict, "already exists")
	case errors.Is(err, database.ErrRejected):
		return errorJSON(ctx, http.StatusUnprocessableEntity, "rejected")
	case errors.Is(err, database.ErrUnavailable):
		h.log.WithError(err).Error("store unavailable")
		return errorJSON(ctx, http.StatusServiceUnavailable, "store unavailable")
	default:
		h.log.WithError(err).Error("store request failed")
		return errorJSON(ctx, http.StatusInternalServerError, "internal error")
	}
}

func idParam(ctx echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
