package handles

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createChannelRequest struct {
	UserID   uint   `json:"user_id"`
	Title    string `json:"title"`
	IsPublic bool   `json:"is_public"`
}

// CreateChannel creates a channel with its creator as the first member,
// then announces it.
func (h *Handler) CreateChannel(ctx echo.Context) error {
	req := createChannelRequest{}
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return errorJSON(ctx, http.StatusBadRequest, "user_id is required")
	}

	channel, err := h.store.CreateChannel(ctx.Request().Context(), req.UserID, req.Title, req.IsPublic)
	if err != nil {
		return h.storeError(ctx, err)
	}

	// the channel is committed at this point; a lost event is only logged
	if h.notifier != nil {
		if err := h.notifier.ChannelCreated(ctx.Request().Context(), channel); err != nil {
			h.log.WithField("channel_id", channel.ID).WithError(err).Warn("channel event not published")
		}
	}
	return ctx.JSON(http.StatusCreated, channel)
}

func (h *Handler) GetChannel(ctx echo.Context) error {
	id, ok := idParam(ctx, "id")
	if !ok {
		return errorJSON(ctx, http.StatusBadRequest, "invalid channel id")
	}
	channel, err := h.store.GetChannel(ctx.Request().Context(), id)
	if err != nil {
		return h.storeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, channel)
}

func (h *Handler) ListMembers(ctx echo.Context) error {
	id, ok := idParam(ctx, "id")
	if !ok {
		return errorJSON(ctx, http.StatusBadRequest, "invalid channel id")
	}
	members, err := h.store.ListMembers(ctx.Request().Context(), id)
	if err != nil {
		return h.storeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, members)
}
