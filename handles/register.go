package handles

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Register(ctx echo.Context) error {
	req := registerRequest{}
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return errorJSON(ctx, http.StatusBadRequest, "email is required")
	}

	user, err := h.store.RegisterUser(ctx.Request().Context(), req.Email)
	if err != nil {
		return h.storeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, user)
}

func (h *Handler) UserChannels(ctx echo.Context) error {
	userID, ok := idParam(ctx, "id")
	if !ok {
		return errorJSON(ctx, http.StatusBadRequest, "invalid user id")
	}
	channels, err := h.store.UserChannels(ctx.Request().Context(), userID)
	if err != nil {
		return h.storeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, channels)
}
