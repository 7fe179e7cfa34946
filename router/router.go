package router

import (
	"kkj123/handles"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func New(h *handles.Handler, log logrus.FieldLogger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Use(middleware.Recover())
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Info("request")
			return nil
		},
	}))
	BindRouter(server, h)
	return server
}

func BindRouter(server *echo.Echo, h *handles.Handler) {
	api := server.Group("/api")
	// users
	api.POST("/users", h.Register)
	api.GET("/users/:id/channels", h.UserChannels)
	// channels
	api.POST("/channels", h.CreateChannel)
	api.GET("/channels/:id", h.GetChannel)
	api.GET("/channels/:id/members", h.ListMembers)
}
