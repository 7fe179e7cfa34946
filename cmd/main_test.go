package main

import (
	"io"
	"os"
	"syscall"
	"testing"
	"time"

	"kkj123/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newServer() *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	return server
}

func TestServeReturnsStartError(t *testing.T) {
	stop := make(chan os.Signal)

	done := make(chan error, 1)
	go func() { done <- serve(newServer(), "not-an-address", stop, quietLogger()) }()

	select {
	case err := <-done:
		// returned to the caller instead of exiting the process
		assert.ErrorContains(t, err, "server error")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listener failed")
	}
}

func TestServeStopsOnSignal(t *testing.T) {
	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM

	done := make(chan error, 1)
	go func() { done <- serve(newServer(), "127.0.0.1:0", stop, quietLogger()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the shutdown signal")
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	log := newLogger(config.Log{Level: "verbose", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}
