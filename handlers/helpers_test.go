package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sticky-board/app"
	"sticky-board/config/setup"
	"sticky-board/database"
	"sticky-board/drag"
	"sticky-board/session"
	"sticky-board/store"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// setupTestApp opens a store in a temporary directory and registers the
// full route table against it.
func setupTestApp(t *testing.T) (*app.App, *fiber.App) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	noteStore := store.New(store.Options{
		Driver:  database.DriverPure,
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Timeout: 2 * time.Second,
		Logger:  logger,
	})
	t.Cleanup(func() { noteStore.Close() })
	require.NoError(t, noteStore.Initialize(context.Background()), "Failed to initialize test store")

	viewports := session.NewStore(noteStore, &drag.Stacker{}, time.Hour, logger)
	application := app.New(noteStore, viewports, logger)

	fiberApp := fiber.New(fiber.Config{ErrorHandler: setup.CustomErrorHandler(logger)})
	setup.RegisterRoutes(fiberApp, application)

	return application, fiberApp
}

// doJSON sends body as JSON and decodes the JSON response.
func doJSON(t *testing.T, fiberApp *fiber.App, method, path string, body any) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}
