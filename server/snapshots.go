package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/labstack/echo/v4"
)

const (
	defaultRevisionLimit = 20
	maxRevisionLimit     = 200
)

// RevisionList is the response for the revisions endpoint
type RevisionList struct {
	Key       string     `json:"key"`
	Revisions []Revision `json:"revisions"`
}

func snapshotKey(c echo.Context) (string, error) {
	key := c.Param("key")
	if key == "" || strings.ContainsAny(key, `/\`) || len(key) > 128 {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid key")
	}
	return key, nil
}

// handleGetSnapshot returns the latest revision's bytes as stored
func (s *Server) handleGetSnapshot(c echo.Context) error {
	key, err := snapshotKey(c)
	if err != nil {
		return err
	}

	rev, err := s.store.Latest(c.Request().Context(), key)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "snapshot not found"})
	}
	if err != nil {
		logger.Error("Failed to load snapshot", logger.F("key", key), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load snapshot"})
	}

	c.Response().Header().Set("X-Revision-Id", rev.ID.String())
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, rev.Data)
}

// handlePutSnapshot stores the request body as a new revision
func (s *Server) handlePutSnapshot(c echo.Context) error {
	key, err := snapshotKey(c)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read body"})
	}
	if len(data) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty snapshot"})
	}

	rev, err := s.store.Put(c.Request().Context(), key, data)
	if err != nil {
		logger.Error("Failed to store snapshot", logger.F("key", key), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store snapshot"})
	}

	logger.Debug("Snapshot stored",
		logger.F("key", key),
		logger.F("revision", rev.ID.String()),
		logger.F("size", rev.Size))
	return c.JSON(http.StatusCreated, rev)
}

// handleListRevisions lists revision metadata, newest first
func (s *Server) handleListRevisions(c echo.Context) error {
	key, err := snapshotKey(c)
	if err != nil {
		return err
	}

	limit := defaultRevisionLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = min(n, maxRevisionLimit)
	}

	revs, err := s.store.Revisions(c.Request().Context(), key, limit)
	if err != nil {
		logger.Error("Failed to list revisions", logger.F("key", key), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list revisions"})
	}
	if revs == nil {
		revs = []Revision{}
	}
	return c.JSON(http.StatusOK, RevisionList{Key: key, Revisions: revs})
}
