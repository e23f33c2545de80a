package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jarvis/internal/models"
)

type recordResponse struct {
	Key       string        `json:"context_key"`
	Fields    models.Fields `json:"fields"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (s *HTTPServer) handleGetContext(c *gin.Context) {
	key := c.Param("key")

	if verbose, _ := strconv.ParseBool(c.Query("verbose")); verbose {
		s.handleGetRecord(c, key)
		return
	}

	fields, ok, err := s.contexts.Get(c.Request.Context(), key)
	if err != nil {
		s.contextError(c, err)
		return
	}
	if !ok {
		s.error(c, http.StatusNotFound, "context not found")
		return
	}
	s.success(c, fields)
}

// handleGetRecord reads the row directly, timestamps included.
func (s *HTTPServer) handleGetRecord(c *gin.Context, key string) {
	rec, err := s.contexts.Record(c.Request.Context(), key)
	if err != nil {
		s.contextError(c, err)
		return
	}
	if rec == nil {
		s.error(c, http.StatusNotFound, "context not found")
		return
	}
	s.success(c, recordResponse{
		Key:       rec.ContextKey,
		Fields:    rec.Fields(),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	})
}

func (s *HTTPServer) handleSetContext(c *gin.Context) {
	key := c.Param("key")

	var payload models.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.error(c, http.StatusBadRequest, "request body must be a JSON object: "+err.Error())
		return
	}

	stored, err := s.contexts.Set(c.Request.Context(), key, payload)
	if err != nil {
		s.contextError(c, err)
		return
	}
	s.success(c, stored)
}

func (s *HTTPServer) handleDeleteContext(c *gin.Context) {
	if err := s.contexts.Delete(c.Request.Context(), c.Param("key")); err != nil {
		s.contextError(c, err)
		return
	}
	s.success(c, nil)
}

func (s *HTTPServer) contextError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrValidation) {
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("context store failure", "path", c.Request.URL.Path, "error", err)
	s.error(c, http.StatusInternalServerError, "context store unavailable")
}
