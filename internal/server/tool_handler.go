package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jarvis/internal/llm/tools"
)

type toolSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *HTTPServer) handleListTools(c *gin.Context) {
	infos, err := s.tools.Infos(c.Request.Context())
	if err != nil {
		s.error(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]toolSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, toolSummary{Name: info.Name, Description: info.Desc})
	}
	s.success(c, out)
}

func (s *HTTPServer) handleRunTool(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.tools.Run(c.Request.Context(), c.Param("name"), string(body))
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			s.error(c, http.StatusNotFound, err.Error())
			return
		}
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}
	s.success(c, out.Output)
}
