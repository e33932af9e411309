package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/textdesk/internal/client/export"
	"github.com/dmitrijs2005/textdesk/internal/client/form"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/filex"
	"github.com/gin-gonic/gin"
)

type fieldRequest struct {
	Value *string `json:"value" binding:"required"`
}

type languagesRequest struct {
	Source models.Language `json:"src_lang" binding:"omitempty,oneof=te_IN en_XX"`
	Target models.Language `json:"tgt_lang" binding:"omitempty,oneof=te_IN en_XX"`
}

// Value carries the prompt as the browser saw it when the key went down, so
// Enter never races a pending field update.
type keyRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value *string `json:"value"`
}

type resizeParamsRequest struct {
	Ratio   *string `json:"ratio"`
	Quality *string `json:"quality"`
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", s.pageView())
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) setPrompt(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.form.SetPrompt(c.Request.Context(), *req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) setEditor(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.form.SetEditor(c.Request.Context(), *req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) setLanguages(c *gin.Context) {
	var req languagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Source != "" {
		_ = s.form.SetSourceLanguage(req.Source)
	}
	if req.Target != "" {
		_ = s.form.SetTargetLanguage(req.Target)
	}
	c.JSON(http.StatusOK, s.form.View())
}

// submitContext detaches an endpoint submission from the browser request:
// once issued, a request runs to completion even if the page goes away.
func submitContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// keyDown, generate and translate answer 200 even when the endpoint failed:
// the failure is part of the returned state (the output field).
func (s *Server) keyDown(c *gin.Context) {
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := submitContext(c)
	if req.Value != nil {
		if err := s.form.SetPrompt(ctx, *req.Value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
			return
		}
	}
	_ = s.form.KeyDown(ctx, req.Key)
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) generate(c *gin.Context) {
	_ = s.form.Generate(submitContext(c))
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) translate(c *gin.Context) {
	_ = s.form.Translate(submitContext(c))
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) selectImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = filex.DetectMIME(fh.Filename, data)
	}
	s.form.SelectFile(&models.ImageFile{Name: fh.Filename, MIME: mime, Data: data})
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) setResizeParams(c *gin.Context) {
	var req resizeParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Ratio != nil {
		s.form.SetRatio(*req.Ratio)
	}
	if req.Quality != nil {
		s.form.SetQuality(*req.Quality)
	}
	c.JSON(http.StatusOK, s.form.View())
}

func (s *Server) resize(c *gin.Context) {
	err := s.form.Resize(submitContext(c))
	switch {
	case errors.Is(err, form.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "resize failed"})
	default:
		c.JSON(http.StatusOK, s.form.View())
	}
}

func (s *Server) exportResult(c *gin.Context) {
	if s.saver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export is not configured"})
		return
	}

	ctx := c.Request.Context()
	loc, err := export.Result(ctx, s.saver, s.form.View())
	switch {
	case errors.Is(err, export.ErrNoResult):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		s.logger.Error(ctx, "export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	default:
		s.logger.Info(ctx, "result exported", "location", loc)
		c.JSON(http.StatusOK, gin.H{"location": loc})
	}
}

func (s *Server) reset(c *gin.Context) {
	if err := s.form.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, s.form.View())
}
