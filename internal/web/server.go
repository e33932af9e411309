// Package web serves the text desk form to a local browser. The page and the
// JSON API drive the same form controller as the terminal client.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/dmitrijs2005/textdesk/internal/client/export"
	"github.com/dmitrijs2005/textdesk/internal/client/form"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/logging"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Server struct {
	form   *form.Controller
	saver  export.Saver
	logger logging.Logger
	tmpl   *template.Template
}

// PageView is what the index template renders.
type PageView struct {
	models.View
	Languages []models.Language
	ResultSrc template.URL
	CanExport bool
}

// NewServer parses the embedded templates. saver may be nil to disable export.
func NewServer(fc *form.Controller, saver export.Saver, logger logging.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Server{
		form:   fc,
		saver:  saver,
		logger: logger.With("module", "web"),
		tmpl:   tmpl,
	}, nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(s.tmpl)

	r.GET("/", s.index)

	api := r.Group("/api")
	api.GET("/state", s.state)
	api.PUT("/fields/prompt", s.setPrompt)
	api.PUT("/fields/editor", s.setEditor)
	api.PUT("/languages", s.setLanguages)
	api.POST("/keydown", s.keyDown)
	api.POST("/generate", s.generate)
	api.POST("/translate", s.translate)
	api.POST("/image", s.selectImage)
	api.PUT("/resize/params", s.setResizeParams)
	api.POST("/resize", s.resize)
	api.POST("/resize/export", s.exportResult)
	api.POST("/reset", s.reset)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) pageView() PageView {
	v := s.form.View()
	return PageView{
		View:      v,
		Languages: models.Languages(),
		// The result is validated base64 behind a fixed JPEG prefix.
		ResultSrc: template.URL(v.ResultDataURL()),
		CanExport: s.saver != nil,
	}
}
