// Package web serves the kiosk display page. The page is a single embedded
// template that polls /api/state and rearranges itself per the derived modes.
package web

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type Handler struct {
	pollSeconds int
}

func NewHandler(pollSeconds int) *Handler {
	if pollSeconds <= 0 {
		pollSeconds = 10
	}
	return &Handler{pollSeconds: pollSeconds}
}

func (h *Handler) Index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	err := indexTemplate.Execute(c.Writer, gin.H{"PollSeconds": h.pollSeconds})
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
