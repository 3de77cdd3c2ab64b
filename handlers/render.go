package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templateFS embed.FS

// render answers with HTML or JSON depending on the Accept header. Both carry the same data.
func render(c *gin.Context, code int, name string, data gin.H) {
	c.Negotiate(code, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: name,
		Data:     data,
	})
}

// LoadTemplates parses the embedded review pages into the engine's HTML renderer.
func LoadTemplates(r *gin.Engine, translator MessageTranslator) error {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"trans": translator.Trans,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"ratings": func() []int {
			return []int{1, 2, 3, 4, 5}
		},
		"stars": func(rating int) string {
			out := make([]rune, 0, 5)
			for i := 1; i <= 5; i++ {
				if i <= rating {
					out = append(out, '★')
				} else {
					out = append(out, '☆')
				}
			}
			return string(out)
		},
	}).ParseFS(templateFS, "templates/*/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}
