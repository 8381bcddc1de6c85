package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"timeAgo": timeAgo,
	"add": func(a, b int) int {
		return a + b
	},
	"inc": func(names []string, name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	},
}

// LoadTemplates builds one template set per page, each sharing the layout.
func LoadTemplates() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	for _, page := range []string{"board.html", "error.html"} {
		tmpl, err := template.New(page).Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.Add(page, tmpl.Lookup("layout.html"))
	}
	return r, nil
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
