package utils

import (
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceImages adds lazy loading and a no-referrer policy to every <img> in
// an already sanitized HTML fragment.
func EnhanceImages(htmlStr string) template.HTML {
	if htmlStr == "" || !strings.Contains(htmlStr, "<img") {
		return template.HTML(htmlStr)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	// goquery wraps fragments in html/body
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out)
}

// FirstBlocks keeps the first maxBlocks top-level elements of an HTML
// fragment, for feed summaries.
func FirstBlocks(htmlStr string, maxBlocks int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	var parts []string
	doc.Find("body").Children().EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxBlocks {
			return false
		}
		if block, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, block)
		}
		return true
	})
	if len(parts) == 0 {
		return htmlStr
	}
	return strings.Join(parts, "\n")
}
