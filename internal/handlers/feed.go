package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/services"
	"campushub/internal/utils"
)

const feedSize = 20

// FeedHandler publishes the board to crawlers and feed readers.
type FeedHandler struct {
	svc     *services.Services
	siteURL string
	log     *zap.Logger
}

func NewFeedHandler(svc *services.Services, siteURL string, log *zap.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, siteURL: strings.TrimRight(siteURL, "/"), log: log}
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description cdata   `xml:"description"`
	Author      string  `xml:"author"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

// RobotsTxt GET /robots.txt
func (h *FeedHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /
Disallow: /api/

Sitemap: %s/feed.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// RSSFeed GET /feed.xml lists the latest announcements.
func (h *FeedHandler) RSSFeed(c *gin.Context) {
	posts, err := h.svc.Posts.List(c.Request.Context(), "")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if len(posts) > feedSize {
		posts = posts[:feedSize]
	}

	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         "Campus Announcements",
			Link:          h.siteURL,
			Description:   "Announcements, polls and discussion from campus staff",
			Language:      "en",
			LastBuildDate: time.Now().Format(time.RFC1123Z),
		},
	}
	for i := range posts {
		p := &posts[i]
		link := fmt.Sprintf("%s/#post-%s", h.siteURL, p.ID)
		summary := utils.FirstBlocks(string(h.svc.Posts.RenderContent(p)), 3)

		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: cdata{Value: summary},
			Author:      p.Author,
			PubDate:     p.Timestamp.Format(time.RFC1123Z),
			GUID:        rssGUID{Value: link, IsPermaLink: true},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), out...))
}
