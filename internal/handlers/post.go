package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

type PostHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewPostHandler(svc *services.Services, log *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

type mediaRequest struct {
	URL     string `json:"url" binding:"omitempty,url"`
	DataURL string `json:"dataUrl" binding:"omitempty,startswith=data:"`
	Name    string `json:"name" binding:"max=255"`
	Type    string `json:"type" binding:"max=100"`
}

type pollRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type postRequest struct {
	Title   string         `json:"title" binding:"required"`
	Content string         `json:"content"`
	Media   []mediaRequest `json:"media" binding:"dive"`
	Poll    *pollRequest   `json:"poll"`
}

func (r postRequest) input() services.PostInput {
	in := services.PostInput{Title: r.Title, Content: r.Content}
	for _, m := range r.Media {
		in.Media = append(in.Media, services.MediaInput{URL: m.URL, DataURL: m.DataURL, Name: m.Name, Type: m.Type})
	}
	if r.Poll != nil {
		in.Poll = &services.PollInput{Question: r.Poll.Question, Options: r.Poll.Options}
	}
	return in
}

// List GET /api/posts?author=
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.svc.Posts.List(c.Request.Context(), c.Query("author"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.svc.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.svc.Posts.Create(c.Request.Context(), middleware.CurrentIdentity(c), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.svc.Posts.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.svc.Posts.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Authors GET /api/authors
func (h *PostHandler) Authors(c *gin.Context) {
	authors, err := h.svc.Posts.Authors(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}
