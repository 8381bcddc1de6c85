package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/services"
)

type BoardHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewBoardHandler(svc *services.Services, log *zap.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, log: log}
}

// boardPost is one announcement card.
type boardPost struct {
	Post     models.Post
	HTML     template.HTML
	Comments []models.Comment
	Poll     *services.PollResults
}

// Index GET / renders the announcement board.
func (h *BoardHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.CurrentIdentity(c)
	author := c.Query("author")

	marquees, err := h.svc.Marquees.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	posts, err := h.svc.Posts.List(ctx, author)
	if err != nil {
		h.fail(c, err)
		return
	}
	authors, err := h.svc.Posts.Authors(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	cards := make([]boardPost, 0, len(posts))
	for i := range posts {
		card := boardPost{Post: posts[i], HTML: h.svc.Posts.RenderContent(&posts[i])}
		if card.Comments, err = h.svc.Comments.ListForPost(ctx, posts[i].ID); err != nil {
			h.fail(c, err)
			return
		}
		if card.Poll, err = h.svc.Polls.Results(ctx, id.ClientID, posts[i].ID); err != nil {
			h.fail(c, err)
			return
		}
		cards = append(cards, card)
	}

	Render(c, http.StatusOK, "board.html", gin.H{
		"Title":    "Campus Announcements",
		"Marquees": marquees,
		"Posts":    cards,
		"Authors":  authors,
		"Author":   author,
	})
}

func (h *BoardHandler) fail(c *gin.Context, err error) {
	h.log.Error("Failed to load board", zap.Error(err))
	Render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title": "Something went wrong",
		"Error": "The announcement board could not be loaded. Please try again.",
	})
}
