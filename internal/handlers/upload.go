package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxUploadSize caps a single attachment.
const MaxUploadSize = 5 << 20

// maxUploadBody leaves room for the multipart framing around the file.
const maxUploadBody = MaxUploadSize + 1<<10

// UploadHandler turns an uploaded file into an inline attachment that can be
// sent back as a media entry of a post.
type UploadHandler struct {
	log *zap.Logger
}

func NewUploadHandler(log *zap.Logger) *UploadHandler {
	return &UploadHandler{log: log}
}

// Upload POST /api/uploads (multipart field "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	if c.Request.ContentLength > maxUploadBody {
		tooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose a file to upload."})
		return
	}
	defer file.Close()

	if header.Size > MaxUploadSize {
		tooLarge(c)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		respondError(c, h.log, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(data) > MaxUploadSize {
		tooLarge(c)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename))); byExt != "" {
			contentType = byExt
		} else {
			contentType = http.DetectContentType(data)
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    filepath.Base(header.Filename),
		"type":    contentType,
		"dataUrl": "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
}

func tooLarge(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Attachments must be at most %d MB.", MaxUploadSize>>20)})
}
