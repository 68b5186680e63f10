package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
)

type FileHandler struct {
	storage contract.IFileStorage
}

func NewFileHandler(storage contract.IFileStorage) *FileHandler {
	return &FileHandler{storage: storage}
}

// ServeFile streams a stored upload.
func (h *FileHandler) ServeFile(c *gin.Context) {
	rc, info, err := h.storage.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			ErrorHandler(c, http.StatusNotFound, "file not found")
			return
		}
		RespondError(c, err)
		return
	}
	defer rc.Close()

	headers := map[string]string{
		"Cache-Control":       "public, max-age=86400",
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", info.Filename),
	}
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, headers)
}

// readUpload pulls the "file" form field, capped at maxBytes.
func readUpload(c *gin.Context, maxBytes int64) (multipart.File, *multipart.FileHeader, bool) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorHandler(c, http.StatusRequestEntityTooLarge, "file too large")
			return nil, nil, false
		}
		ErrorHandler(c, http.StatusBadRequest, "a file is required in the \"file\" field")
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "failed to read upload")
		return nil, nil, false
	}
	return file, header, true
}
