package handler

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"crimegpt/internal/service"
)

// Every response carries a success flag, a human-readable message and an
// optional data payload.

func respondOK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// uploadFromHeader buffers one multipart file into a service upload.
func uploadFromHeader(fh *multipart.FileHeader) (*service.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.Upload{Filename: fh.Filename, Content: bytes.NewReader(data)}, nil
}

// uploadsFromForm buffers every file under the given form field.
func uploadsFromForm(form *multipart.Form, field string) ([]service.Upload, error) {
	var uploads []service.Upload
	for _, fh := range form.File[field] {
		u, err := uploadFromHeader(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *u)
	}
	return uploads, nil
}
