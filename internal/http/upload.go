package http

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cookshare/internal/storage"
)

type uploadImageRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}

// uploadImage accepts a base64-encoded image (bare or as a data URL),
// stores it under a fresh key, and returns a presigned URL for it.
func (h *Handler) uploadImage(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		respondErr(c, http.StatusInternalServerError, "storage service not configured")
		return
	}

	var req uploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "image_data is required")
		return
	}

	payload := req.ImageData
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "image_data is not valid base64")
		return
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtension(contentType)
	if !ok {
		respondErr(c, http.StatusBadRequest, fmt.Sprintf("unsupported image type %s", contentType))
		return
	}

	key := fmt.Sprintf("%s/%s.%s", strings.Trim(h.keyPrefix, "/"), uuid.NewString(), ext)
	if _, err := h.storage.UploadImage(c.Request.Context(), data, storage.UploadOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: contentType,
	}); err != nil {
		h.respondServiceErr(c, err)
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, 24*time.Hour)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"url": url, "key": key})
}

func (h *Handler) listImages(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		respondErr(c, http.StatusInternalServerError, "storage service not configured")
		return
	}

	prefix := c.DefaultQuery("prefix", strings.Trim(h.keyPrefix, "/"))
	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, prefix)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	respondOK(c, http.StatusOK, gin.H{"objects": resp})
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func imageExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return "jpg", true
	case "image/png":
		return "png", true
	case "image/gif":
		return "gif", true
	case "image/webp":
		return "webp", true
	default:
		return "", false
	}
}
