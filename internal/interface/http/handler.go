package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitgpt/internal/domain/outfit"
	"github.com/yanqian/fitgpt/internal/domain/stylist"
	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitgpt/pkg/errors"
)

const maxUploadBytes = 8<<20 + 1

// ImageReader serves images kept by the in-process image storage.
type ImageReader interface {
	Get(key string) ([]byte, string, bool)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	wardrobeSvc wardrobe.Service
	outfitSvc   outfit.Service
	stylistSvc  stylist.Service
	images      ImageReader
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler. images may be nil when photos live in
// external object storage.
func NewHandler(wardrobeSvc wardrobe.Service, outfitSvc outfit.Service, stylistSvc stylist.Service, images ImageReader, logger *slog.Logger) *Handler {
	return &Handler{
		wardrobeSvc: wardrobeSvc,
		outfitSvc:   outfitSvc,
		stylistSvc:  stylistSvc,
		images:      images,
		logger:      logger.With("component", "http.handler"),
	}
}

// ListItems returns the active inventory, optionally filtered by season and comfort.
func (h *Handler) ListItems(c *gin.Context) {
	var filter wardrobe.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	items, err := h.wardrobeSvc.ListItems(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem creates a clothing item.
func (h *Handler) AddItem(c *gin.Context) {
	var in wardrobe.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	item, err := h.wardrobeSvc.AddItem(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces the editable fields of an item.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var in wardrobe.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	item, err := h.wardrobeSvc.UpdateItem(c.Request.Context(), id, in)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// ArchiveItem soft deletes an item.
func (h *Handler) ArchiveItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.wardrobeSvc.ArchiveItem(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkWorn records that the item was worn now.
func (h *Handler) MarkWorn(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	item, err := h.wardrobeSvc.MarkWorn(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UploadImage stores the raw request body as the item's photo.
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read image", err))
		return
	}
	mimeType := strings.TrimSpace(strings.Split(c.ContentType(), ";")[0])
	item, err := h.wardrobeSvc.UploadImage(c.Request.Context(), id, data, mimeType)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

// ExplainItem returns why an item suits the user's preferences.
func (h *Handler) ExplainItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	resp, err := h.outfitSvc.ExplainItem(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPreferences returns the stored preferences or the defaults.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.wardrobeSvc.Preferences(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences replaces the stored preferences.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var prefs wardrobe.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	saved, err := h.wardrobeSvc.UpdatePreferences(c.Request.Context(), prefs)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Recommend runs one recommendation cycle for the caller's session.
func (h *Handler) Recommend(c *gin.Context) {
	var req outfit.Request
	// An empty body starts a new session.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.outfitSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOutfits returns saved outfits, newest first.
func (h *Handler) ListOutfits(c *gin.Context) {
	outfits, err := h.wardrobeSvc.SavedOutfits(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"outfits": outfits})
}

// SaveOutfit keeps an outfit the user liked.
func (h *Handler) SaveOutfit(c *gin.Context) {
	var in wardrobe.SaveOutfitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	saved, err := h.wardrobeSvc.SaveOutfit(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Chat answers a stylist conversation turn.
func (h *Handler) Chat(c *gin.Context) {
	var req stylist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.stylistSvc.Chat(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChatStream streams a stylist reply using Server-Sent Events.
func (h *Handler) ChatStream(c *gin.Context) {
	var req stylist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.stylistSvc.StreamChat(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for chunk := range stream {
		payload, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error("marshal chunk failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}
}

// ServeImage returns a photo kept by the in-process image storage.
func (h *Handler) ServeImage(c *gin.Context) {
	if h.images == nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, "image not found", nil))
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, mimeType, ok := h.images.Get(key)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, "image not found", nil))
		return
	}
	c.Data(http.StatusOK, mimeType, data)
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "item id must be a positive integer", err))
		return 0, false
	}
	return id, true
}
