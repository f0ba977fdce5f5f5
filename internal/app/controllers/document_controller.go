package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/app/models"
	"github.com/yigit/crackgrid/internal/app/models/dto"
	"github.com/yigit/crackgrid/internal/app/services"
	"github.com/yigit/crackgrid/internal/middleware"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

// DocumentController records document interactions and opens documents
type DocumentController struct {
	catalogService   services.CatalogService
	analyticsTimeout time.Duration
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(catalogService services.CatalogService, analyticsTimeout time.Duration) *DocumentController {
	return &DocumentController{
		catalogService:   catalogService,
		analyticsTimeout: analyticsTimeout,
	}
}

// RecordEvent appends an analytics event
// @Summary Record a document interaction
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.RecordAnalyticsEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid event"
// @Failure 503 {object} dto.ErrorResponse "Data store unavailable"
// @Router /analytics/events [post]
func (c *DocumentController) RecordEvent(ctx *gin.Context) {
	var req dto.RecordAnalyticsEventRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	at := time.Now()
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	err := c.catalogService.RecordAnalyticsEvent(ctx, models.AnalyticsAction(req.Action), req.DocumentID, at)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event recorded"}))
}

// OpenDocument redirects to the document link. The analytics write runs in
// the background and its outcome never changes the response.
// @Summary Open an interview document
// @Tags documents
// @Param id path int true "Document ID"
// @Param action query string false "view or download" Enums(view, download)
// @Success 302 "Redirect to the document"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{id}/open [get]
func (c *DocumentController) OpenDocument(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	action := models.AnalyticsAction(ctx.DefaultQuery("action", string(models.ActionView)))
	if !action.Valid() {
		middleware.HandleBadParam(ctx, "action", "action must be view or download")
		return
	}

	doc, err := c.catalogService.GetDocument(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	go c.recordInBackground(action, doc.ID, time.Now())

	ctx.Redirect(http.StatusFound, doc.QuestionsLink)
}

func (c *DocumentController) recordInBackground(action models.AnalyticsAction, documentID int64, at time.Time) {
	bg, cancel := context.WithTimeout(context.Background(), c.analyticsTimeout)
	defer cancel()

	if err := c.catalogService.RecordAnalyticsEvent(bg, action, documentID, at); err != nil {
		logger.Warn().Err(err).
			Str("action", string(action)).
			Int64("documentID", documentID).
			Msg("Failed to record analytics event")
	}
}
