package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
	"github.com/loranstudio/quotewidget-engine/internal/core/services"
)

type QuoteHandler struct {
	svc *services.QuoteService
}

func NewQuoteHandler(svc *services.QuoteService) *QuoteHandler {
	useQuoteValidators()
	return &QuoteHandler{
		svc: svc,
	}
}

type quoteRequest struct {
	Text   string `json:"text" binding:"required,notblank" example:"Bądź zmianą, którą chcesz widzieć w świecie."`
	Author string `json:"author" binding:"required,notblank" example:"Mahatma Gandhi"`
}

type listQuery struct {
	Search string `form:"q"`
	Limit  int    `form:"limit" binding:"min=0"`
	Offset int    `form:"offset" binding:"min=0"`
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotes := router.Group("/quotes")
	{
		quotes.GET("", h.List)
		quotes.POST("", h.Create)
		quotes.GET("/random", h.Random)
		quotes.GET("/:id", h.Get)
		quotes.PUT("/:id", h.Update)
		quotes.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary List quotes
// @Description Newest first. q filters text and author ignoring case and diacritics.
// @Tags quotes
// @Produce json
// @Param q query string false "Search filter"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.svc.List(c.Request.Context(), query.Search, query.Limit, query.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Quote{}
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := domain.ParseQuoteID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Create godoc
// @Summary Add a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body quoteRequest true "Quote"
// @Success 201 {object} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.svc.Add(c.Request.Context(), req.Text, req.Author)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// Update godoc
// @Summary Edit a quote
// @Description Replaces text and author. Id and date added are kept.
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body quoteRequest true "Quote"
// @Success 200 {object} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, err := domain.ParseQuoteID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.svc.Update(c.Request.Context(), id, req.Text, req.Author)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Delete godoc
// @Summary Delete a quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, err := domain.ParseQuoteID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Random godoc
// @Summary Pick a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} domain.Quote
// @Success 204 "Collection is empty"
// @Failure 500 {object} errorResponse
// @Router /quotes/random [get]
func (h *QuoteHandler) Random(c *gin.Context) {
	quote, err := h.svc.RandomPick(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if quote == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, quote)
}
