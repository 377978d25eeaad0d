package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"business-directory-service/internal/middleware"
	"business-directory-service/internal/model"
	"business-directory-service/internal/service"
)

// ReviewHandler ties the review HTTP surface to the ReviewService.
type ReviewHandler struct {
	reviewSvc *service.ReviewService
}

func NewReviewHandler(rs *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: rs}
}

// CreateReviewDTO is the payload for creating a new review.
type CreateReviewDTO struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// UpdateReviewDTO carries all review fields; the service's field mask
// decides which ones the acting role may actually change.
type UpdateReviewDTO struct {
	Rating   int     `json:"rating"`
	Comment  string  `json:"comment"`
	Response *string `json:"response"`
}

// AddResponseDTO is the payload for the response sub-resource.
type AddResponseDTO struct {
	Response string `json:"response" binding:"required"`
}

// POST /business-listings/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	businessID, identity, ok := h.reviewScope(c)
	if !ok {
		return
	}

	var req CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rev, err := h.reviewSvc.CreateReview(c.Request.Context(), businessID, identity, req.Rating, req.Comment)
	if err != nil {
		h.writeError(c, err, "create review")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"data":    rev,
	})
}

// GET /business-listings/:id/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	businessID, _, ok := h.reviewScope(c)
	if !ok {
		return
	}

	reviews, err := h.reviewSvc.GetReviews(c.Request.Context(), businessID)
	if err != nil {
		h.writeError(c, err, "list reviews")
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

// PUT /business-listings/:id/reviews/:reviewId
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	businessID, identity, ok := h.reviewScope(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found for this business listing"})
		return
	}

	var req UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rev, err := h.reviewSvc.UpdateReview(c.Request.Context(), businessID, reviewID, identity, service.ReviewUpdate{
		Rating:   req.Rating,
		Comment:  req.Comment,
		Response: req.Response,
	})
	if err != nil {
		h.writeError(c, err, "update review")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"data":    rev,
	})
}

// DELETE /business-listings/:id/reviews/:reviewId
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	businessID, identity, ok := h.reviewScope(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found for this business listing"})
		return
	}

	if err := h.reviewSvc.DeleteReview(c.Request.Context(), businessID, reviewID, identity); err != nil {
		h.writeError(c, err, "delete review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// POST /business-listings/:id/reviews/:reviewId/response
func (h *ReviewHandler) AddResponse(c *gin.Context) {
	businessID, _, ok := h.reviewScope(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found for this business listing"})
		return
	}

	var req AddResponseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rev, err := h.reviewSvc.AddResponse(c.Request.Context(), businessID, reviewID, req.Response)
	if err != nil {
		h.writeError(c, err, "add response")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Response added successfully",
		"data":    rev,
	})
}

// reviewScope pulls the listing id and identity every review handler needs.
func (h *ReviewHandler) reviewScope(c *gin.Context) (int64, model.Identity, bool) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return 0, model.Identity{}, false
	}
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return 0, model.Identity{}, false
	}
	return businessID, identity, true
}

func (h *ReviewHandler) writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found for this business listing"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		log.Error().Err(err).Msg(op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
