package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"business-directory-service/internal/model"
	"business-directory-service/internal/repository"
)

// ListingHandler serves the business-listing CRUD surface. Role gating
// happens in the route table; handlers only deal with payloads and the
// store.
type ListingHandler struct {
	Repo *repository.ListingRepository
}

func NewListingHandler(repo *repository.ListingRepository) *ListingHandler {
	return &ListingHandler{Repo: repo}
}

// ListingRequestDTO is the payload for creating or updating a listing.
type ListingRequestDTO struct {
	Name          string   `json:"name" binding:"required"`
	BusinessPhone string   `json:"businessPhone" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Images        []string `json:"images"`
}

// POST /business-listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req ListingRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	listing := &model.BusinessListing{
		Name:          req.Name,
		BusinessPhone: req.BusinessPhone,
		City:          req.City,
		Address:       req.Address,
		Images:        req.Images,
	}
	if err := h.Repo.Create(c.Request.Context(), listing); err != nil {
		log.Error().Err(err).Msg("create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Business listing created successfully",
		"data":    listing,
	})
}

// GET /business-listings
func (h *ListingHandler) GetListings(c *gin.Context) {
	listings, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if listings == nil {
		listings = []model.BusinessListing{}
	}
	c.JSON(http.StatusOK, gin.H{"data": listings})
}

// GET /business-listings/:id
func (h *ListingHandler) GetListingByID(c *gin.Context) {
	id, err := listingID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	listing, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("listing_id", id).Msg("get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": listing})
}

// PUT /business-listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id, err := listingID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	var req ListingRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	listing := &model.BusinessListing{
		ID:            id,
		Name:          req.Name,
		BusinessPhone: req.BusinessPhone,
		City:          req.City,
		Address:       req.Address,
		Images:        req.Images,
	}
	err = h.Repo.Update(c.Request.Context(), listing)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("listing_id", id).Msg("update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Business listing updated successfully",
		"data":    listing,
	})
}

// DELETE /business-listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, err := listingID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	err = h.Repo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("listing_id", id).Msg("delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business listing deleted successfully"})
}

func listingID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
