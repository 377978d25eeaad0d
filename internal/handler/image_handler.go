package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"business-directory-service/internal/repository"
)

// ImageHandler serves listing image upload and download backed by GridFS.
type ImageHandler struct {
	Repo        *repository.ImageRepository
	ListingRepo *repository.ListingRepository
}

func NewImageHandler(repo *repository.ImageRepository, listingRepo *repository.ListingRepository) *ImageHandler {
	return &ImageHandler{Repo: repo, ListingRepo: listingRepo}
}

// POST /business-listings/:id/images
func (h *ImageHandler) UploadImage(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	exists, err := h.ListingRepo.Exists(c.Request.Context(), listingID)
	if err != nil {
		log.Error().Err(err).Int64("listing_id", listingID).Msg("check listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("open upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("listing_%d_%s", listingID, fileHeader.Filename)
	imageID, err := h.Repo.Upload(file, filename)
	if err != nil {
		log.Error().Err(err).Int64("listing_id", listingID).Msg("upload image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := h.ListingRepo.AppendImage(c.Request.Context(), listingID, imageID); err != nil {
		log.Error().Err(err).Int64("listing_id", listingID).Msg("record image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    gin.H{"imageId": imageID},
	})
}

// GET /business-listings/:id/images/:imageId
func (h *ImageHandler) DownloadImage(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}

	listing, err := h.ListingRepo.GetByID(c.Request.Context(), listingID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business listing not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("listing_id", listingID).Msg("get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	imageID := c.Param("imageId")
	if !slices.Contains(listing.Images, imageID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found for this business listing"})
		return
	}

	data, err := h.Repo.Download(imageID)
	if err != nil {
		log.Error().Err(err).Str("image_id", imageID).Msg("download image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}
