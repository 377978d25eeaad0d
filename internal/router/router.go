package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"business-directory-service/internal/handler"
	"business-directory-service/internal/middleware"
	"business-directory-service/internal/model"
)

// Handlers groups everything the route table dispatches to.
type Handlers struct {
	Listings *handler.ListingHandler
	Reviews  *handler.ReviewHandler
	Images   *handler.ImageHandler
}

// RoutePolicy declares one route together with the roles allowed to call
// it. Declaring the whole surface as data keeps the role coverage
// inspectable in one place instead of scattered across closures.
type RoutePolicy struct {
	Method string
	Path   string
	Roles  []model.Role
	Handle gin.HandlerFunc
}

var (
	allRoles   = []model.Role{model.RoleBusinessOwner, model.RoleAdmin, model.RoleUser}
	ownerAdmin = []model.Role{model.RoleBusinessOwner, model.RoleAdmin}
	adminOnly  = []model.Role{model.RoleAdmin}
)

// Policies builds the route table. reviewCreators is configurable because
// two revisions of the policy disagree on who may author a review.
func Policies(h Handlers, reviewCreators []model.Role) []RoutePolicy {
	return []RoutePolicy{
		{http.MethodPost, "/business-listings", ownerAdmin, h.Listings.CreateListing},
		{http.MethodGet, "/business-listings", allRoles, h.Listings.GetListings},
		{http.MethodGet, "/business-listings/:id", allRoles, h.Listings.GetListingByID},
		{http.MethodPut, "/business-listings/:id", ownerAdmin, h.Listings.UpdateListing},
		{http.MethodDelete, "/business-listings/:id", adminOnly, h.Listings.DeleteListing},

		{http.MethodPost, "/business-listings/:id/reviews", reviewCreators, h.Reviews.CreateReview},
		{http.MethodGet, "/business-listings/:id/reviews", allRoles, h.Reviews.GetReviews},
		{http.MethodPut, "/business-listings/:id/reviews/:reviewId", allRoles, h.Reviews.UpdateReview}, // field-masked per role inside the service
		{http.MethodDelete, "/business-listings/:id/reviews/:reviewId", allRoles, h.Reviews.DeleteReview},
		{http.MethodPost, "/business-listings/:id/reviews/:reviewId/response", ownerAdmin, h.Reviews.AddResponse},

		{http.MethodPost, "/business-listings/:id/images", ownerAdmin, h.Images.UploadImage},
		{http.MethodGet, "/business-listings/:id/images/:imageId", allRoles, h.Images.DownloadImage},
	}
}

// New builds the engine with the full authenticated surface registered.
func New(secret []byte, h Handlers, reviewCreators []model.Role) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	auth := middleware.Authenticate(secret)
	for _, p := range Policies(h, reviewCreators) {
		r.Handle(p.Method, p.Path, auth, middleware.RequireRoles(p.Roles...), p.Handle)
	}
	return r
}
