package service

import (
	"context"
	"errors"
	"fmt"

	"business-directory-service/internal/model"
	"business-directory-service/internal/repository"
)

var (
	ErrListingNotFound = errors.New("business listing not found")
	ErrReviewNotFound  = errors.New("review not found for this business listing")
	ErrForbidden       = errors.New("forbidden")
)

// fieldMask lists the review fields a role is allowed to overwrite.
// Fields outside the mask keep their stored values even when the payload
// includes them.
type fieldMask struct {
	Comment  bool
	Rating   bool
	Response bool
}

var updateMasks = map[model.Role]fieldMask{
	model.RoleBusinessOwner: {Response: true},
	model.RoleUser:          {Comment: true, Rating: true},
	model.RoleAdmin:         {Comment: true, Rating: true, Response: true},
}

// ReviewUpdate carries the submitted field values for an update request.
type ReviewUpdate struct {
	Rating   int
	Comment  string
	Response *string
}

// ReviewService contains the review lifecycle logic: creation, the per-role
// field-update policy, and deletion.
type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	listingRepo *repository.ListingRepository
}

func NewReviewService(
	rr *repository.ReviewRepository,
	lr *repository.ListingRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  rr,
		listingRepo: lr,
	}
}

// CreateReview persists a new review authored by the acting identity. The
// response field starts empty regardless of payload.
func (s *ReviewService) CreateReview(
	ctx context.Context,
	businessID int64,
	identity model.Identity,
	rating int,
	comment string,
) (*model.Review, error) {
	exists, err := s.listingRepo.Exists(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.CreateReview: checking listing exists: %w", err)
	}
	if !exists {
		return nil, ErrListingNotFound
	}

	rev := &model.Review{
		BusinessID: businessID,
		UserID:     identity.UserID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Insert(ctx, rev); err != nil {
		return nil, fmt.Errorf("ReviewService.CreateReview: insert: %w", err)
	}
	return rev, nil
}

// GetReviews returns all reviews for the listing. An existing listing with
// no reviews yields an empty slice, not an error.
func (s *ReviewService) GetReviews(ctx context.Context, businessID int64) ([]model.Review, error) {
	exists, err := s.listingRepo.Exists(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.GetReviews: checking listing exists: %w", err)
	}
	if !exists {
		return nil, ErrListingNotFound
	}

	reviews, err := s.reviewRepo.FindByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("ReviewService.GetReviews: find by business: %w", err)
	}
	return reviews, nil
}

// UpdateReview applies the submitted values through the acting role's field
// mask. role=user must own the review; businessOwner may only set the
// response; admin overwrites everything.
func (s *ReviewService) UpdateReview(
	ctx context.Context,
	businessID, reviewID int64,
	identity model.Identity,
	in ReviewUpdate,
) (*model.Review, error) {
	mask, ok := updateMasks[identity.Role]
	if !ok {
		return nil, ErrForbidden
	}

	rev, err := s.reviewRepo.Mutate(ctx, businessID, reviewID, func(rev *model.Review) error {
		if identity.Role == model.RoleUser && identity.UserID != rev.UserID {
			return ErrForbidden
		}
		applyMask(rev, in, mask)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		if errors.Is(err, ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("ReviewService.UpdateReview: %w", err)
	}
	return rev, nil
}

// DeleteReview removes the review for admin, removes the caller's own
// review for role=user, and clears only the response for businessOwner.
func (s *ReviewService) DeleteReview(
	ctx context.Context,
	businessID, reviewID int64,
	identity model.Identity,
) error {
	switch identity.Role {
	case model.RoleAdmin:
		err := s.reviewRepo.Delete(ctx, businessID, reviewID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("ReviewService.DeleteReview: %w", err)
		}
		return nil

	case model.RoleUser:
		rev, err := s.reviewRepo.GetInBusiness(ctx, businessID, reviewID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("ReviewService.DeleteReview: %w", err)
		}
		if rev.UserID != identity.UserID {
			return ErrForbidden
		}
		err = s.reviewRepo.Delete(ctx, businessID, reviewID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("ReviewService.DeleteReview: %w", err)
		}
		return nil

	case model.RoleBusinessOwner:
		_, err := s.reviewRepo.Mutate(ctx, businessID, reviewID, func(rev *model.Review) error {
			rev.Response = nil
			return nil
		})
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		if err != nil {
			return fmt.Errorf("ReviewService.DeleteReview: %w", err)
		}
		return nil

	default:
		return ErrForbidden
	}
}

// AddResponse sets the response text on a review. Role gating happens at
// the route layer; any role that reaches here may respond.
func (s *ReviewService) AddResponse(
	ctx context.Context,
	businessID, reviewID int64,
	response string,
) (*model.Review, error) {
	rev, err := s.reviewRepo.Mutate(ctx, businessID, reviewID, func(rev *model.Review) error {
		rev.Response = &response
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("ReviewService.AddResponse: %w", err)
	}
	return rev, nil
}

func applyMask(rev *model.Review, in ReviewUpdate, mask fieldMask) {
	if mask.Comment {
		rev.Comment = in.Comment
	}
	if mask.Rating {
		rev.Rating = in.Rating
	}
	if mask.Response {
		rev.Response = in.Response
	}
}
