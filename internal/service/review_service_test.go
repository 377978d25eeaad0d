package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-directory-service/internal/model"
	"business-directory-service/internal/repository"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func newTestService(t *testing.T) (*ReviewService, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewListingRepository(db),
	), mock
}

var reviewColumns = []string{"id", "business_id", "user_id", "rating", "comment", "response"}

// expectMutate wires the transaction Mutate runs: lock the row, write the
// mutable fields back, commit.
func expectMutate(mock sqlmock.Sqlmock, stored model.Review) {
	var response interface{}
	if stored.Response != nil {
		response = *stored.Response
	}
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(stored.ID, stored.BusinessID).
		WillReturnRows(sqlmock.NewRows(reviewColumns).
			AddRow(stored.ID, stored.BusinessID, stored.UserID, stored.Rating, stored.Comment, response))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviews SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func strPtr(s string) *string { return &s }

func TestUpdateReviewFieldMask(t *testing.T) {
	stored := model.Review{
		ID:         10,
		BusinessID: 1,
		UserID:     7,
		Rating:     5,
		Comment:    "great",
		Response:   nil,
	}
	submitted := ReviewUpdate{
		Rating:   1,
		Comment:  "edited",
		Response: strPtr("thanks"),
	}

	tests := []struct {
		name         string
		identity     model.Identity
		wantRating   int
		wantComment  string
		wantResponse *string
	}{
		{
			name:         "businessOwner overwrites only response",
			identity:     model.Identity{UserID: 99, Role: model.RoleBusinessOwner},
			wantRating:   5,
			wantComment:  "great",
			wantResponse: strPtr("thanks"),
		},
		{
			name:         "user overwrites only comment and rating",
			identity:     model.Identity{UserID: 7, Role: model.RoleUser},
			wantRating:   1,
			wantComment:  "edited",
			wantResponse: nil,
		},
		{
			name:         "admin overwrites all fields",
			identity:     model.Identity{UserID: 99, Role: model.RoleAdmin},
			wantRating:   1,
			wantComment:  "edited",
			wantResponse: strPtr("thanks"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestService(t)
			expectMutate(mock, stored)

			rev, err := svc.UpdateReview(context.Background(), stored.BusinessID, stored.ID, tt.identity, submitted)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRating, rev.Rating)
			assert.Equal(t, tt.wantComment, rev.Comment)
			assert.Equal(t, tt.wantResponse, rev.Response)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	stored := model.Review{ID: 10, BusinessID: 1, UserID: 7, Rating: 5, Comment: "great"}

	svc, mock := newTestService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(stored.ID, stored.BusinessID).
		WillReturnRows(sqlmock.NewRows(reviewColumns).
			AddRow(stored.ID, stored.BusinessID, stored.UserID, stored.Rating, stored.Comment, nil))
	mock.ExpectRollback()

	// Acting user does not own the review.
	identity := model.Identity{UserID: 8, Role: model.RoleUser}
	_, err := svc.UpdateReview(context.Background(), stored.BusinessID, stored.ID, identity, ReviewUpdate{
		Rating: 1, Comment: "hijacked",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReviewNotFound(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(99), int64(1)).
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	mock.ExpectRollback()

	identity := model.Identity{UserID: 1, Role: model.RoleAdmin}
	_, err := svc.UpdateReview(context.Background(), 1, 99, identity, ReviewUpdate{})
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestCreateReview(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM business_listings")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(int64(1), int64(7), 5, "great", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	identity := model.Identity{UserID: 7, Role: model.RoleUser}
	rev, err := svc.CreateReview(context.Background(), 1, identity, 5, "great")
	require.NoError(t, err)

	assert.Equal(t, int64(10), rev.ID)
	assert.Equal(t, int64(7), rev.UserID)
	assert.Equal(t, int64(1), rev.BusinessID)
	assert.Nil(t, rev.Response)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewListingMissing(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM business_listings")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	identity := model.Identity{UserID: 7, Role: model.RoleUser}
	_, err := svc.CreateReview(context.Background(), 5, identity, 5, "great")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestGetReviewsEmptyListing(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM business_listings")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(reviewColumns))

	reviews, err := svc.GetReviews(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestDeleteReview(t *testing.T) {
	stored := model.Review{ID: 10, BusinessID: 1, UserID: 7, Rating: 5, Comment: "great"}

	t.Run("admin deletes any review", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews")).
			WithArgs(stored.ID, stored.BusinessID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		identity := model.Identity{UserID: 99, Role: model.RoleAdmin}
		err := svc.DeleteReview(context.Background(), stored.BusinessID, stored.ID, identity)
		assert.NoError(t, err)
	})

	t.Run("user deletes own review", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).
			WithArgs(stored.ID, stored.BusinessID).
			WillReturnRows(sqlmock.NewRows(reviewColumns).
				AddRow(stored.ID, stored.BusinessID, stored.UserID, stored.Rating, stored.Comment, nil))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews")).
			WithArgs(stored.ID, stored.BusinessID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		identity := model.Identity{UserID: 7, Role: model.RoleUser}
		err := svc.DeleteReview(context.Background(), stored.BusinessID, stored.ID, identity)
		assert.NoError(t, err)
	})

	t.Run("user cannot delete another user's review", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).
			WithArgs(stored.ID, stored.BusinessID).
			WillReturnRows(sqlmock.NewRows(reviewColumns).
				AddRow(stored.ID, stored.BusinessID, stored.UserID, stored.Rating, stored.Comment, nil))

		identity := model.Identity{UserID: 8, Role: model.RoleUser}
		err := svc.DeleteReview(context.Background(), stored.BusinessID, stored.ID, identity)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("businessOwner clears only the response", func(t *testing.T) {
		svc, mock := newTestService(t)
		withResponse := stored
		withResponse.Response = strPtr("thanks")
		expectMutate(mock, withResponse)

		identity := model.Identity{UserID: 99, Role: model.RoleBusinessOwner}
		err := svc.DeleteReview(context.Background(), stored.BusinessID, stored.ID, identity)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing review", func(t *testing.T) {
		svc, mock := newTestService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews")).
			WithArgs(int64(99), stored.BusinessID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		identity := model.Identity{UserID: 99, Role: model.RoleAdmin}
		err := svc.DeleteReview(context.Background(), stored.BusinessID, 99, identity)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestAddResponse(t *testing.T) {
	stored := model.Review{ID: 10, BusinessID: 1, UserID: 7, Rating: 5, Comment: "great"}

	svc, mock := newTestService(t)
	expectMutate(mock, stored)

	rev, err := svc.AddResponse(context.Background(), stored.BusinessID, stored.ID, "thank you")
	require.NoError(t, err)
	require.NotNil(t, rev.Response)
	assert.Equal(t, "thank you", *rev.Response)
	assert.Equal(t, "great", rev.Comment)
	assert.Equal(t, 5, rev.Rating)
}
