package model

// Review is a user's rating of a business listing. Response holds the
// business owner's reply and is nil until one is added.
type Review struct {
	ID         int64   `db:"id" json:"id"`
	BusinessID int64   `db:"business_id" json:"businessId"`
	UserID     int64   `db:"user_id" json:"userId"`
	Rating     int     `db:"rating" json:"rating"`
	Comment    string  `db:"comment" json:"comment"`
	Response   *string `db:"response" json:"response"`
}
