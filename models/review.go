package models

import "time"

// Review statuses.
const (
	ReviewStatusDraft     = "draft"
	ReviewStatusSubmitted = "submitted"
)

// Review is a rating and comment one booking participant leaves about the other.
type Review struct {
	ID            string    `bson:"id" json:"id"`
	BookingID     string    `bson:"booking_id" json:"booking_id"`
	AuthorID      string    `bson:"author_id" json:"author_id"`
	AuthorRole    Role      `bson:"author_role" json:"author_role"`
	RecipientID   string    `bson:"recipient_id" json:"recipient_id"`
	RecipientRole Role      `bson:"recipient_role" json:"recipient_role"`
	Rating        int       `bson:"rating" json:"rating"`
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// IsDraft reports whether the review has not been submitted yet.
func (r *Review) IsDraft() bool {
	return r.Status == ReviewStatusDraft
}

// RatingSummary is the aggregate of reviews a user received in one role.
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}
