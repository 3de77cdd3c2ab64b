package models

import "time"

// User represents a marketplace participant. Either side of a booking is a User.
type User struct {
	ID                 string    `bson:"id" json:"id"`
	Username           string    `bson:"username" json:"username"`
	Email              string    `bson:"email" json:"email"`
	FCMToken           string    `bson:"fcm_token,omitempty" json:"-"`
	AskerRating        float64   `bson:"asker_rating" json:"asker_rating"`
	AskerReviewCount   int       `bson:"asker_review_count" json:"asker_review_count"`
	OffererRating      float64   `bson:"offerer_rating" json:"offerer_rating"`
	OffererReviewCount int       `bson:"offerer_review_count" json:"offerer_review_count"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the subset of User shown to the other side of a booking.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public strips private fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
