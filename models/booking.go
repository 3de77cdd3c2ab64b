package models

import (
	"fmt"
	"time"
)

// Booking statuses that make a booking eligible for review.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusPaid      = "Paid"
	BookingStatusCompleted = "Completed"
)

// ReviewableStatuses lists the booking statuses a review may be left for.
var ReviewableStatuses = []string{BookingStatusConfirmed, BookingStatusPaid, BookingStatusCompleted}

// Booking represents a confirmed booking record. Bookings are owned by the booking
// subsystem and only read here.
type Booking struct {
	ID           string    `bson:"id" json:"id"`                       // Unique booking identifier (e.g., UUID)
	ListingID    string    `bson:"listing_id" json:"listing_id"`       // Listing the booking was made on
	ListingTitle string    `bson:"listing_title" json:"listing_title"` // Denormalized listing title
	ProviderID   string    `bson:"provider_id" json:"provider_id"`     // Listing owner (offerer side)
	UserID       string    `bson:"user_id" json:"user_id"`             // User who made the booking (asker side)
	Date         string    `bson:"date" json:"date"`                   // Booking date in "YYYY-MM-DD" format
	Start        int       `bson:"start" json:"start"`                 // Booking start time (minutes from midnight)
	End          int       `bson:"end" json:"end"`                     // Booking end time (minutes from midnight)
	Status       string    `bson:"status" json:"status"`               // e.g., "Confirmed", "Completed"
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`       // Timestamp when booking was created
}

// EndTime returns the moment the booked timeslot ends, in loc.
func (b *Booking) EndTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", b.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking date %q: %w", b.Date, err)
	}
	return day.Add(time.Duration(b.End) * time.Minute), nil
}

// HasParticipant reports whether userID is either side of the booking.
func (b *Booking) HasParticipant(userID string) bool {
	return userID != "" && (b.UserID == userID || b.ProviderID == userID)
}

// RoleOf returns the side userID plays on the booking, or "" when not a participant.
func (b *Booking) RoleOf(userID string) Role {
	switch userID {
	case "":
		return ""
	case b.UserID:
		return RoleAsker
	case b.ProviderID:
		return RoleOfferer
	}
	return ""
}

// Counterpart returns the participant on the other side of role.
func (b *Booking) Counterpart(role Role) string {
	if role == RoleOfferer {
		return b.UserID
	}
	return b.ProviderID
}
