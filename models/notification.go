package models

// ReviewReceivedPayload is queued when a review is submitted so the recipient can be notified.
type ReviewReceivedPayload struct {
	ReviewID     string `json:"reviewId"`
	BookingID    string `json:"bookingId"`
	RecipientID  string `json:"recipientId"`
	AuthorName   string `json:"authorName"`
	ListingTitle string `json:"listingTitle"`
	Rating       int    `json:"rating"`
}
