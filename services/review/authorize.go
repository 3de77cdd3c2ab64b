package review

import (
	"context"
	"fmt"

	"reviewdesk/models"
)

// Action is a capability checked against a booking.
type Action string

// ActionAdd is the capability to leave a review on a booking.
const ActionAdd Action = "add"

// Authorize grants ActionAdd when userID took part in the booking on either side, the
// booking is in a reviewable status and its timeslot is over.
func (s *DefaultReviewService) Authorize(ctx context.Context, action Action, booking *models.Booking, userID string) error {
	if action != ActionAdd {
		return NewAuthorizationError(fmt.Sprintf("unsupported action %q", action))
	}
	if booking == nil {
		return NewAuthorizationError("no booking")
	}
	return s.reviewable(booking, userID)
}

func (s *DefaultReviewService) reviewable(booking *models.Booking, userID string) error {
	if !booking.HasParticipant(userID) {
		return NewAuthorizationError(fmt.Sprintf("user %s is not a participant of booking %s", userID, booking.ID))
	}
	if booking.UserID == booking.ProviderID {
		return NewAuthorizationError(fmt.Sprintf("booking %s has a single participant", booking.ID))
	}
	if !isReviewableStatus(booking.Status) {
		return NewAuthorizationError(fmt.Sprintf("booking %s has status %q", booking.ID, booking.Status))
	}
	end, err := booking.EndTime(s.Location)
	if err != nil {
		return NewAuthorizationError(err.Error())
	}
	if s.Now().Before(end) {
		return NewAuthorizationError(fmt.Sprintf("booking %s is not over yet", booking.ID))
	}
	return nil
}

func isReviewableStatus(status string) bool {
	for _, s := range models.ReviewableStatuses {
		if s == status {
			return true
		}
	}
	return false
}
