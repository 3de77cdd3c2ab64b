package review

import (
	"context"
	"errors"
	"fmt"

	reviewRepo "reviewdesk/database/repository/review"
	"reviewdesk/models"

	"go.uber.org/zap"
)

// Process validates input, and when it is valid submits the draft: the review is stored,
// the recipient's rating refreshed and a notification queued. Invalid input leaves the
// store untouched and is reported through FormResult.Invalid.
func (s *DefaultReviewService) Process(ctx context.Context, booking *models.Booking, draft *models.Review, input ReviewInput) (*FormResult, error) {
	if !draft.IsDraft() {
		return nil, NewConflictError(fmt.Sprintf("review %s was already submitted", draft.ID))
	}

	if invalid := s.validateInput(&input); invalid != nil {
		return &FormResult{Input: input, Invalid: invalid}, nil
	}

	submitted := *draft
	submitted.Rating = input.Rating
	submitted.Comment = input.Comment
	submitted.Status = models.ReviewStatusSubmitted
	submitted.CreatedAt = s.Now()

	if err := s.Reviews.Create(ctx, &submitted); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicateReview) {
			return nil, NewConflictError("Review already added for this booking by user")
		}
		return nil, fmt.Errorf("Process: %w", err)
	}
	*draft = submitted

	logger := s.Logger.With(zap.String("reviewID", submitted.ID), zap.String("bookingID", booking.ID))
	logger.Info("Review submitted", zap.String("authorID", submitted.AuthorID), zap.Int("rating", submitted.Rating))

	if err := s.refreshRating(ctx, &submitted); err != nil {
		logger.Warn("Failed to refresh recipient rating", zap.Error(err))
	}
	if err := s.notify(ctx, booking, &submitted); err != nil {
		logger.Warn("Failed to queue review notification", zap.Error(err))
	}

	return &FormResult{Input: input, Review: &submitted}, nil
}

func (s *DefaultReviewService) refreshRating(ctx context.Context, r *models.Review) error {
	summary, err := s.Reviews.SummaryForRecipient(ctx, r.RecipientID, r.RecipientRole)
	if err != nil {
		return err
	}
	return s.Users.UpdateRating(ctx, r.RecipientID, r.RecipientRole, summary)
}

func (s *DefaultReviewService) notify(ctx context.Context, booking *models.Booking, r *models.Review) error {
	if s.Notifier == nil {
		return nil
	}
	authorName := r.AuthorID
	if author, err := s.Users.GetByID(ctx, r.AuthorID); err == nil && author != nil && author.Username != "" {
		authorName = author.Username
	}
	return s.Notifier.NotifyReviewReceived(ctx, models.ReviewReceivedPayload{
		ReviewID:     r.ID,
		BookingID:    booking.ID,
		RecipientID:  r.RecipientID,
		AuthorName:   authorName,
		ListingTitle: booking.ListingTitle,
		Rating:       r.Rating,
	})
}
