package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	userRepo "reviewdesk/database/repository/user"
	"reviewdesk/models"
	"reviewdesk/services/tasks"
	"reviewdesk/services/translation"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the subset of *asynq.Client used to queue notifications.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PushSender is the subset of *messaging.Client used to deliver pushes.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService queues review events and delivers them as FCM pushes.
type NotificationService interface {
	NotifyReviewReceived(ctx context.Context, payload models.ReviewReceivedPayload) error
	DeliverReviewReceived(ctx context.Context, payload models.ReviewReceivedPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	queue      Enqueuer
	sender     PushSender
	users      userRepo.UserRepository
	translator *translation.Translator
	logger     *zap.Logger
}

func NewDefaultNotificationService(
	queue Enqueuer,
	sender PushSender,
	users userRepo.UserRepository,
	translator *translation.Translator,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if queue == nil || users == nil || translator == nil {
		return nil, fmt.Errorf("notification service initialization error: queue, user repository or translator is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		queue:      queue,
		sender:     sender,
		users:      users,
		translator: translator,
		logger:     logger,
	}, nil
}

// NotifyReviewReceived queues the push for the review's recipient.
func (s *DefaultNotificationService) NotifyReviewReceived(ctx context.Context, payload models.ReviewReceivedPayload) error {
	task, opts, err := tasks.NewReviewReceivedTask(payload)
	if err != nil {
		return fmt.Errorf("NotifyReviewReceived: %w", err)
	}
	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("NotifyReviewReceived: failed to enqueue: %w", err)
	}
	s.logger.Debug("Queued review notification", zap.String("taskID", info.ID), zap.String("reviewID", payload.ReviewID))
	return nil
}

// DeliverReviewReceived looks up the recipient's FCM token and sends the push. Recipients
// without a token are skipped.
func (s *DefaultNotificationService) DeliverReviewReceived(ctx context.Context, payload models.ReviewReceivedPayload) error {
	if s.sender == nil {
		return errors.New("DeliverReviewReceived: push sender not configured")
	}
	u, err := s.users.GetByID(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("DeliverReviewReceived: could not load user %s: %w", payload.RecipientID, err)
	}
	if u == nil || u.FCMToken == "" {
		s.logger.Info("Recipient has no FCM token, skipping push", zap.String("userID", payload.RecipientID))
		return nil
	}

	title := s.translator.Trans("review.received.title", translation.DomainReview)
	body := s.translator.Trans("review.received.body", translation.DomainReview,
		payload.AuthorName, payload.ListingTitle, strconv.Itoa(payload.Rating))

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":      tasks.TypeReviewReceived,
			"reviewId":  payload.ReviewID,
			"bookingId": payload.BookingID,
			"role":      "user",
		},
	}

	response, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("DeliverReviewReceived: failed to send FCM message: %w", err)
	}
	s.logger.Info("Review push sent", zap.String("messageID", response), zap.String("userID", payload.RecipientID))
	return nil
}

// HandleReviewReceivedTask is the asynq handler for tasks.TypeReviewReceived.
func (s *DefaultNotificationService) HandleReviewReceivedTask(ctx context.Context, task *asynq.Task) error {
	payload, err := tasks.ParseReviewReceivedTask(task)
	if err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return s.DeliverReviewReceived(ctx, payload)
}
