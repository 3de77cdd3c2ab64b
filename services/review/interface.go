package review

import (
	"context"
	"errors"
	"time"

	bookingRepo "reviewdesk/database/repository/booking"
	reviewRepo "reviewdesk/database/repository/review"
	userRepo "reviewdesk/database/repository/user"
	"reviewdesk/models"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ReviewService covers the review dashboard: drafting and submitting a review for a
// booking, and listing reviews made or received.
type ReviewService interface {
	// GetBooking resolves a booking or fails with NotFoundError.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// Authorize checks that userID may perform action on booking.
	Authorize(ctx context.Context, action Action, booking *models.Booking, userID string) error
	// CreateDraft returns an unsaved review of booking by userID, or ConflictError when
	// userID already reviewed it.
	CreateDraft(ctx context.Context, booking *models.Booking, userID string) (*models.Review, error)
	// Recipient returns the public profile of the user a draft is addressed to.
	Recipient(ctx context.Context, draft *models.Review) (*models.PublicUser, error)
	// Process validates input against draft and persists it on success.
	Process(ctx context.Context, booking *models.Booking, draft *models.Review, input ReviewInput) (*FormResult, error)
	// GetUserReviews lists reviews written (authored) or received by userID acting as role.
	GetUserReviews(ctx context.Context, role models.Role, userID string, authored bool) ([]models.Review, error)
	// GetUnreviewedBookings lists the bookings userID acting as role may still review.
	GetUnreviewedBookings(ctx context.Context, role models.Role, userID string) ([]models.Booking, error)
}

// Notifier delivers the "review received" event to the recipient out of band.
type Notifier interface {
	NotifyReviewReceived(ctx context.Context, payload models.ReviewReceivedPayload) error
}

// Translator resolves user-facing messages.
type Translator interface {
	Trans(key, domain string, params ...string) string
	For(locale string) ut.Translator
	RegisterValidator(v *validator.Validate) error
	DefaultLocale() string
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Bookings   bookingRepo.BookingRepository
	Reviews    reviewRepo.ReviewRepository
	Users      userRepo.UserRepository
	Notifier   Notifier
	Translator Translator
	Logger     *zap.Logger

	// Now and Location decide when a booking is over. Both are overridable in tests.
	Now      func() time.Time
	Location *time.Location

	validate *validator.Validate
}

// NewDefaultReviewService wires the service and its form validator.
func NewDefaultReviewService(
	bookings bookingRepo.BookingRepository,
	reviews reviewRepo.ReviewRepository,
	users userRepo.UserRepository,
	notifier Notifier,
	translator Translator,
	logger *zap.Logger,
) (*DefaultReviewService, error) {
	if bookings == nil || reviews == nil || users == nil {
		return nil, errors.New("review service initialization error: repository is nil")
	}
	if translator == nil {
		return nil, errors.New("review service initialization error: translator is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	validate, err := newFormValidator(translator)
	if err != nil {
		return nil, err
	}

	return &DefaultReviewService{
		Bookings:   bookings,
		Reviews:    reviews,
		Users:      users,
		Notifier:   notifier,
		Translator: translator,
		Logger:     logger,
		Now:        time.Now,
		Location:   time.Local,
		validate:   validate,
	}, nil
}
