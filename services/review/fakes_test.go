package review

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	reviewRepo "reviewdesk/database/repository/review"
	"reviewdesk/models"
	"reviewdesk/services/translation"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeBookings struct {
	items map[string]models.Booking
	// reviews is consulted to exclude reviewed bookings, mirroring the $lookup.
	reviews *fakeReviews
	err     error
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBookings) GetUnreviewed(_ context.Context, role models.Role, userID string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Booking{}
	for _, b := range f.items {
		side := b.UserID
		if role == models.RoleOfferer {
			side = b.ProviderID
		}
		if side != userID || !isReviewableStatus(b.Status) {
			continue
		}
		if r, _ := f.reviews.FindByBookingAndAuthor(context.Background(), b.ID, userID); r != nil {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type fakeReviews struct {
	mu    sync.Mutex
	items []models.Review
	err   error
}

func (f *fakeReviews) FindByBookingAndAuthor(_ context.Context, bookingID, authorID string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.items {
		if r.BookingID == bookingID && r.AuthorID == authorID {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviews) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, r := range f.items {
		if r.BookingID == review.BookingID && r.AuthorID == review.AuthorID {
			return reviewRepo.ErrDuplicateReview
		}
	}
	f.items = append(f.items, *review)
	return nil
}

func (f *fakeReviews) list(match func(models.Review) bool) []models.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Review{}
	for _, r := range f.items {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeReviews) ListByAuthor(_ context.Context, authorID string, role models.Role) ([]models.Review, error) {
	return f.list(func(r models.Review) bool { return r.AuthorID == authorID && r.AuthorRole == role }), nil
}

func (f *fakeReviews) ListByRecipient(_ context.Context, recipientID string, role models.Role) ([]models.Review, error) {
	return f.list(func(r models.Review) bool { return r.RecipientID == recipientID && r.RecipientRole == role }), nil
}

func (f *fakeReviews) SummaryForRecipient(_ context.Context, recipientID string, role models.Role) (models.RatingSummary, error) {
	received := f.list(func(r models.Review) bool { return r.RecipientID == recipientID && r.RecipientRole == role })
	if len(received) == 0 {
		return models.RatingSummary{}, nil
	}
	total := 0
	for _, r := range received {
		total += r.Rating
	}
	return models.RatingSummary{Average: float64(total) / float64(len(received)), Count: len(received)}, nil
}

type fakeUsers struct {
	items   map[string]models.User
	ratings map[string]models.RatingSummary
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) UpdateRating(_ context.Context, id string, role models.Role, summary models.RatingSummary) error {
	if _, ok := f.items[id]; !ok {
		return errors.New("user not found")
	}
	if f.ratings == nil {
		f.ratings = map[string]models.RatingSummary{}
	}
	f.ratings[id+"/"+string(role)] = summary
	return nil
}

type fakeNotifier struct {
	sent []models.ReviewReceivedPayload
	err  error
}

func (f *fakeNotifier) NotifyReviewReceived(_ context.Context, payload models.ReviewReceivedPayload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, payload)
	return nil
}

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultReviewService
	bookings *fakeBookings
	reviews  *fakeReviews
	users    *fakeUsers
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reviews := &fakeReviews{}
	bookings := &fakeBookings{
		reviews: reviews,
		items: map[string]models.Booking{
			// Finished, alice (asker) booked bob's (offerer) listing.
			"42": {ID: "42", ListingTitle: "Sea view loft", UserID: "alice", ProviderID: "bob", Date: "2024-06-01", Start: 600, End: 720, Status: models.BookingStatusCompleted},
			// Finished, bob booked carol's listing.
			"43": {ID: "43", ListingTitle: "Garden studio", UserID: "bob", ProviderID: "carol", Date: "2024-06-03", Start: 600, End: 720, Status: models.BookingStatusPaid},
			// Still running on testNow.
			"44": {ID: "44", ListingTitle: "Sea view loft", UserID: "alice", ProviderID: "bob", Date: "2024-06-10", Start: 600, End: 900, Status: models.BookingStatusConfirmed},
			// Cancelled.
			"45": {ID: "45", ListingTitle: "Sea view loft", UserID: "alice", ProviderID: "bob", Date: "2024-05-01", Start: 600, End: 720, Status: "Cancelled"},
		},
	}
	users := &fakeUsers{items: map[string]models.User{
		"alice": {ID: "alice", Username: "Alice", FCMToken: "tok-a"},
		"bob":   {ID: "bob", Username: "Bob", FCMToken: "tok-b"},
		"carol": {ID: "carol", Username: "Carol"},
	}}
	notifier := &fakeNotifier{}

	tr, err := translation.New("en")
	require.NoError(t, err)

	svc, err := NewDefaultReviewService(bookings, reviews, users, notifier, tr, zap.NewNop())
	require.NoError(t, err)
	svc.Now = func() time.Time { return testNow }
	svc.Location = time.UTC

	return &fixture{svc: svc, bookings: bookings, reviews: reviews, users: users, notifier: notifier}
}
