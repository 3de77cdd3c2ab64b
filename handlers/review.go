package handlers

import (
	"context"
	"errors"
	"net/http"

	"reviewdesk/middleware"
	"reviewdesk/models"
	"reviewdesk/services/review"
	"reviewdesk/services/translation"
	"reviewdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ReviewsMadePath is where a successful submission redirects to.
	ReviewsMadePath = "/review/reviews-made"
	// ReviewsReceivedPath is the listing the "Comments" breadcrumb points at.
	ReviewsReceivedPath = "/review/reviews-received"
)

// SessionStore keeps the per-visitor state the review pages need.
type SessionStore interface {
	Profile(ctx context.Context, sessionID, def string) (string, error)
	SetProfile(ctx context.Context, sessionID, profile string) error
	AddFlash(ctx context.Context, sessionID, kind, message string) error
	PopFlashes(ctx context.Context, sessionID string) (map[string][]string, error)
}

// MessageTranslator resolves a message key within a domain.
type MessageTranslator interface {
	Trans(key, domain string, params ...string) string
}

// Breadcrumb is one entry of the page trail. An empty URL marks the current page.
type Breadcrumb struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

type ReviewHandler struct {
	Service    review.ReviewService
	Sessions   SessionStore
	Translator MessageTranslator
	Logger     *zap.Logger
}

func NewReviewHandler(svc review.ReviewService, sessions SessionStore, translator MessageTranslator, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &ReviewHandler{
		Service:    svc,
		Sessions:   sessions,
		Translator: translator,
		Logger:     logger,
	}
}

// SubmitReviewHandler serves GET and POST /review/new/:booking_id.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "User ID not found in context")
		return
	}
	bookingID := c.Param("booking_id")
	logger := getLogger(c, h.Logger).With(zap.String("bookingID", bookingID), zap.String("userID", userID))

	booking, err := h.Service.GetBooking(ctx, bookingID)
	if err != nil {
		h.abortWithError(c, logger, err)
		return
	}
	if err := h.Service.Authorize(ctx, review.ActionAdd, booking, userID); err != nil {
		h.abortWithError(c, logger, err)
		return
	}
	draft, err := h.Service.CreateDraft(ctx, booking, userID)
	if err != nil {
		h.abortWithError(c, logger, err)
		return
	}

	form := &review.FormResult{}
	if c.Request.Method == http.MethodPost {
		var input review.ReviewInput
		if err := c.ShouldBind(&input); err != nil {
			logger.Debug("Review form could not be bound", zap.Error(err))
			form = review.InvalidInput(input, "rating", h.Translator.Trans("review.form.invalid", translation.DomainReview))
		} else {
			form, err = h.Service.Process(ctx, booking, draft, input)
			if err != nil {
				h.abortWithError(c, logger, err)
				return
			}
		}

		if form.Valid() {
			message := h.Translator.Trans("review.new.success", translation.DomainReview)
			if err := h.Sessions.AddFlash(ctx, middleware.CurrentSessionID(c), "success", message); err != nil {
				logger.Warn("Failed to store success flash", zap.Error(err))
			}
			c.Redirect(http.StatusFound, ReviewsMadePath)
			return
		}
	}

	recipient, err := h.Service.Recipient(ctx, draft)
	if err != nil {
		h.abortWithError(c, logger, err)
		return
	}

	formView := gin.H{"values": form.Input, "errors": form.Errors()}
	render(c, http.StatusOK, "review/new.html", gin.H{
		"title":       h.Translator.Trans("review.new.title", translation.DomainReview),
		"form":        formView,
		"booking":     booking,
		"reviewTo":    recipient,
		"breadcrumbs": h.breadcrumbs(booking),
	})
}

// ReviewsMadeHandler lists the caller's reviews and the bookings still waiting for one.
func (h *ReviewHandler) ReviewsMadeHandler(c *gin.Context) {
	h.listReviews(c, true)
}

// ReviewsReceivedHandler lists the reviews the caller received.
func (h *ReviewHandler) ReviewsReceivedHandler(c *gin.Context) {
	h.listReviews(c, false)
}

func (h *ReviewHandler) listReviews(c *gin.Context, authored bool) {
	ctx := c.Request.Context()
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "User ID not found in context")
		return
	}
	sessionID := middleware.CurrentSessionID(c)
	logger := getLogger(c, h.Logger).With(zap.String("userID", userID))

	role := h.activeRole(ctx, logger, sessionID)

	reviews, err := h.Service.GetUserReviews(ctx, role, userID, authored)
	if err != nil {
		h.abortWithError(c, logger, err)
		return
	}
	bookings, err := h.Service.GetUnreviewedBookings(ctx, role, userID)
	if err != nil {
		h.abortWithError(c, logger, err)
		return
	}

	flashes, err := h.Sessions.PopFlashes(ctx, sessionID)
	if err != nil {
		logger.Warn("Failed to read flashes", zap.Error(err))
		flashes = map[string][]string{}
	}

	name, title := "review/made.html", "review.made.title"
	if !authored {
		name, title = "review/received.html", "review.received.list"
	}
	render(c, http.StatusOK, name, gin.H{
		"title":       h.Translator.Trans(title, translation.DomainReview),
		"profile":     role,
		"reviews":     reviews,
		"bookings":    bookings,
		"flashes":     flashes,
		"breadcrumbs": h.breadcrumbs(nil),
	})
}

// SwitchProfileHandler stores the role the caller browses the dashboard as.
func (h *ReviewHandler) SwitchProfileHandler(c *gin.Context) {
	raw := c.Param("role")
	role, ok := models.ParseRole(raw)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, h.Translator.Trans("review.profile.invalid", translation.DomainReview), raw)
		return
	}

	if err := h.Sessions.SetProfile(c.Request.Context(), middleware.CurrentSessionID(c), string(role)); err != nil {
		getLogger(c, h.Logger).Error("Failed to store profile", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": role})
}

// activeRole reads the session profile, falling back to the default role.
func (h *ReviewHandler) activeRole(ctx context.Context, logger *zap.Logger, sessionID string) models.Role {
	stored, err := h.Sessions.Profile(ctx, sessionID, string(models.DefaultRole))
	if err != nil {
		logger.Warn("Failed to read session profile", zap.Error(err))
		return models.DefaultRole
	}
	role, ok := models.ParseRole(stored)
	if !ok {
		return models.DefaultRole
	}
	return role
}

// breadcrumbs links "Comments" to the received reviews and, on the review form, appends
// the booked listing.
func (h *ReviewHandler) breadcrumbs(booking *models.Booking) []Breadcrumb {
	crumbs := []Breadcrumb{
		{Label: h.Translator.Trans("Comments", translation.DomainBreadcrumbs), URL: ReviewsReceivedPath},
	}
	if booking != nil {
		crumbs = append(crumbs, Breadcrumb{Label: booking.ListingTitle, URL: "/review/new/" + booking.ID})
	}
	return crumbs
}

// abortWithError maps review service errors to HTTP responses.
func (h *ReviewHandler) abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *review.NotFoundError
	var denied *review.AuthorizationError
	var conflict *review.ConflictError

	switch {
	case errors.As(err, &notFound):
		h.abortTyped(c, http.StatusNotFound, notFound.Code, notFound.Message)
	case errors.As(err, &denied):
		h.abortTyped(c, http.StatusForbidden, denied.Code, denied.Message)
	case errors.As(err, &conflict):
		h.abortTyped(c, http.StatusForbidden, conflict.Code, conflict.Message)
	default:
		logger.Error("Review request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func (h *ReviewHandler) abortTyped(c *gin.Context, status int, code, details string) {
	utils.AbortWithError(c, status, utils.ErrorResponse{
		Code:    code,
		Message: h.Translator.Trans(code, translation.DomainReview),
		Details: details,
	})
}
