package translation

// catalogs maps locale -> domain -> key -> message. Placeholders use {0}, {1}...
var catalogs = map[string]map[string]map[string]string{
	"en": {
		DomainReview: {
			"review.new.success":       "Your review has been added",
			"review.already_added":     "Review already added for this booking by user",
			"review.not_allowed":       "You are not allowed to review this booking",
			"review.booking_not_found": "Booking not found",
			"review.profile.invalid":   "Unknown profile",
			"review.received.title":    "New review",
			"review.received.body":     "{0} rated your booking for {1} {2}/5",
			"review.new.title":         "Leave a review",
			"review.made.title":        "Reviews made",
			"review.received.list":     "Reviews received",
			"review.unreviewed.title":  "Bookings awaiting your review",
			"review.form.rating":       "Rating",
			"review.form.comment":      "Comment",
			"review.form.submit":       "Send",
			"review.form.invalid":      "This value is not valid.",
		},
		DomainBreadcrumbs: {
			"Comments": "Comments",
		},
	},
	"fr": {
		DomainReview: {
			"review.new.success":       "Votre commentaire a été ajouté",
			"review.already_added":     "Commentaire déjà ajouté pour cette réservation",
			"review.not_allowed":       "Vous ne pouvez pas commenter cette réservation",
			"review.booking_not_found": "Réservation introuvable",
			"review.profile.invalid":   "Profil inconnu",
			"review.received.title":    "Nouveau commentaire",
			"review.received.body":     "{0} a noté votre réservation pour {1} {2}/5",
			"review.new.title":         "Laisser un commentaire",
			"review.made.title":        "Commentaires laissés",
			"review.received.list":     "Commentaires reçus",
			"review.unreviewed.title":  "Réservations en attente de votre commentaire",
			"review.form.rating":       "Note",
			"review.form.comment":      "Commentaire",
			"review.form.submit":       "Envoyer",
			"review.form.invalid":      "Cette valeur n'est pas valide.",
		},
		DomainBreadcrumbs: {
			"Comments": "Commentaires",
		},
	},
}
