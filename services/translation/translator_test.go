package translation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransUsesDefaultLocale(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Your review has been added", tr.Trans("review.new.success", DomainReview))
	assert.Equal(t, "Comments", tr.Trans("Comments", DomainBreadcrumbs))

	frTr, err := New("fr")
	require.NoError(t, err)
	assert.Equal(t, "Commentaires", frTr.Trans("Comments", DomainBreadcrumbs))
}

func TestTransReturnsKeyWhenUnknown(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "review.missing", tr.Trans("review.missing", DomainReview))
	// Keys are scoped by domain.
	assert.Equal(t, "Comments", tr.Trans("Comments", DomainReview))
}

func TestTransInterpolatesParams(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	got := tr.Trans("review.received.body", DomainReview, "Alice", "Sea view loft", "5")
	assert.Equal(t, "Alice rated your booking for Sea view loft 5/5", got)
}

func TestTransInFallsBackToDefault(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Votre commentaire a été ajouté", tr.TransIn("fr", "review.new.success", DomainReview))
	assert.Equal(t, "Your review has been added", tr.TransIn("de", "review.new.success", DomainReview))
}

func TestNewRejectsUnsupportedLocale(t *testing.T) {
	_, err := New("xx")
	require.Error(t, err)
}

func TestRegisterValidatorTranslatesErrors(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	v := validator.New()
	require.NoError(t, tr.RegisterValidator(v))

	type form struct {
		Rating int `validate:"required"`
	}
	err = v.Struct(form{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "Rating is a required field", verrs[0].Translate(tr.For("en")))
}
