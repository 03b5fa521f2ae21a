package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

type fakeCohortLister struct {
	cohorts []models.Cohort
	hit     bool
}

func (f fakeCohortLister) ListActive(context.Context) ([]models.Cohort, bool, error) {
	return f.cohorts, f.hit, nil
}

type fakeRegistration struct {
	got dto.RegistrationRequest
	err error
}

func (f *fakeRegistration) Submit(_ context.Context, req dto.RegistrationRequest) (*models.StudentRecord, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.StudentRecord{ID: 9, CohortID: 1, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, ConsentGiven: true}, nil
}

func TestPublicHomeListsActiveCohorts(t *testing.T) {
	h := NewPublicHandler(fakeCohortLister{cohorts: []models.Cohort{{ID: 2, Year: 2025, Active: true}}, hit: true}, &fakeRegistration{})
	router := newTestRouter(nil)
	router.GET("/", h.Home)

	w := performRequest(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env.Data), `"year":2025`)
	assert.Equal(t, true, env.Meta["cache_hit"])
}

func TestPublicPrivacyNotice(t *testing.T) {
	h := NewPublicHandler(fakeCohortLister{}, &fakeRegistration{})
	router := newTestRouter(nil)
	router.GET("/datenschutz", h.Privacy)

	w := performRequest(router, httptest.NewRequest(http.MethodGet, "/datenschutz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Datenschutzerklärung")
}

func TestPublicSubmit(t *testing.T) {
	reg := &fakeRegistration{}
	h := NewPublicHandler(fakeCohortLister{}, reg)
	router := newTestRouter(nil)
	router.POST("/submit", h.Submit)

	form := url.Values{
		"jahrgang_id":              {"1"},
		"vorname":                  {"Anna"},
		"nachname":                 {"Schmidt"},
		"email":                    {"anna@example.com"},
		"datenschutz_einwilligung": {"on"},
	}
	w := performRequest(router, formRequest(http.MethodPost, "/submit", form))
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "Daten erfolgreich gespeichert!", env.Meta["message"])
	assert.Equal(t, "1", reg.got.CohortID)
	assert.Equal(t, "on", reg.got.Consent)
}

func TestPublicSubmitPropagatesServiceError(t *testing.T) {
	reg := &fakeRegistration{err: appErrors.Clone(appErrors.ErrValidation, "Die Datenschutzerklärung muss akzeptiert werden!")}
	h := NewPublicHandler(fakeCohortLister{}, reg)
	router := newTestRouter(nil)
	router.POST("/submit", h.Submit)

	w := performRequest(router, formRequest(http.MethodPost, "/submit", url.Values{"vorname": {"Anna"}}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Die Datenschutzerklärung muss akzeptiert werden!", env.Error.Message)
}
