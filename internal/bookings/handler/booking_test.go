package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"beautify/internal/auth"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct {
	createFunc        func(ctx context.Context, booking *model.Booking) error
	getFunc           func(ctx context.Context, id string) (*model.Booking, error)
	listByPatientFunc func(ctx context.Context, email string) ([]*model.Booking, error)
	listByDateFunc    func(ctx context.Context, date string) ([]*model.Booking, error)
	markPaidFunc      func(ctx context.Context, id, transactionID string) error
	setReviewFunc     func(ctx context.Context, id, review string) error
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	return m.createFunc(ctx, booking)
}

func (m *mockBookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	return m.getFunc(ctx, id)
}

func (m *mockBookingService) ListByPatient(ctx context.Context, email string) ([]*model.Booking, error) {
	return m.listByPatientFunc(ctx, email)
}

func (m *mockBookingService) ListByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return m.listByDateFunc(ctx, date)
}

func (m *mockBookingService) MarkPaid(ctx context.Context, id, transactionID string) error {
	return m.markPaidFunc(ctx, id, transactionID)
}

func (m *mockBookingService) SetReview(ctx context.Context, id, review string) error {
	return m.setReviewFunc(ctx, id, review)
}

type noAdmins struct{}

func (noAdmins) IsAdmin(context.Context, string) (bool, error) { return false, nil }

func setup(svc *mockBookingService) (*httprouter.Router, *auth.TokenIssuer) {
	log := logger.Discard()
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	router := httprouter.New()
	NewBookingHandler(svc, auth.NewGate(issuer, noAdmins{}, log), log).RegisterRoutes(router)
	return router, issuer
}

func serve(router http.Handler, method, target, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, issuer *auth.TokenIssuer, email string) string {
	t.Helper()
	token, err := issuer.Issue(email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestCreateBooking(t *testing.T) {
	svc := &mockBookingService{createFunc: func(ctx context.Context, booking *model.Booking) error {
		booking.ID = "665f1c2e9b1d4a0012345678"
		return nil
	}}
	router, _ := setup(svc)

	rec := serve(router, http.MethodPost, "/booking",
		`{"treatment":"Haircut","date":"2024-05-01","slot":"09:00 AM - 09:30 AM","patient":"a@x.com"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data model.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "665f1c2e9b1d4a0012345678", body.Data.ID)
	assert.Equal(t, "Haircut", body.Data.Treatment)
}

func TestCreateDuplicateBookingIs400(t *testing.T) {
	svc := &mockBookingService{createFunc: func(ctx context.Context, booking *model.Booking) error {
		return apperrors.Conflict("Booking already exists").WithStatus(http.StatusBadRequest)
	}}
	router, _ := setup(svc)

	rec := serve(router, http.MethodPost, "/booking", `{"treatment":"Haircut"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking already exists")
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	router, _ := setup(&mockBookingService{})

	rec := serve(router, http.MethodPost, "/booking", `{"treatment":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoutes(t *testing.T) {
	var ids []string
	svc := &mockBookingService{getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
		ids = append(ids, id)
		return &model.Booking{ID: id}, nil
	}}
	router, _ := setup(svc)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/booking/abc", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/booking/review/def", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/booking/other/def", "", "").Code)
	assert.Equal(t, []string{"abc", "def"}, ids)
}

func TestGetMissingBooking(t *testing.T) {
	svc := &mockBookingService{getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}}
	router, _ := setup(svc)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/booking/abc", "", "").Code)
}

func TestListByEmailIsPublic(t *testing.T) {
	var got string
	svc := &mockBookingService{listByPatientFunc: func(ctx context.Context, email string) ([]*model.Booking, error) {
		got = email
		return nil, nil
	}}
	router, _ := setup(svc)

	rec := serve(router, http.MethodGet, "/booking/email/a@x.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", got)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestListByPatientRequiresSelf(t *testing.T) {
	svc := &mockBookingService{listByPatientFunc: func(ctx context.Context, email string) ([]*model.Booking, error) {
		return []*model.Booking{{ID: "1", Patient: email}}, nil
	}}
	router, issuer := setup(svc)

	rec := serve(router, http.MethodGet, "/booking?patient=a@x.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodGet, "/booking?patient=a@x.com", "", bearer(t, issuer, "b@x.com"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeForbidden)

	rec = serve(router, http.MethodGet, "/booking?patient=a@x.com", "", bearer(t, issuer, "a@x.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetReviewRequiresAuthentication(t *testing.T) {
	var gotID, gotReview string
	svc := &mockBookingService{setReviewFunc: func(ctx context.Context, id, review string) error {
		gotID, gotReview = id, review
		return nil
	}}
	router, issuer := setup(svc)

	rec := serve(router, http.MethodPatch, "/booking/review/abc", `{"review":"Lovely"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, gotID)

	rec = serve(router, http.MethodPatch, "/booking/review/abc", `{"review":"Lovely"}`, bearer(t, issuer, "b@x.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", gotID)
	assert.Equal(t, "Lovely", gotReview)
}

func TestPatchUnknownNestedRoute(t *testing.T) {
	router, _ := setup(&mockBookingService{})

	rec := serve(router, http.MethodPatch, "/booking/other/abc", `{"review":"x"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
