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
	"beautify/internal/users/service"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	upsertFunc  func(ctx context.Context, email string, profile map[string]any) (*service.UpsertResponse, error)
	listFunc    func(ctx context.Context) ([]*model.User, error)
	promoteFunc func(ctx context.Context, email string) error
	removeFunc  func(ctx context.Context, email string) error
	admins      map[string]bool
}

func (m *mockUserService) Upsert(ctx context.Context, email string, profile map[string]any) (*service.UpsertResponse, error) {
	return m.upsertFunc(ctx, email, profile)
}

func (m *mockUserService) List(ctx context.Context) ([]*model.User, error) {
	return m.listFunc(ctx)
}

func (m *mockUserService) Promote(ctx context.Context, email string) error {
	return m.promoteFunc(ctx, email)
}

func (m *mockUserService) Remove(ctx context.Context, email string) error {
	return m.removeFunc(ctx, email)
}

func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return m.admins[email], nil
}

func setup(svc *mockUserService) (*httprouter.Router, *auth.TokenIssuer) {
	log := logger.Discard()
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	gate := auth.NewGate(issuer, svc, log)
	router := httprouter.New()
	NewUserHandler(svc, gate, log).RegisterRoutes(router)
	return router, issuer
}

func bearer(t *testing.T, issuer *auth.TokenIssuer, email string) string {
	t.Helper()
	token, err := issuer.Issue(email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestUpsertReturnsResultAndToken(t *testing.T) {
	var gotEmail string
	var gotProfile map[string]any
	svc := &mockUserService{upsertFunc: func(ctx context.Context, email string, profile map[string]any) (*service.UpsertResponse, error) {
		gotEmail, gotProfile = email, profile
		return &service.UpsertResponse{Result: model.UpsertResult{Inserted: true}, Token: "tok"}, nil
	}}
	router, _ := setup(svc)

	req := httptest.NewRequest(http.MethodPut, "/user/a@x.com", strings.NewReader(`{"name":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"result":{"inserted":true,"updated":false},"token":"tok"}}`, rec.Body.String())
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, map[string]any{"name": "Ana"}, gotProfile)
}

func TestListRequiresCredential(t *testing.T) {
	svc := &mockUserService{listFunc: func(ctx context.Context) ([]*model.User, error) {
		return []*model.User{{Email: "a@x.com"}}, nil
	}}
	router, issuer := setup(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", bearer(t, issuer, "a@x.com"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPromoteRequiresAdmin(t *testing.T) {
	var promoted string
	svc := &mockUserService{
		admins: map[string]bool{"boss@x.com": true},
		promoteFunc: func(ctx context.Context, email string) error {
			promoted = email
			return nil
		},
	}
	router, issuer := setup(svc)

	tests := []struct {
		name   string
		caller string
		want   int
	}{
		{"non admin", "client@x.com", http.StatusForbidden},
		{"admin", "boss@x.com", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/user/admin/new@x.com", nil)
			req.Header.Set("Authorization", bearer(t, issuer, tt.caller))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, "new@x.com", promoted)
}

func TestCheckAdminAnswersForRequester(t *testing.T) {
	svc := &mockUserService{admins: map[string]bool{"boss@x.com": true}}
	router, issuer := setup(svc)

	check := func(caller, pathEmail string) bool {
		req := httptest.NewRequest(http.MethodGet, "/user/admin/"+pathEmail, nil)
		req.Header.Set("Authorization", bearer(t, issuer, caller))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data struct {
				Admin bool `json:"admin"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body.Data.Admin
	}

	assert.True(t, check("boss@x.com", "client@x.com"))
	assert.False(t, check("client@x.com", "boss@x.com"))
}

func TestUnknownRoleRouteIsNotFound(t *testing.T) {
	router, issuer := setup(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/user/someone/else", nil)
	req.Header.Set("Authorization", bearer(t, issuer, "a@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveUnknownUser(t *testing.T) {
	svc := &mockUserService{
		admins: map[string]bool{"boss@x.com": true},
		removeFunc: func(ctx context.Context, email string) error {
			return apperrors.NotFoundWithID("User", email)
		},
	}
	router, issuer := setup(svc)

	req := httptest.NewRequest(http.MethodDelete, "/user/ghost@x.com", nil)
	req.Header.Set("Authorization", bearer(t, issuer, "boss@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
