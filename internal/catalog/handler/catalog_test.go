package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type mockCatalogService struct {
	listNamesFunc func(ctx context.Context) ([]*model.ServiceName, error)
}

func (m *mockCatalogService) ListNames(ctx context.Context) ([]*model.ServiceName, error) {
	return m.listNamesFunc(ctx)
}

func (m *mockCatalogService) ListAll(ctx context.Context) ([]*model.Service, error) {
	return nil, nil
}

func TestListNamesHandler(t *testing.T) {
	tests := []struct {
		name       string
		services   []*model.ServiceName
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ok",
			services:   []*model.ServiceName{{ID: "1", Name: "Haircut"}},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":[{"_id":"1","name":"Haircut"}]}`,
		},
		{
			name:       "store down",
			err:        apperrors.StorageUnavailable("Failed to retrieve services", nil),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCatalogService{listNamesFunc: func(ctx context.Context) ([]*model.ServiceName, error) {
				return tt.services, tt.err
			}}
			router := httprouter.New()
			NewCatalogHandler(svc, logger.Discard()).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/service", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
