package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"team-files-api/internal/application/ports"
	"team-files-api/internal/application/services"
	domain "team-files-api/internal/domain/file"
	"team-files-api/internal/domain/upload"
	jwtSvc "team-files-api/internal/infrastructure/jwt"
	"team-files-api/internal/interface/api/rest/middleware"
)

func setupUploadRouter(t *testing.T, fs ports.FileService) (*gin.Engine, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	j := jwtSvc.New("test-secret")

	upc := &UploadController{
		fileService: fs,
		logger:      zap.NewNop(),
	}

	authed := middleware.AuthMiddleware(j)
	r.GET("/uploads", authed, upc.GetUploadsHandler)
	r.POST("/uploads/:upload_id/cancel", authed, upc.CancelUploadHandler)
	r.POST("/uploads/:upload_id/retry", authed, upc.RetryUploadHandler)
	r.DELETE("/uploads/completed", authed, upc.ClearCompletedHandler)
	r.DELETE("/uploads", authed, upc.ClearAllHandler)

	tok, err := SignJWT("test-secret", uuid.New().String(), "employee", time.Hour)
	require.NoError(t, err)

	return r, map[string]string{"Authorization": "Bearer " + tok}
}

func TestUploadController_GetUploadsHandler(t *testing.T) {
	fs := &FakeFileService{
		UploadsFunc: func() []*upload.Session {
			return []*upload.Session{
				{ID: "1", FileName: "a.txt", Status: upload.StatusUploading, Progress: 40},
				{ID: "2", FileName: "b.txt", Status: upload.StatusError, Error: "boom"},
			}
		},
	}
	r, h := setupUploadRouter(t, fs)

	rr := doReq(t, r, http.MethodGet, "/uploads", nil, h)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"uploading"`)
	assert.Contains(t, rr.Body.String(), `"error":"boom"`)
}

func TestUploadController_CancelUploadHandler(t *testing.T) {
	t.Run("204 success", func(t *testing.T) {
		fs := &FakeFileService{
			CancelUploadFunc: func(id string) error {
				assert.Equal(t, "123", id)
				return nil
			},
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/cancel", nil, h)
		require.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("404 unknown session", func(t *testing.T) {
		fs := &FakeFileService{
			CancelUploadFunc: func(id string) error { return services.ErrUploadNotFound },
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/cancel", nil, h)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUploadController_RetryUploadHandler(t *testing.T) {
	t.Run("200 success", func(t *testing.T) {
		rec := sampleFile()
		fs := &FakeFileService{
			RetryUploadFunc: func(ctx context.Context, id string) (*domain.File, error) {
				assert.Equal(t, "123", id)
				return rec, nil
			},
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/retry", nil, h)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), rec.OriginalName)
	})

	t.Run("404 unknown session", func(t *testing.T) {
		fs := &FakeFileService{
			RetryUploadFunc: func(ctx context.Context, id string) (*domain.File, error) {
				return nil, services.ErrUploadNotFound
			},
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/retry", nil, h)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("400 when revalidation rejects", func(t *testing.T) {
		fs := &FakeFileService{
			RetryUploadFunc: func(ctx context.Context, id string) (*domain.File, error) {
				return nil, services.ErrUnsupportedFormat
			},
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/retry", nil, h)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("500 transfer error", func(t *testing.T) {
		fs := &FakeFileService{
			RetryUploadFunc: func(ctx context.Context, id string) (*domain.File, error) {
				return nil, errors.New("connection reset")
			},
		}
		r, h := setupUploadRouter(t, fs)

		rr := doReq(t, r, http.MethodPost, "/uploads/123/retry", nil, h)
		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestUploadController_ClearHandlers(t *testing.T) {
	fs := &FakeFileService{}
	r, h := setupUploadRouter(t, fs)

	rr := doReq(t, r, http.MethodDelete, "/uploads/completed", nil, h)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, fs.ClearCompletedCalls)

	rr = doReq(t, r, http.MethodDelete, "/uploads", nil, h)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, fs.ClearAllCalls)
}

func TestUploadController_RequiresAuth(t *testing.T) {
	r, _ := setupUploadRouter(t, &FakeFileService{})

	rr := doReq(t, r, http.MethodGet, "/uploads", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
