package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"team-files-api/internal/application/ports"
	"team-files-api/internal/application/services"
	"team-files-api/internal/infrastructure/jwt"
	dtoFile "team-files-api/internal/interface/api/rest/dto/file"
	dtoUpload "team-files-api/internal/interface/api/rest/dto/upload"
	"team-files-api/internal/interface/api/rest/middleware"
)

type UploadController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewUploadController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UploadController {
	upc := &UploadController{
		fileService: fileService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	r.GET(RouteUploads, authed, upc.GetUploadsHandler)
	r.POST(RouteUploadCancel, authed, upc.CancelUploadHandler)
	r.POST(RouteUploadRetry, authed, upc.RetryUploadHandler)
	r.DELETE(RouteUploadsCompleted, authed, upc.ClearCompletedHandler)
	r.DELETE(RouteUploads, authed, upc.ClearAllHandler)

	return upc
}

func (upc *UploadController) GetUploadsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dtoUpload.ResponseData{
		Data: dtoUpload.ToResponseSessions(upc.fileService.Uploads()),
	})
}

func (upc *UploadController) CancelUploadHandler(c *gin.Context) {
	if err := upc.fileService.CancelUpload(c.Param("upload_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (upc *UploadController) RetryUploadHandler(c *gin.Context) {
	f, err := upc.fileService.RetryUpload(c.Request.Context(), c.Param("upload_id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case isValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "retry failed"},
			)
			upc.logger.Error("RetryUpload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, dtoFile.ToResponseFile(*f))
}

func (upc *UploadController) ClearCompletedHandler(c *gin.Context) {
	upc.fileService.ClearCompletedUploads()
	c.Status(http.StatusNoContent)
}

func (upc *UploadController) ClearAllHandler(c *gin.Context) {
	upc.fileService.ClearAllUploads()
	c.Status(http.StatusNoContent)
}
