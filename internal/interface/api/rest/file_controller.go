package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"team-files-api/internal/application/ports"
	"team-files-api/internal/application/services"
	domain "team-files-api/internal/domain/file"
	"team-files-api/internal/domain/user"
	"team-files-api/internal/infrastructure/jwt"
	dtoFile "team-files-api/internal/interface/api/rest/dto/file"
	"team-files-api/internal/interface/api/rest/middleware"
	"team-files-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	userService ports.UserService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		userService: userService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	r.GET(RouteFiles, authed, fc.GetFilesHandler)
	r.GET(RouteFilesStats, authed, fc.GetStatsHandler)
	r.POST(RouteFilesRefresh, authed, fc.RefreshHandler)
	r.POST(RouteFiles, authed, fc.UploadFileHandler)
	r.GET(RouteFileDownload, authed, fc.DownloadFileHandler)
	r.DELETE(RouteFile, authed, fc.DeleteFileHandler)

	return fc
}

// currentUser resolves the authenticated account set by the auth
// middleware; nil means the token subject no longer exists.
func (fc *FileController) currentUser(c *gin.Context) *user.User {
	ok, uuid := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		return nil
	}

	u, err := fc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		fc.logger.Error("FindUserByID() error", zap.Error(err))
		return nil
	}

	return u
}

// GetFilesHandler lists the current snapshot, optionally narrowed by
// the category, owner or search query params. A broken live
// subscription degrades the response, it does not block it.
func (fc *FileController) GetFilesHandler(c *gin.Context) {
	var (
		files domain.Files
		err   error
	)

	switch {
	case c.Query("search") != "":
		files = fc.fileService.SearchFiles(c.Query("search"))
	case c.Query("category") != "":
		category := domain.Category(c.Query("category"))
		if !domain.IsValidCategory(category) {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "unknown category"},
			)
			return
		}
		files = fc.fileService.FilesByCategory(category)
	case c.Query("owner") != "":
		ok, owner := validator.IsUUID(c.Query("owner"))
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "owner must be a valid UUID"},
			)
			return
		}
		files = fc.fileService.FilesByOwner(owner)
	default:
		files, err = fc.fileService.Files()
	}

	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"data":               dtoFile.ToResponseFiles(files),
			"subscription_error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dtoFile.ResponseData{
		Data: dtoFile.ToResponseFiles(files),
	})
}

func (fc *FileController) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dtoFile.ToResponseStats(fc.fileService.Stats()))
}

func (fc *FileController) RefreshHandler(c *gin.Context) {
	if err := fc.fileService.Refresh(c.Request.Context()); err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to resubscribe"},
		)
		fc.logger.Error("Refresh() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	actor := fc.currentUser(c)
	if actor == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "unknown user"},
		)
		return
	}

	in, err := c.FormFile("file")
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "multipart field 'file' is required"},
		)
		return
	}

	f, uploadID, err := fc.fileService.UploadFile(c.Request.Context(), actor, in)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp := gin.H{"error": "upload failed"}
		if uploadID != "" {
			resp["upload_id"] = uploadID
		}
		c.JSON(http.StatusInternalServerError, resp)
		fc.logger.Error("UploadFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dtoFile.UploadResponse{
		UploadID: uploadID,
		File:     dtoFile.ToResponseFile(*f),
	})
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	actor := fc.currentUser(c)
	if actor == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "unknown user"},
		)
		return
	}

	f, err := fc.fileService.DownloadFile(c.Request.Context(), actor, fileUUID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to download file"},
		)
		fc.logger.Error("DownloadFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"download_url": f.DownloadURL,
		"file":         dtoFile.ToResponseFile(*f),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	actor := fc.currentUser(c)
	if actor == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "unknown user"},
		)
		return
	}

	err := fc.fileService.DeleteFile(c.Request.Context(), actor, fileUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to delete file"},
			)
			fc.logger.Error("DeleteFile() error", zap.Error(err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func isValidationErr(err error) bool {
	return errors.Is(err, services.ErrFileTooLarge) ||
		errors.Is(err, services.ErrFileEmpty) ||
		errors.Is(err, services.ErrMissingExtension) ||
		errors.Is(err, services.ErrUnsupportedFormat)
}
