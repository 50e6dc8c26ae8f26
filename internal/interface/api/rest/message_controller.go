package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"team-files-api/internal/application/ports"
	"team-files-api/internal/application/services"
	"team-files-api/internal/domain/user"
	"team-files-api/internal/infrastructure/jwt"
	dtoMessage "team-files-api/internal/interface/api/rest/dto/message"
	"team-files-api/internal/interface/api/rest/middleware"
	"team-files-api/internal/interface/api/rest/validator"
)

type MessageController struct {
	messageService ports.MessageService
	userService    ports.UserService
	logger         *zap.Logger
}

func NewMessageController(
	r *gin.Engine,
	messageService ports.MessageService,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *MessageController {
	mc := &MessageController{
		messageService: messageService,
		userService:    userService,
		logger:         logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	r.GET(RouteMessages, authed, mc.GetMessagesHandler)
	r.POST(RouteMessages, authed, mc.SendMessageHandler)
	r.POST(RouteMessagesRefresh, authed, mc.RefreshHandler)

	return mc
}

func (mc *MessageController) currentUser(c *gin.Context) *user.User {
	ok, uuid := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		return nil
	}

	u, err := mc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		mc.logger.Error("FindUserByID() error", zap.Error(err))
		return nil
	}

	return u
}

// GetMessagesHandler lists the live window, or searches the whole
// history when a search query param is present. A broken subscription
// degrades the window response, it does not block it.
func (mc *MessageController) GetMessagesHandler(c *gin.Context) {
	if term := c.Query("search"); term != "" {
		found, err := mc.messageService.SearchMessages(c.Request.Context(), term)
		if err != nil {
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to search messages"},
			)
			mc.logger.Error("SearchMessages() error", zap.Error(err))
			return
		}
		c.JSON(http.StatusOK, dtoMessage.ResponseData{
			Data: dtoMessage.ToResponseMessages(found),
		})
		return
	}

	msgs, err := mc.messageService.Messages()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"data":               dtoMessage.ToResponseMessages(msgs),
			"subscription_error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dtoMessage.ResponseData{
		Data: dtoMessage.ToResponseMessages(msgs),
	})
}

func (mc *MessageController) SendMessageHandler(c *gin.Context) {
	actor := mc.currentUser(c)
	if actor == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "unknown user"},
		)
		return
	}

	var req dtoMessage.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid request body"},
		)
		return
	}

	m, err := mc.messageService.SendMessage(c.Request.Context(), actor, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrMessageEmpty) || errors.Is(err, services.ErrMessageTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to send message"},
		)
		mc.logger.Error("SendMessage() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dtoMessage.ToResponseMessage(*m))
}

func (mc *MessageController) RefreshHandler(c *gin.Context) {
	if err := mc.messageService.Refresh(c.Request.Context()); err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to resubscribe"},
		)
		mc.logger.Error("Refresh() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
