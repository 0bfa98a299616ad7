package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/service"
)

// ChatHandler mantem dependencias dos endpoints de chat. Somente um
// participante da conversa consegue ler ou escrever nela.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// SendMessage trata POST /api/chat/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		To      string `json:"to" binding:"required,email"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.chatServ.Send(c.Request.Context(), claims.Email, req.To, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "mensagem invalida"})
		case errors.Is(err, service.ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario nao encontrado"})
		default:
			h.logger.Error("send message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Conversation trata GET /api/chat/with/:email. O outro lado da conversa
// vem da URL; o lado do chamador, das claims.
func (h *ChatHandler) Conversation(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	other := c.Param("email")
	messages, err := h.chatServ.Conversation(c.Request.Context(), claims.Email, other)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("list conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
