package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/service"
)

// FriendHandler mantem dependencias dos endpoints de amizade. O lado do
// chamador em toda operacao vem das claims verificadas, nunca do payload.
type FriendHandler struct {
	logger     *zap.Logger
	friendServ *service.FriendService
}

func NewFriendHandler(logger *zap.Logger, friendServ *service.FriendService) *FriendHandler {
	return &FriendHandler{
		logger:     logger,
		friendServ: friendServ,
	}
}

// SendInvite trata POST /api/friends/invite.
func (h *FriendHandler) SendInvite(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid invite request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.friendServ.SendInvite(c.Request.Context(), claims.Email, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "convite invalido"})
		case errors.Is(err, service.ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario nao encontrado"})
		case errors.Is(err, service.ErrAlreadyFriends):
			c.JSON(http.StatusConflict, gin.H{"error": "voces ja sao amigos"})
		case errors.Is(err, service.ErrDuplicateInvite):
			c.JSON(http.StatusConflict, gin.H{"error": "convite ja enviado"})
		default:
			h.logger.Error("send invite failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send invite"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "convite enviado"})
}

// ListInvites trata GET /api/friends/invites.
func (h *FriendHandler) ListInvites(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	invites, err := h.friendServ.ListPendingInvites(c.Request.Context(), claims.Email)
	if err != nil {
		h.logger.Error("list invites failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list invites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

// AcceptInvite trata POST /api/friends/accept.
func (h *FriendHandler) AcceptInvite(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid accept request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.friendServ.AcceptInvite(c.Request.Context(), claims.Email, req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "convite invalido"})
			return
		}
		h.logger.Error("accept invite failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not accept invite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "convite aceito"})
}

// RejectInvite trata POST /api/friends/reject.
func (h *FriendHandler) RejectInvite(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reject request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.friendServ.RejectInvite(c.Request.Context(), claims.Email, req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "convite invalido"})
			return
		}
		h.logger.Error("reject invite failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject invite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "convite recusado"})
}

// ListFriends trata GET /api/friends.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	friends, err := h.friendServ.ListFriends(c.Request.Context(), claims.Email)
	if err != nil {
		h.logger.Error("list friends failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list friends"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// RemoveFriend trata POST /api/friends/remove.
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid remove request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.friendServ.RemoveFriend(c.Request.Context(), claims.Email, req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pedido invalido"})
			return
		}
		h.logger.Error("remove friend failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove friend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "amizade desfeita"})
}
