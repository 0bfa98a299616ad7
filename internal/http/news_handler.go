package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/service"
)

// NewsHandler mantem dependencias dos endpoints de noticias.
type NewsHandler struct {
	logger   *zap.Logger
	newsServ *service.NewsService
}

func NewNewsHandler(logger *zap.Logger, newsServ *service.NewsService) *NewsHandler {
	return &NewsHandler{
		logger:   logger,
		newsServ: newsServ,
	}
}

// List trata GET /api/news.
func (h *NewsHandler) List(c *gin.Context) {
	posts, err := h.newsServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list news failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list news"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": posts})
}

// Publish trata POST /api/news. O autor é sempre o administrador
// autenticado.
func (h *NewsHandler) Publish(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid publish request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	post, err := h.newsServ.Publish(c.Request.Context(), claims.Email, req.Title, req.Description, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "apenas administradores"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "titulo obrigatorio"})
		default:
			h.logger.Error("publish news failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not publish"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// Delete trata DELETE /api/news/:id.
func (h *NewsHandler) Delete(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	id := c.Param("id")
	if err := h.newsServ.Delete(c.Request.Context(), claims.Email, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "apenas administradores"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "noticia nao encontrada"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			h.logger.Error("delete news failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "noticia apagada"})
}
