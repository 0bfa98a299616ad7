package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/service"
)

// NewRouter configura o router do Gin com middlewares e rotas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	accountH *AccountHandler,
	friendH *FriendHandler,
	newsH *NewsHandler,
	chatH *ChatHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery e JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	api := r.Group("/api")

	// Rotas publicas.
	api.POST("/register", accountH.Register)
	api.POST("/confirm", accountH.Confirm)
	api.POST("/login", accountH.Login)
	api.POST("/auth/refresh", accountH.RefreshToken)
	api.POST("/auth/logout", accountH.Logout)
	api.GET("/news", newsH.List)

	// Rotas protegidas: o chamador vem sempre do access token.
	authed := api.Group("")
	authed.Use(JWTAuthMiddleware(jwtSvc))

	authed.POST("/account/delete/request", accountH.RequestDeletion)
	authed.POST("/account/delete/confirm", accountH.ConfirmDeletion)

	authed.GET("/friends", friendH.ListFriends)
	authed.GET("/friends/invites", friendH.ListInvites)
	authed.POST("/friends/invite", friendH.SendInvite)
	authed.POST("/friends/accept", friendH.AcceptInvite)
	authed.POST("/friends/reject", friendH.RejectInvite)
	authed.POST("/friends/remove", friendH.RemoveFriend)

	authed.POST("/news", newsH.Publish)
	authed.DELETE("/news/:id", newsH.Delete)

	authed.POST("/chat/messages", chatH.SendMessage)
	authed.GET("/chat/with/:email", chatH.Conversation)

	return r
}

// zapLoggerMiddleware cria um middleware simples de logging com zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware forca Content-Type: application/json nas respostas.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
