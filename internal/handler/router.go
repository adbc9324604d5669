package handler

import (
	"strings"

	"github.com/event-finder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter registers middleware and routes on a fresh engine.
func SetupRouter(
	authSvc *service.AuthService,
	authH *AuthHandler,
	favH *FavoritesHandler,
	eventsH *EventsHandler,
	corsOrigins string,
) *gin.Engine {
	r := gin.Default()

	if origins := splitOrigins(corsOrigins); len(origins) > 0 {
		r.Use(CORSMiddleware(origins, false))
	}

	// Public routes
	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.GET("/events", eventsH.Search)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(authSvc))
	{
		authorized.POST("/favorites", favH.Add)
		authorized.GET("/favorites", favH.List)
		authorized.POST("/logout_all", authH.LogoutAll)
		authorized.DELETE("/account", authH.DeleteAccount)
	}

	return r
}

func splitOrigins(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
