package routes

import (
	"net/http"

	adminapi "catalog-app/internal/api/admin"
	catalogapi "catalog-app/internal/api/catalog"
	usersapi "catalog-app/internal/api/users"
	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/cache"
	"catalog-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Catalog   *catalogapi.Handler
	Users     *usersapi.Handler
	Admin     *adminapi.Handler
	// Cache is reported by /health; nil reports it disabled.
	Cache     cache.Service
	JWTSecret string
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheStatus(c, d.Cache)})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	auth := middleware.AuthMiddleware(d.JWTSecret)

	r.GET("/me", auth, d.Users.GetCurrentUser)

	// Reads are open to guests; hidden entries need the hide capability.
	read := r.Group("/api")
	read.Use(auth)
	read.GET("/:kind/:id", d.Catalog.Get)
	read.GET("/:kind/:id/revisions", d.Catalog.ListRevisions)
	read.GET("/:kind/:id/revisions/:rev", d.Catalog.GetRevision)

	// Writes need a signed-in user; the permission gate decides the rest.
	write := r.Group("/api")
	write.Use(auth, middleware.RequireRole(access.RoleUser), middleware.SanitizeAndCleanInputMiddleware())
	write.POST("/:kind", d.Catalog.Create)
	write.PUT("/:kind/:id", d.Catalog.Update)

	admin := r.Group("/admin")
	admin.Use(auth, middleware.RequireRole(access.RoleAdmin))
	admin.GET("/users", d.Admin.ListAllUsers)
	admin.GET("/users/:id", d.Admin.GetUserDetails)
	admin.GET("/changes", d.Admin.ListRecentChanges)
	admin.GET("/stats", d.Admin.GetAdminStats)
}

// cacheStatus reports the snapshot cache without failing the health check;
// reads fall back to the database when redis is down.
func cacheStatus(c *gin.Context, svc cache.Service) string {
	if svc == nil || !svc.IsAvailable() {
		return "disabled"
	}
	if err := svc.Ping(c.Request.Context()); err != nil {
		return "down"
	}
	return "ok"
}
