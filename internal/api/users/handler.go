package users

import (
	"errors"
	"net/http"

	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/domain/access"
	"catalog-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db     *gorm.DB
	policy access.Policy
}

func NewHandler(db *gorm.DB, policy access.Policy) *Handler {
	return &Handler{db: db, policy: policy}
}

// GetCurrentUser serves GET /me. The role comes from the token, not the
// users table, because that is what the permission gate sees.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id.UserID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	ops := h.policy.CapabilitiesFor(id.Role)
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, string(op))
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
		Access: AccessDTO{Role: string(id.Role), Operations: names},
	})
}
