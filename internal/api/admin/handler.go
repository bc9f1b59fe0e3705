package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/domain/users"
	"catalog-app/internal/revision"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const recentLimit = 50

type AdminUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Changes  int    `json:"changes"`
}

type AdminChange struct {
	ID       int64        `json:"id"`
	Kind     catalog.Kind `json:"kind"`
	ItemID   int64        `json:"item_id"`
	Revision int          `json:"revision"`
	UserID   int64        `json:"user_id"`
	Username string       `json:"username"`
	Comment  string       `json:"comment"`
	Created  string       `json:"created"`
}

type AdminStats struct {
	TotalUsers    int                  `json:"total_users"`
	TotalChanges  int                  `json:"total_changes"`
	RecentChanges int                  `json:"recent_changes"`
	EntriesByKind map[catalog.Kind]int `json:"entries_by_kind"`
	HiddenByKind  map[catalog.Kind]int `json:"hidden_by_kind"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func toAdminChanges(entries []revision.RevisionEntry) []AdminChange {
	out := make([]AdminChange, 0, len(entries))
	for _, e := range entries {
		out = append(out, AdminChange{
			ID:       e.ID,
			Kind:     e.ItemName,
			ItemID:   e.ItemID,
			Revision: e.Revision,
			UserID:   e.UserID,
			Username: e.Username,
			Comment:  e.Comments,
			Created:  e.Created.Format("2006-01-02 15:04"),
		})
	}
	return out
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	result := []AdminUser{}
	err := h.db.WithContext(c.Request.Context()).
		Table("users").
		Select("users.id, users.username, users.role, COUNT(change.id) AS changes").
		Joins("LEFT JOIN change ON change.user_id = users.id").
		Group("users.id, users.username, users.role").
		Order("users.id").
		Scan(&result).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListRecentChanges(c *gin.Context) {
	entries, err := revision.RecentChanges(c.Request.Context(), h.db, 0, recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load changes"})
		return
	}
	c.JSON(http.StatusOK, toAdminChanges(entries))
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	stats := AdminStats{
		EntriesByKind: map[catalog.Kind]int{},
		HiddenByKind:  map[catalog.Kind]int{},
	}

	var totalUsers, totalChanges, recentChanges int64
	db.Model(&users.User{}).Count(&totalUsers)
	db.Model(&catalog.Change{}).Count(&totalChanges)
	db.Model(&catalog.Change{}).Where("created >= ?", time.Now().AddDate(0, 0, -30)).Count(&recentChanges)

	stats.TotalUsers = int(totalUsers)
	stats.TotalChanges = int(totalChanges)
	stats.RecentChanges = int(recentChanges)

	for _, kind := range catalog.Kinds {
		var total, hidden int64
		db.Table(string(kind)).Count(&total)
		db.Table(string(kind)).Where("hidden = ?", true).Count(&hidden)
		stats.EntriesByKind[kind] = int(total)
		stats.HiddenByKind[kind] = int(hidden)
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	ctx := c.Request.Context()

	var user users.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	entries, err := revision.RecentChanges(ctx, h.db, userID, recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch changes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": AdminUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Changes:  len(entries),
		},
		"changes": toAdminChanges(entries),
	})
}
