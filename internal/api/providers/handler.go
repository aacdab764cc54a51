package providers

import (
	"net/http"

	"renomapro/internal/domain/providers"
	"renomapro/internal/domain/users"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewHandler(db *gorm.DB, st *store.Store) *Handler {
	return &Handler{DB: db, Store: st}
}

// GET /api/fachowcy
func (h *Handler) List(c *gin.Context) {
	var records []providers.Provider
	if err := h.DB.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load providers"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// POST /api/fachowcy
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
		Phone    string `json:"phone"`
		City     string `json:"city"`
		About    string `json:"about"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := providers.Provider{
		Name:     input.Name,
		Category: input.Category,
		Phone:    input.Phone,
		City:     input.City,
		About:    input.About,
		UserID:   c.GetUint("user_id"),
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": record.ID})
}

// PUT /api/fachowcy/:id
func (h *Handler) Update(c *gin.Context) {
	record, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Phone    string `json:"phone"`
		City     string `json:"city"`
		About    string `json:"about"`
		Verified bool   `json:"verified"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.DB.Model(&providers.Provider{}).Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"name":     input.Name,
			"category": input.Category,
			"phone":    input.Phone,
			"city":     input.City,
			"about":    input.About,
			"verified": input.Verified,
		})
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": res.RowsAffected})
}

// DELETE /api/fachowcy/:id
func (h *Handler) Delete(c *gin.Context) {
	record, ok := h.loadOwned(c)
	if !ok {
		return
	}

	res := h.DB.Delete(&providers.Provider{}, record.ID)
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}

// loadOwned resolves the :id record and enforces that the caller owns it or
// holds the admin role. The admin check goes back to the store, not the token
// claim.
func (h *Handler) loadOwned(c *gin.Context) (*providers.Provider, bool) {
	var record providers.Provider
	if err := h.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return nil, false
	}

	callerID := c.GetUint("user_id")
	if record.UserID == callerID {
		return &record, true
	}
	if role, err := h.Store.RoleByID(callerID); err == nil && role == users.RoleAdmin {
		return &record, true
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	return nil, false
}
