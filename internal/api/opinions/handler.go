package opinions

import (
	"net/http"

	"renomapro/internal/domain/opinions"
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

// POST /api/opinions
//
// Reviews come from customer accounts only; the role is re-checked against
// the store.
func (h *Handler) Create(c *gin.Context) {
	role, err := h.Store.RoleByID(c.GetUint("user_id"))
	if err != nil || role != users.RoleClient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Clients only"})
		return
	}

	var input struct {
		ProviderID uint   `json:"fachowiec_id" binding:"required"`
		Rating     int    `json:"rating" binding:"required,min=1,max=5"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opinion := opinions.Opinion{
		ProviderID: input.ProviderID,
		ClientID:   c.GetUint("user_id"),
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := h.DB.Create(&opinion).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create opinion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": opinion.ID})
}

// GET /api/opinions/:provider_id
func (h *Handler) ListForProvider(c *gin.Context) {
	var records []opinions.Opinion
	if err := h.DB.Where("provider_id = ?", c.Param("provider_id")).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load opinions"})
		return
	}
	c.JSON(http.StatusOK, records)
}
