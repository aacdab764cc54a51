package leads

import (
	"log"
	"net/http"

	"renomapro/internal/domain/leads"
	"renomapro/internal/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Mailer mail.Mailer
}

func NewHandler(db *gorm.DB, mailer mail.Mailer) *Handler {
	return &Handler{DB: db, Mailer: mailer}
}

// POST /api/leads
//
// Public form submission. The notification mail is best-effort: failures are
// logged and never surfaced to the submitter.
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
		Desc  string `json:"desc"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := leads.Lead{
		Name:        input.Name,
		Phone:       input.Phone,
		Description: input.Desc,
	}
	if err := h.DB.Create(&lead).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create lead"})
		return
	}

	if h.Mailer != nil {
		go func(l leads.Lead) {
			if err := h.Mailer.NotifyNewLead(&l); err != nil {
				log.Printf("lead notification mail failed: %v", err)
			}
		}(lead)
	}

	c.JSON(http.StatusOK, gin.H{"id": lead.ID})
}
