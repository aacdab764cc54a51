package admin

import (
	"net/http"

	"renomapro/internal/domain/leads"
	"renomapro/internal/domain/providers"
	"renomapro/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// OwnerStats is the dashboard summary.
type OwnerStats struct {
	Users       int64 `json:"users"`
	Fachowcy    int64 `json:"fachowcy"`
	Leads       int64 `json:"leads"`
	Subscribers int64 `json:"subscribers"`
}

// PaymentRow lists accounts with any billing linkage.
type PaymentRow struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	StripeCustomerID *string `json:"stripe_customer_id"`
	Subscribed       bool    `json:"subscribed"`
}

// GET /api/admin/leads and /api/owner/leads
func (h *Handler) ListLeads(c *gin.Context) {
	var records []leads.Lead
	if err := h.DB.Order("created_at DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leads"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /api/admin/fachowcy
func (h *Handler) ListProviders(c *gin.Context) {
	var records []providers.Provider
	if err := h.DB.Order("id DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load providers"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /api/owner/stats
func (h *Handler) OwnerStats(c *gin.Context) {
	var stats OwnerStats
	if err := h.DB.Model(&users.User{}).Count(&stats.Users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	h.DB.Model(&providers.Provider{}).Count(&stats.Fachowcy)
	h.DB.Model(&leads.Lead{}).Count(&stats.Leads)
	h.DB.Model(&users.User{}).Where("subscribed = ?", true).Count(&stats.Subscribers)

	c.JSON(http.StatusOK, stats)
}

// GET /api/owner/payments
func (h *Handler) OwnerPayments(c *gin.Context) {
	var rows []PaymentRow
	err := h.DB.Model(&users.User{}).
		Select("id", "name", "email", "stripe_customer_id", "subscribed").
		Where("subscribed = ? OR stripe_customer_id IS NOT NULL", true).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
