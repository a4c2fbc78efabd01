package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Company").
		Where("company_id = ?", p.CompanyID).
		First(&user, p.UserID).Error; err != nil {

		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": userView(&user),
		"company": gin.H{
			"id":   user.Company.ID,
			"name": user.Company.Name,
		},
	})
}
