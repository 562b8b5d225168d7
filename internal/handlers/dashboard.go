package handlers

import (
	"context"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/cantina-escolar/cantina-api/internal/report"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db   *gorm.DB
	topN int
}

func NewDashboardHandler(db *gorm.DB, topN int) *DashboardHandler {
	return &DashboardHandler{db: db, topN: topN}
}

type StatsInput struct{}

type StatsOutput struct {
	Body struct {
		TotalStudents int64                   `json:"total_alunos"`
		TotalProducts int64                   `json:"total_produtos"`
		MonthRevenue  float64                 `json:"faturamento_mes"`
		TopStudents   []report.StudentSummary `json:"top_alunos"`
	}
}

// HandleStats builds the dashboard summary: registry counts, current-month
// revenue and the top spenders for the current month.
func (h *DashboardHandler) HandleStats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	res := &StatsOutput{}

	if err := h.db.Model(&models.Student{}).Count(&res.Body.TotalStudents).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to count students: " + err.Error())
	}
	if err := h.db.Model(&models.Product{}).Where("active = ?", true).Count(&res.Body.TotalProducts).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to count products: " + err.Error())
	}

	var consumptions []models.Consumption
	if err := h.db.Order("id asc").Find(&consumptions).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load consumptions: " + err.Error())
	}
	var students []models.Student
	if err := h.db.Find(&students).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load students: " + err.Error())
	}

	now := time.Now()
	monthly := report.Aggregate(consumptions, students, now.Year(), int(now.Month()))
	res.Body.MonthRevenue = monthly.TotalGeneral
	res.Body.TopStudents = report.TopN(monthly, h.topN)

	return res, nil
}
