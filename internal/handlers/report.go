package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/cantina-escolar/cantina-api/internal/report"
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

func (h *ReportHandler) monthly(year, month int) (report.MonthlyReport, error) {
	var consumptions []models.Consumption
	if err := h.db.Order("id asc").Find(&consumptions).Error; err != nil {
		return report.MonthlyReport{}, err
	}
	var students []models.Student
	if err := h.db.Find(&students).Error; err != nil {
		return report.MonthlyReport{}, err
	}
	return report.Aggregate(consumptions, students, year, month), nil
}

type MonthlyReportInput struct {
	Year  int `path:"ano"`
	Month int `path:"mes"`
}

type MonthlyReportOutput struct {
	Body report.MonthlyReport
}

func (h *ReportHandler) HandleMonthly(ctx context.Context, input *MonthlyReportInput) (*MonthlyReportOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, huma.Error400BadRequest("mes must be between 1 and 12")
	}

	monthly, err := h.monthly(input.Year, input.Month)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to build report: " + err.Error())
	}
	return &MonthlyReportOutput{Body: monthly}, nil
}

type StudentDetailInput struct {
	StudentID uint `path:"alunoId"`
	Year      int  `path:"ano"`
	Month     int  `path:"mes"`
}

type StudentDetailOutput struct {
	Body report.StudentDetail
}

func (h *ReportHandler) HandleStudentDetail(ctx context.Context, input *StudentDetailInput) (*StudentDetailOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, huma.Error400BadRequest("mes must be between 1 and 12")
	}

	var student models.Student
	if err := h.db.First(&student, input.StudentID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	var consumptions []models.Consumption
	if err := h.db.Order("id asc").Find(&consumptions).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load consumptions: " + err.Error())
	}
	var products []models.Product
	if err := h.db.Find(&products).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load products: " + err.Error())
	}

	detail := report.Detail(consumptions, products, student, input.Year, input.Month)
	return &StudentDetailOutput{Body: detail}, nil
}

// ServeCSV writes the monthly report as a CSV attachment, named
// relatorio_<year>_<month>.csv. Registered as a plain chi route since the
// response is a file download rather than JSON.
func (h *ReportHandler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "ano"))
	if err != nil || year < 1 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "mes"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	monthly, err := h.monthly(year, month)
	if err != nil {
		log.Printf("Failed to build CSV report: %v", err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(year, month)))
	w.Write(report.CSV(monthly))
}
