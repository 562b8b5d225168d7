package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestHandleMonthlyEmpty(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Student{}, &models.Product{}, &models.Consumption{})

	handler := NewReportHandler(db)

	resp, err := handler.HandleMonthly(context.Background(), &MonthlyReportInput{Year: 2024, Month: 4})
	if err != nil {
		t.Fatalf("HandleMonthly returned error: %v", err)
	}
	if resp.Body.TotalStudents != 0 || resp.Body.TotalGeneral != 0 {
		t.Errorf("expected empty report, got %+v", resp.Body)
	}
	if resp.Body.Students == nil || len(resp.Body.Students) != 0 {
		t.Errorf("expected empty student list, got %#v", resp.Body.Students)
	}

	if _, err := handler.HandleMonthly(context.Background(), &MonthlyReportInput{Year: 2024, Month: 13}); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestHandleStudentDetail(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Student{}, &models.Product{}, &models.Consumption{})

	ana := models.Student{FullName: "Ana Souza", Room: "3B"}
	db.Create(&ana)
	suco := models.Product{Name: "Suco", Price: 1.50, Active: true}
	db.Create(&suco)

	date := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	db.Create(&models.Consumption{StudentID: ana.ID, ProductID: suco.ID, Quantity: 2, UnitPrice: 1.50, Date: date})

	handler := NewReportHandler(db)

	resp, err := handler.HandleStudentDetail(context.Background(), &StudentDetailInput{StudentID: ana.ID, Year: 2024, Month: 3})
	if err != nil {
		t.Fatalf("HandleStudentDetail returned error: %v", err)
	}
	if resp.Body.Student.FullName != "Ana Souza" {
		t.Errorf("unexpected student: %+v", resp.Body.Student)
	}
	if len(resp.Body.Rows) != 1 || resp.Body.Rows[0].ProductName != "Suco" {
		t.Errorf("unexpected rows: %+v", resp.Body.Rows)
	}
	if resp.Body.TotalItems != 2 || resp.Body.TotalValue != 3.00 {
		t.Errorf("unexpected totals: %+v", resp.Body)
	}

	// Unknown student is a 404, not an empty detail.
	if _, err := handler.HandleStudentDetail(context.Background(), &StudentDetailInput{StudentID: 42, Year: 2024, Month: 3}); err == nil {
		t.Error("expected not-found error")
	}
}

func TestServeCSV(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Student{}, &models.Product{}, &models.Consumption{})

	ana := models.Student{FullName: "Ana Souza", Room: "3B"}
	db.Create(&ana)
	date := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	db.Create(&models.Consumption{StudentID: ana.ID, ProductID: 1, Quantity: 2, UnitPrice: 1.50, Date: date})

	handler := NewReportHandler(db)
	r := chi.NewRouter()
	r.Get("/relatorios/mensal/{ano}/{mes}/csv", handler.ServeCSV)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/relatorios/mensal/2024/3/csv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "relatorio_2024_03.csv") {
		t.Errorf("unexpected disposition: %q", cd)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"Ana Souza","3B",2,3.00`) {
		t.Errorf("unexpected body: %q", body)
	}

	// Invalid month is rejected.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/relatorios/mensal/2024/13/csv", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestHandleDashboardStats(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Student{}, &models.Product{}, &models.Consumption{})

	now := time.Now()
	var students []models.Student
	for i := 0; i < 7; i++ {
		s := models.Student{FullName: fmt.Sprintf("Aluno %d", i), Room: "1A"}
		db.Create(&s)
		students = append(students, s)
		db.Create(&models.Consumption{StudentID: s.ID, ProductID: 1, Quantity: 1, UnitPrice: float64(i + 1), Date: now})
	}
	db.Create(&models.Product{Name: "Suco", Price: 1.50, Active: true})
	db.Create(&models.Product{Name: "Salgado antigo", Price: 2.00, Active: false})

	handler := NewDashboardHandler(db, 5)

	resp, err := handler.HandleStats(context.Background(), &StatsInput{})
	if err != nil {
		t.Fatalf("HandleStats returned error: %v", err)
	}
	if resp.Body.TotalStudents != 7 {
		t.Errorf("expected 7 students, got %d", resp.Body.TotalStudents)
	}
	if resp.Body.TotalProducts != 1 {
		t.Errorf("expected 1 active product, got %d", resp.Body.TotalProducts)
	}
	if resp.Body.MonthRevenue != 28 { // 1+2+...+7
		t.Errorf("expected revenue 28, got %v", resp.Body.MonthRevenue)
	}
	if len(resp.Body.TopStudents) != 5 {
		t.Fatalf("expected top 5, got %d", len(resp.Body.TopStudents))
	}
	if resp.Body.TopStudents[0].StudentID != students[6].ID {
		t.Errorf("expected biggest spender first, got %+v", resp.Body.TopStudents[0])
	}
}
