// Package report computes monthly consumption aggregates over snapshots of
// the stored collections. All functions are pure: they never touch the
// database and never mutate their inputs, so callers may invoke them
// concurrently for different periods.
package report

import (
	"sort"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
)

type StudentSummary struct {
	StudentID  uint    `json:"aluno_id"`
	FullName   string  `json:"nome_completo"`
	Room       string  `json:"sala"`
	TotalItems int     `json:"total_itens"`
	TotalValue float64 `json:"total_valor"`
}

type MonthlyReport struct {
	Year          int              `json:"ano"`
	Month         int              `json:"mes"`
	TotalStudents int              `json:"total_alunos"`
	TotalGeneral  float64          `json:"total_geral"`
	Students      []StudentSummary `json:"alunos"`
}

type StudentInfo struct {
	ID       uint   `json:"id"`
	FullName string `json:"nome_completo"`
	Room     string `json:"sala"`
}

type DetailRow struct {
	Date        time.Time `json:"data_consumo"`
	ProductName string    `json:"produto_nome"`
	Quantity    int       `json:"quantidade"`
	UnitPrice   float64   `json:"preco_unitario"`
	Total       float64   `json:"total"`
}

type StudentDetail struct {
	Student    StudentInfo `json:"aluno"`
	Rows       []DetailRow `json:"consumos"`
	TotalItems int         `json:"total_itens"`
	TotalValue float64     `json:"total_valor"`
}

// inMonth reports whether the record date falls in the given calendar month.
func inMonth(d time.Time, year, month int) bool {
	return d.Year() == year && int(d.Month()) == month
}

// Aggregate filters records to one calendar month and groups them by student.
// Summaries keep the insertion order of each student's first qualifying
// record. Records whose student id does not resolve are skipped rather than
// failing the whole report. An empty month yields an empty report, not an
// error.
func Aggregate(records []models.Consumption, students []models.Student, year, month int) MonthlyReport {
	byID := make(map[uint]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	index := make(map[uint]int)
	report := MonthlyReport{Year: year, Month: month, Students: []StudentSummary{}}

	for _, rec := range records {
		if !inMonth(rec.Date, year, month) {
			continue
		}
		student, ok := byID[rec.StudentID]
		if !ok {
			continue
		}

		i, seen := index[rec.StudentID]
		if !seen {
			i = len(report.Students)
			index[rec.StudentID] = i
			report.Students = append(report.Students, StudentSummary{
				StudentID: student.ID,
				FullName:  student.FullName,
				Room:      student.Room,
			})
		}

		report.Students[i].TotalItems += rec.Quantity
		report.Students[i].TotalValue += rec.Total()
		report.TotalGeneral += rec.Total()
	}

	report.TotalStudents = len(report.Students)
	return report
}

// Detail builds one student's consumption rows for a calendar month, in the
// original record order. Product names are resolved against the catalog
// snapshot; rows whose product was deleted keep a placeholder name.
func Detail(records []models.Consumption, products []models.Product, student models.Student, year, month int) StudentDetail {
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	detail := StudentDetail{
		Student: StudentInfo{ID: student.ID, FullName: student.FullName, Room: student.Room},
		Rows:    []DetailRow{},
	}

	for _, rec := range records {
		if rec.StudentID != student.ID || !inMonth(rec.Date, year, month) {
			continue
		}

		name, ok := names[rec.ProductID]
		if !ok {
			name = "Produto não encontrado"
		}

		detail.Rows = append(detail.Rows, DetailRow{
			Date:        rec.Date,
			ProductName: name,
			Quantity:    rec.Quantity,
			UnitPrice:   rec.UnitPrice,
			Total:       rec.Total(),
		})
		detail.TotalItems += rec.Quantity
		detail.TotalValue += rec.Total()
	}

	return detail
}

// TopN returns up to n summaries ordered by descending total value. The sort
// is stable, so students with equal totals keep their aggregation order.
func TopN(report MonthlyReport, n int) []StudentSummary {
	top := make([]StudentSummary, len(report.Students))
	copy(top, report.Students)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalValue > top[j].TotalValue
	})

	if n < 0 {
		n = 0
	}
	if len(top) > n {
		top = top[:n]
	}
	return top
}
