package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{db: db}
}

type StudentResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"nome_completo"`
	Room      string    `json:"sala"`
	CreatedAt time.Time `json:"data_cadastro"`
}

func studentResponse(s models.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Room:      s.Room,
		CreatedAt: s.CreatedAt,
	}
}

type ListStudentsInput struct {
	Name string `query:"nome" required:"false" doc:"Case-insensitive substring filter on the full name"`
	Room string `query:"sala" required:"false" doc:"Exact room filter"`
}

type ListStudentsOutput struct {
	Body []StudentResponse
}

func (h *StudentHandler) HandleList(ctx context.Context, input *ListStudentsInput) (*ListStudentsOutput, error) {
	query := h.db.Order("id asc")
	if input.Name != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(input.Name)+"%")
	}
	if input.Room != "" {
		query = query.Where("room = ?", input.Room)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list students: " + err.Error())
	}

	res := &ListStudentsOutput{Body: []StudentResponse{}}
	for _, s := range students {
		res.Body = append(res.Body, studentResponse(s))
	}
	return res, nil
}

type GetStudentInput struct {
	ID uint `path:"id"`
}

type StudentOutput struct {
	Body StudentResponse
}

func (h *StudentHandler) HandleGet(ctx context.Context, input *GetStudentInput) (*StudentOutput, error) {
	var student models.Student
	if err := h.db.First(&student, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	return &StudentOutput{Body: studentResponse(student)}, nil
}

type CreateStudentInput struct {
	Body struct {
		FullName string `json:"nome_completo" doc:"Full name of the student" required:"true"`
		Room     string `json:"sala" doc:"Room/class of the student" required:"true"`
	}
}

func (h *StudentHandler) HandleCreate(ctx context.Context, input *CreateStudentInput) (*StudentOutput, error) {
	name := strings.TrimSpace(input.Body.FullName)
	room := strings.TrimSpace(input.Body.Room)
	if name == "" || room == "" {
		return nil, huma.Error400BadRequest("nome_completo and sala are required")
	}

	student := models.Student{FullName: name, Room: room}
	if err := h.db.Create(&student).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create student: " + err.Error())
	}

	return &StudentOutput{Body: studentResponse(student)}, nil
}

type UpdateStudentInput struct {
	ID   uint `path:"id"`
	Body struct {
		FullName string `json:"nome_completo" required:"true"`
		Room     string `json:"sala" required:"true"`
	}
}

func (h *StudentHandler) HandleUpdate(ctx context.Context, input *UpdateStudentInput) (*StudentOutput, error) {
	name := strings.TrimSpace(input.Body.FullName)
	room := strings.TrimSpace(input.Body.Room)
	if name == "" || room == "" {
		return nil, huma.Error400BadRequest("nome_completo and sala are required")
	}

	var student models.Student
	if err := h.db.First(&student, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	student.FullName = name
	student.Room = room
	if err := h.db.Save(&student).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update student: " + err.Error())
	}

	return &StudentOutput{Body: studentResponse(student)}, nil
}

type DeleteStudentInput struct {
	ID uint `path:"id"`
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleDelete removes a student and cascades to all of their consumption
// rows in the same transaction, so past reports never see orphaned records.
func (h *StudentHandler) HandleDelete(ctx context.Context, input *DeleteStudentInput) (*MessageOutput, error) {
	var student models.Student
	if err := h.db.First(&student, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Consumption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete student: " + err.Error())
	}

	res := &MessageOutput{}
	res.Body.Message = "Student deleted"
	return res, nil
}
