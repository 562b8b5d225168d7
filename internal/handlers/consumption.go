package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ConsumptionHandler struct {
	db *gorm.DB
}

func NewConsumptionHandler(db *gorm.DB) *ConsumptionHandler {
	return &ConsumptionHandler{db: db}
}

type ConsumptionResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"aluno_id"`
	ProductID uint      `json:"produto_id"`
	Quantity  int       `json:"quantidade"`
	UnitPrice float64   `json:"preco_unitario"`
	Total     float64   `json:"total"`
	Date      time.Time `json:"data_consumo"`
}

func consumptionResponse(c models.Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:        c.ID,
		StudentID: c.StudentID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		UnitPrice: c.UnitPrice,
		Total:     c.Total(),
		Date:      c.Date,
	}
}

type ListConsumptionsInput struct {
	StudentID uint   `query:"aluno_id" required:"false"`
	ProductID uint   `query:"produto_id" required:"false"`
	DateFrom  string `query:"data_inicio" required:"false" doc:"Inclusive lower bound, YYYY-MM-DD"`
	DateTo    string `query:"data_fim" required:"false" doc:"Inclusive upper bound, YYYY-MM-DD"`
}

type ListConsumptionsOutput struct {
	Body []ConsumptionResponse
}

func (h *ConsumptionHandler) HandleList(ctx context.Context, input *ListConsumptionsInput) (*ListConsumptionsOutput, error) {
	query := h.db.Order("id asc")
	if input.StudentID != 0 {
		query = query.Where("student_id = ?", input.StudentID)
	}
	if input.ProductID != 0 {
		query = query.Where("product_id = ?", input.ProductID)
	}
	if input.DateFrom != "" {
		from, err := time.Parse("2006-01-02", input.DateFrom)
		if err != nil {
			return nil, huma.Error400BadRequest("data_inicio must be YYYY-MM-DD")
		}
		query = query.Where("date >= ?", from)
	}
	if input.DateTo != "" {
		to, err := time.Parse("2006-01-02", input.DateTo)
		if err != nil {
			return nil, huma.Error400BadRequest("data_fim must be YYYY-MM-DD")
		}
		query = query.Where("date < ?", to.AddDate(0, 0, 1))
	}

	var consumptions []models.Consumption
	if err := query.Find(&consumptions).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list consumptions: " + err.Error())
	}

	res := &ListConsumptionsOutput{Body: []ConsumptionResponse{}}
	for _, c := range consumptions {
		res.Body = append(res.Body, consumptionResponse(c))
	}
	return res, nil
}

type CreateConsumptionInput struct {
	Body struct {
		StudentID uint `json:"aluno_id" required:"true"`
		ProductID uint `json:"produto_id" required:"true"`
		Quantity  int  `json:"quantidade,omitempty" doc:"Defaults to 1"`
	}
}

type ConsumptionOutput struct {
	Body ConsumptionResponse
}

// HandleCreate records a single consumption, copying the product's current
// price onto the row.
func (h *ConsumptionHandler) HandleCreate(ctx context.Context, input *CreateConsumptionInput) (*ConsumptionOutput, error) {
	quantity := input.Body.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, huma.Error400BadRequest("quantidade must be >= 1")
	}

	var student models.Student
	if err := h.db.First(&student, input.Body.StudentID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	var product models.Product
	if err := h.db.First(&product, input.Body.ProductID).Error; err != nil {
		return nil, huma.Error404NotFound("Product not found")
	}
	if !product.Active {
		return nil, huma.Error400BadRequest("Product is not active")
	}

	consumption := models.Consumption{
		StudentID: student.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Date:      time.Now(),
	}
	if err := h.db.Create(&consumption).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to record consumption: " + err.Error())
	}

	return &ConsumptionOutput{Body: consumptionResponse(consumption)}, nil
}

type BatchItemInput struct {
	ProductID uint `json:"produto_id" required:"true"`
	Quantity  int  `json:"quantidade" required:"true"`
}

type RegisterBatchInput struct {
	Body struct {
		StudentID uint             `json:"aluno_id" required:"true"`
		Items     []BatchItemInput `json:"itens" required:"true"`
	}
}

type RegisterBatchOutput struct {
	Body struct {
		Message  string `json:"message"`
		Recorded int    `json:"total_registrado"`
	}
}

// HandleRegisterBatch persists one submitted cart: one consumption row per
// item, all inside a single transaction so a failing line rolls the whole
// cart back and the operator can retry.
func (h *ConsumptionHandler) HandleRegisterBatch(ctx context.Context, input *RegisterBatchInput) (*RegisterBatchOutput, error) {
	if len(input.Body.Items) == 0 {
		return nil, huma.Error400BadRequest("itens must not be empty")
	}

	var student models.Student
	if err := h.db.First(&student, input.Body.StudentID).Error; err != nil {
		return nil, huma.Error404NotFound("Student not found")
	}

	date := time.Now()
	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Body.Items {
			if item.Quantity < 1 {
				return huma.Error400BadRequest("quantidade must be >= 1")
			}

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return huma.Error404NotFound(fmt.Sprintf("Product %d not found", item.ProductID))
			}
			if !product.Active {
				return huma.Error400BadRequest(fmt.Sprintf("Product %d is not active", item.ProductID))
			}

			consumption := models.Consumption{
				StudentID: student.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Date:      date,
			}
			if err := tx.Create(&consumption).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(huma.StatusError); ok {
			return nil, err
		}
		return nil, huma.Error500InternalServerError("Failed to register consumption: " + err.Error())
	}

	res := &RegisterBatchOutput{}
	res.Body.Message = "Consumption registered successfully"
	res.Body.Recorded = len(input.Body.Items)
	return res, nil
}
