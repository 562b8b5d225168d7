package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cantina-escolar/cantina-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type ProductResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"nome"`
	Price     float64   `json:"preco"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"data_cadastro"`
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

type ListProductsInput struct {
	Name   string `query:"nome" required:"false" doc:"Case-insensitive substring filter on the name"`
	Active string `query:"ativo" required:"false" doc:"Filter by active flag, true or false"`
}

type ListProductsOutput struct {
	Body []ProductResponse
}

func (h *ProductHandler) HandleList(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	query := h.db.Order("id asc")
	if input.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(input.Name)+"%")
	}
	if input.Active != "" {
		active, err := strconv.ParseBool(input.Active)
		if err != nil {
			return nil, huma.Error400BadRequest("ativo must be true or false")
		}
		query = query.Where("active = ?", active)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list products: " + err.Error())
	}

	res := &ListProductsOutput{Body: []ProductResponse{}}
	for _, p := range products {
		res.Body = append(res.Body, productResponse(p))
	}
	return res, nil
}

type GetProductInput struct {
	ID uint `path:"id"`
}

type ProductOutput struct {
	Body ProductResponse
}

func (h *ProductHandler) HandleGet(ctx context.Context, input *GetProductInput) (*ProductOutput, error) {
	var product models.Product
	if err := h.db.First(&product, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Product not found")
	}

	return &ProductOutput{Body: productResponse(product)}, nil
}

type CreateProductInput struct {
	Body struct {
		Name   string  `json:"nome" doc:"Name of the product" required:"true"`
		Price  float64 `json:"preco" doc:"Unit price, must be >= 0" required:"true"`
		Active *bool   `json:"ativo,omitempty" doc:"Active flag, defaults to true"`
	}
}

func (h *ProductHandler) HandleCreate(ctx context.Context, input *CreateProductInput) (*ProductOutput, error) {
	name := strings.TrimSpace(input.Body.Name)
	if name == "" {
		return nil, huma.Error400BadRequest("nome is required")
	}
	if input.Body.Price < 0 {
		return nil, huma.Error400BadRequest("preco must be >= 0")
	}

	active := true
	if input.Body.Active != nil {
		active = *input.Body.Active
	}

	product := models.Product{Name: name, Price: input.Body.Price, Active: active}
	if err := h.db.Create(&product).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create product: " + err.Error())
	}

	return &ProductOutput{Body: productResponse(product)}, nil
}

type UpdateProductInput struct {
	ID   uint `path:"id"`
	Body struct {
		Name   string  `json:"nome" required:"true"`
		Price  float64 `json:"preco" required:"true"`
		Active bool    `json:"ativo"`
	}
}

// HandleUpdate edits the catalog entry only. Existing consumption rows keep
// the unit price they were recorded with, so price changes never rewrite
// past reports.
func (h *ProductHandler) HandleUpdate(ctx context.Context, input *UpdateProductInput) (*ProductOutput, error) {
	name := strings.TrimSpace(input.Body.Name)
	if name == "" {
		return nil, huma.Error400BadRequest("nome is required")
	}
	if input.Body.Price < 0 {
		return nil, huma.Error400BadRequest("preco must be >= 0")
	}

	var product models.Product
	if err := h.db.First(&product, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Product not found")
	}

	product.Name = name
	product.Price = input.Body.Price
	product.Active = input.Body.Active
	if err := h.db.Save(&product).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update product: " + err.Error())
	}

	return &ProductOutput{Body: productResponse(product)}, nil
}

type DeleteProductInput struct {
	ID uint `path:"id"`
}

// HandleDelete removes a product and cascades to its consumption rows, same
// policy as student deletion.
func (h *ProductHandler) HandleDelete(ctx context.Context, input *DeleteProductInput) (*MessageOutput, error) {
	var product models.Product
	if err := h.db.First(&product, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Product not found")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Consumption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete product: " + err.Error())
	}

	res := &MessageOutput{}
	res.Body.Message = "Product deleted"
	return res, nil
}
