// Package cart models the multi-step consumption registration flow as an
// explicit state machine, independent of any UI: pick a student, build a
// cart of products, review the total, submit. Product prices are snapshotted
// into the cart when a product is added and are never re-read, so the
// resulting consumption rows carry the price at the time of selection.
package cart

import (
	"errors"
	"strings"

	"github.com/cantina-escolar/cantina-api/internal/models"
)

type State int

const (
	SelectingStudent State = iota
	SelectingProducts
	Reviewing
	Submitted
)

var (
	ErrWrongState      = errors.New("cart: operation not valid in current state")
	ErrEmptyCart       = errors.New("cart: cart is empty")
	ErrInactiveProduct = errors.New("cart: product is not active")
)

// Item is one cart line. UnitPrice is the snapshot taken when the product
// was first added.
type Item struct {
	ProductID uint
	Name      string
	UnitPrice float64
	Quantity  int
}

// BatchItem is one line of the submission payload.
type BatchItem struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
}

// Batch is the submission produced by a confirmed cart.
type Batch struct {
	StudentID uint
	Items     []BatchItem
}

type Cart struct {
	state   State
	student models.Student
	items   []Item
}

func New() *Cart {
	return &Cart{state: SelectingStudent}
}

func (c *Cart) State() State { return c.state }

// Items returns a copy of the current cart lines.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the running sum over all lines, using the snapshotted prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// SelectStudent fixes the student and moves to product selection.
func (c *Cart) SelectStudent(student models.Student) error {
	if c.state != SelectingStudent {
		return ErrWrongState
	}
	c.student = student
	c.state = SelectingProducts
	return nil
}

// Add puts one unit of the product in the cart, snapshotting its current
// price. Adding a product already in the cart increments its quantity
// instead of duplicating the line.
func (c *Cart) Add(product models.Product) error {
	if c.state != SelectingProducts {
		return ErrWrongState
	}
	if !product.Active {
		return ErrInactiveProduct
	}

	for i := range c.items {
		if c.items[i].ProductID == product.ID {
			c.items[i].Quantity++
			return nil
		}
	}

	c.items = append(c.items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
	})
	return nil
}

// SetQuantity adjusts a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID uint, quantity int) error {
	if c.state != SelectingProducts {
		return ErrWrongState
	}
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// Remove drops the line for the given product, if present.
func (c *Cart) Remove(productID uint) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Review moves to the confirmation step; requires a non-empty cart.
func (c *Cart) Review() error {
	if c.state != SelectingProducts {
		return ErrWrongState
	}
	if len(c.items) == 0 {
		return ErrEmptyCart
	}
	c.state = Reviewing
	return nil
}

// Back returns from review to product selection with the cart preserved.
func (c *Cart) Back() error {
	if c.state != Reviewing {
		return ErrWrongState
	}
	c.state = SelectingProducts
	return nil
}

// Submit confirms the reviewed cart and produces the batch to persist, one
// item per line with the snapshotted unit price. The cart stays intact in
// the Submitted state until Complete or Abort, so a failed write can be
// retried without losing the operator's work.
func (c *Cart) Submit() (Batch, error) {
	if c.state != Reviewing {
		return Batch{}, ErrWrongState
	}
	if len(c.items) == 0 {
		return Batch{}, ErrEmptyCart
	}

	batch := Batch{StudentID: c.student.ID}
	for _, item := range c.items {
		batch.Items = append(batch.Items, BatchItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	c.state = Submitted
	return batch, nil
}

// Complete acknowledges a successful submission: the cart and the selected
// student are cleared and the flow returns to student selection.
func (c *Cart) Complete() error {
	if c.state != Submitted {
		return ErrWrongState
	}
	c.student = models.Student{}
	c.items = nil
	c.state = SelectingStudent
	return nil
}

// Abort returns a failed submission to the review step, cart unchanged.
func (c *Cart) Abort() error {
	if c.state != Submitted {
		return ErrWrongState
	}
	c.state = Reviewing
	return nil
}

// FilterStudents is the student-search helper for the first step:
// case-insensitive substring match on the full name.
func FilterStudents(students []models.Student, query string) []models.Student {
	if query == "" {
		return students
	}
	query = strings.ToLower(query)

	var matched []models.Student
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.FullName), query) {
			matched = append(matched, s)
		}
	}
	return matched
}
