package viewmodels

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"productadmin/internal/models"
)

func TestMapProductList(t *testing.T) {
	products := []models.Product{{
		Base:     models.Base{ID: 7},
		Name:     "Widget",
		Price:    decimal.RequireFromString("9.99"),
		Count:    5,
		Category: models.Category{Name: "Tools"},
		Images: []models.ProductImage{
			{Image: "x.png"},
			{Image: "main.png", IsMain: true},
		},
	}}

	rows := MapProductList(products)

	assert.Len(t, rows, 1)
	assert.Equal(t, uint(7), rows[0].ID)
	assert.Equal(t, "Tools", rows[0].CategoryName)
	assert.Equal(t, "main.png", rows[0].MainImage)
	assert.Equal(t, "9.99", rows[0].Price.StringFixed(2))
}

func TestPaginate(t *testing.T) {
	p := NewPaginate([]int{1, 2}, 2, 3, 4)
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	last := NewPaginate([]int{}, 3, 3, 4)
	assert.False(t, last.HasNext())
	assert.Empty(t, NewPaginate([]int{}, 1, 0, 4).Pages())
}

func TestCategoryOptions(t *testing.T) {
	cats := []models.Category{{Base: models.Base{ID: 1}, Name: "A"}, {Base: models.Base{ID: 2}, Name: "B"}}
	opts := CategoryOptions(cats, 2)
	assert.Equal(t, []SelectOption{{Value: 1, Label: "A"}, {Value: 2, Label: "B", Selected: true}}, opts)
}

func TestFieldErrors_KeepsFirstMessage(t *testing.T) {
	e := FieldErrors{}
	assert.False(t, e.Any())
	e.Add("photos", "first")
	e.Add("photos", "second")
	assert.True(t, e.Any())
	assert.Equal(t, "first", e["photos"])
}
