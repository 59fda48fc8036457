package view

import (
	"bytes"
	"testing"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "$0"},
		{decimal.NewFromInt(500), "$500"},
		{decimal.NewFromInt(18000), "$18.000"},
		{decimal.NewFromInt(1234567), "$1.234.567"},
		{decimal.NewFromInt(-3000), "-$3.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPrice(tt.in))
		})
	}
}

func TestRenderMenu(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	sections := []*usecase.MenuSection{
		{
			Category: entity.CategoryBurger,
			Products: []*usecase.MenuProduct{
				{
					Product: &entity.Product{Name: "Clásica", Price: decimal.NewFromInt(18000), New: true},
					AddOns:  []*entity.AddOn{{Name: "Queso Extra", Price: decimal.NewFromInt(3000)}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, MenuTemplate, sections, nil))

	html := buf.String()
	assert.Contains(t, html, "hamburguesa")
	assert.Contains(t, html, "Clásica")
	assert.Contains(t, html, "$18.000")
	assert.Contains(t, html, "Queso Extra (+$3.000)")
	assert.Contains(t, html, "Nuevo")
}

func TestRenderMenu_Empty(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, MenuTemplate, []*usecase.MenuSection{}, nil))
	assert.Contains(t, buf.String(), "No hay productos disponibles.")
}
