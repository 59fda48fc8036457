// Package view renders the server side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MenuTemplate is the name of the menu page template.
const MenuTemplate = "menu.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": formatPrice,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template into w.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.WithStack(r.templates.ExecuteTemplate(w, name, data))
}

// formatPrice prints whole pesos with thousands separators, e.g. 18.000.
func formatPrice(d decimal.Decimal) string {
	digits := d.Round(0).Abs().String()

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}

	if d.IsNegative() {
		return "-$" + string(out)
	}

	return "$" + string(out)
}
