package template

import (
	"io"
)

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
