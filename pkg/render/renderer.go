package render

import (
	"context"

	"github.com/goliatone/go-bookingform/pkg/booking"
)

// Renderer serialises a booking snapshot (JSON, form-encoded, text summary).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap booking.Snapshot, options RenderOptions) ([]byte, error)
}
