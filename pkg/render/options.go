package render

// RenderOptions carry per-call presentation data that is not part of the
// snapshot itself.
type RenderOptions struct {
	// Title heads the pretty summary.
	Title string
	// Hidden fields are appended to form-encoded output (for example the
	// form instance id or a CSRF token).
	Hidden map[string]string
}
