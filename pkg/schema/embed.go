package schema

import (
	"embed"
	"sync"
)

//go:embed data/booking.yaml
var embeddedFS embed.FS

const defaultDocumentPath = "data/booking.yaml"

var (
	defaultOnce sync.Once
	defaultDef  Definition
	defaultErr  error
)

// Default returns the bundled booking form: from/to locations, a chained
// checkIn/checkOut range and a guests stepper.
func Default() (Definition, error) {
	defaultOnce.Do(func() {
		raw, err := embeddedFS.ReadFile(defaultDocumentPath)
		if err != nil {
			defaultErr = err
			return
		}
		defaultDef, defaultErr = Parse(embeddedSource(defaultDocumentPath), raw)
	})
	return defaultDef, defaultErr
}

