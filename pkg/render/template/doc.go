// Package template defines the template engine seam used by the pretty
// snapshot renderer.
package template
