// Package render serialises booking snapshots for the terminal and HTTP
// surfaces. Renderers are looked up by output format name.
package render
