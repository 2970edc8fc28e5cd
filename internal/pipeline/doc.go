// Package pipeline implements the Markdown-to-LaTeX line transcoding stage.
//
// This package handles classification, template rendering, and inspection:
//   - Line classification against the PNG and CSV embed patterns
//   - Figure and table template substitution (---path---, ---caption---)
//   - Lazy line-by-line transcoding from an io.Reader
//   - Embed inspection via Goldmark, reporting embeds the transcoder skips
//   - Terminal highlighting of generated LaTeX via Chroma
//
// Every line is handled on its own: no state carries from one line to the
// next, and output order always matches input order. Template assets and
// their loading live in internal/assets; the root md2tex package wires the
// two together.
package pipeline
