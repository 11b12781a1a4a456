// Package pipeline implements the Markdown-to-Word conversion stages.
//
// The stages run in this order:
//   - Markdown preprocessing (line endings, <br> tags, blank lines)
//   - Markdown to HTML conversion via Goldmark, with syntax highlighting
//   - class assignment on the rendered fragment (md-paragraph, md-table, ...)
//   - math resolution: protected spans become OMML for the clipboard, or
//     MathML for preview
//   - document wrapping (Word or preview template) and CSS injection
//
// ConvertHTML handles the other entry point, HTML copied from a chat page,
// by replacing rendered KaTeX and MathJax containers with OMML.
//
// Span detection lives in the protect package and the math compilers in
// latex, mathml and omml. This package only wires them to HTML.
package pipeline
