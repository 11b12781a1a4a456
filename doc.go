// Package aipaste converts the output of AI chat assistants into HTML that
// pastes into Microsoft Word with native, editable equations.
//
// # Quick Start
//
// Create a converter once and reuse it:
//
//	conv, err := aipaste.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, aipaste.Input{
//	    Content: "Euler: $e^{i\\pi} + 1 = 0$",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paste.html", []byte(result.HTML), 0o644)
//
// Result.HTML is what goes on the clipboard as text/html; Result.PlainText
// is the text/plain flavor, with formulas kept as LaTeX.
//
// # Conversion Pipeline
//
// Markdown input goes through these stages:
//
//  1. Preprocessing (line endings, <br> tags, blank lines)
//  2. Math protection: $...$, $$...$$, \(...\), \[...\], LaTeX
//     environments and already-rendered KaTeX/MathJax markup are swapped
//     for placeholders; code is never touched
//  3. Markdown to HTML via Goldmark (GFM, footnotes, chroma highlighting)
//  4. Restoration: each placeholder becomes OMML (word, fragment) or
//     MathML (preview)
//  5. Document template and style sheet
//
// HTML input, such as a selection copied from a chat page, skips the
// Markdown stages: every KaTeX, MathJax or MathML container is replaced
// by OMML in place.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := aipaste.NewConverter(
//	    aipaste.WithFormat(aipaste.FormatFragment),
//	    aipaste.WithMathStrategy(aipaste.MathMathML),
//	    aipaste.WithStyle("academic"),
//	)
//
// # Math Only
//
// CompileLatex and CompileMathML convert single formulas. ProtectMathSpans
// and RestoreMathSpans expose the placeholder mechanism for callers that
// run their own Markdown renderer.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// conversions run at once:
//
//	pool := aipaste.NewConverterPool(aipaste.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Assets
//
// Override built-in presets and templates using AssetLoader:
//
//	loader, err := aipaste.NewAssetLoader("/path/to/assets")
//	conv, err := aipaste.NewConverter(aipaste.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.yaml
//	└── templates/
//	    └── custom/
//	        ├── word.html
//	        └── preview.html
package aipaste
