package detector

import (
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

// WordVariants distinguishes Word for the Web from Desktop Word. Each signal
// writes into exactly one bucket; the result only enriches the report when
// the dominant verdict is Word and never feeds the primary board.
func WordVariants(b *docx.PartBundle) model.VariantReport {
	web := newScorecard()
	desktop := newScorecard()

	app := b.Text(docx.AppProps)
	core := b.Text(docx.CoreProps)
	theme := b.Text(docx.Theme)
	fonts := b.Text(docx.FontTable)
	settings := b.Text(docx.Settings)
	doc := b.Text(docx.Document)

	if strings.Contains(app, "Microsoft Word for the web") {
		web.hit(6, "<Application>Microsoft Word for the web</Application> detected")
	}
	if strings.Contains(app, "Microsoft Office Word") {
		desktop.hit(6, "<Application>Microsoft Office Word</Application> detected")
	}

	if strings.Contains(fonts, "Aptos") {
		desktop.hit(2, "Aptos/Aptos Display font (new Word 2024 default)")
	}
	if strings.Contains(fonts, "Calibri") && !strings.Contains(fonts, "Aptos") {
		web.hit(1.5, "Legacy Calibri font (Word Web or pre-2024 Word)")
	}

	if strings.Contains(theme, "xmlns:thm15") {
		web.hit(1, "Theme includes thm15 namespace (Word Web)")
	}
	if strings.Contains(theme, "w16du") || strings.Contains(settings, "w16du") {
		desktop.hit(1.5, "Modern WordML namespaces (Word 2023/2024 Desktop)")
	}

	// The web editor splits text into far more runs than desktop Word.
	if strings.Count(doc, "<w:r>") > 3*strings.Count(doc, "<w:p>") {
		web.hit(1.5, "Highly fragmented <w:r> structure (Word for Web pattern)")
	} else {
		desktop.hit(0.5, "Compact run structure (Desktop Word)")
	}

	if strings.Contains(core, "<cp:revision>") {
		desktop.hit(1, "Core properties include <cp:revision> (Desktop Word)")
	} else {
		web.hit(0.5, "No revision property (Word Web minimal metadata)")
	}

	return model.VariantReport{
		Scores: map[model.Variant]float64{
			model.VariantWordWeb:     clamp(web.score),
			model.VariantWordDesktop: clamp(desktop.score),
		},
		Evidence: map[model.Variant][]string{
			model.VariantWordWeb:     web.evidence,
			model.VariantWordDesktop: desktop.evidence,
		},
	}
}
