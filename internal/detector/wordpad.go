package detector

import (
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

// WordPad scores signals of WordPad-generated packages. WordPad omits the
// theme, fontTable, settings, and most docProps, and writes a near-empty
// style table.
func WordPad(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	contentTypes := b.Text(docx.ContentTypes)
	hasTheme := strings.Contains(contentTypes, "/word/theme/theme1.xml")
	hasSettings := strings.Contains(contentTypes, "/word/settings.xml")
	hasFonts := strings.Contains(contentTypes, "/word/fontTable.xml")
	if !hasTheme && !hasSettings && !hasFonts {
		sc.hit(3, "Content_Types.xml lacks theme/settings/fontTable overrides (WordPad pattern)")
	}

	styles := b.Text(docx.Styles)
	if lines := countLines(styles); lines > 0 && lines < 10 && strings.Contains(styles, `<w:styleId="Normal"`) {
		sc.hit(3, "Tiny styles.xml with only 'Normal' style (WordPad hallmark)")
	}

	doc := b.Text(docx.Document)
	if strings.Contains(doc, "<w:document xmlns:w=") &&
		!strings.Contains(doc, "xmlns:r=") &&
		!strings.Contains(doc, "xmlns:mc=") {
		sc.hit(3, "Document XML uses only xmlns:w (minimal namespace set typical of WordPad)")
	}

	if b.Text(docx.AppProps) == "" && b.Text(docx.CoreProps) == "" {
		sc.hit(1, "No app/core properties (WordPad omits docProps entirely)")
	}

	return sc.result(model.OriginWordPad)
}
