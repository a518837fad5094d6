package detector

import (
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

// TextEdit scores signals of Apple TextEdit exports. TextEdit keeps the
// theme but strips nearly everything else, and rewrites the core properties
// with its own serializer.
func TextEdit(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	contentTypes := b.Text(docx.ContentTypes)
	app := b.Text(docx.AppProps)
	core := b.Text(docx.CoreProps)
	doc := b.Text(docx.Document)
	theme := b.Text(docx.Theme)

	if strings.Contains(contentTypes, "/word/theme/theme1.xml") &&
		!containsAny(contentTypes,
			"/word/styles.xml", "/word/settings.xml", "/word/fontTable.xml", "/word/numbering.xml") {
		sc.hit(3, "Has theme but lacks styles/settings/fontTable/numbering (TextEdit pattern)")
	}

	if strings.HasPrefix(strings.TrimSpace(app), "<Properties") && !strings.Contains(app, "<Application>") {
		sc.hit(3, "app.xml is empty <Properties> with no <Application> tag (TextEdit hallmark)")
	}

	if strings.Contains(core, "<cp:coreProperties") &&
		strings.Count(core, "<dc:") == 1 &&
		!strings.Contains(core, "<lastModifiedBy>") &&
		!strings.Contains(core, "<revision>") {
		sc.hit(2, "core.xml uses cp: prefix and only dc:creator (TextEdit serialization)")
	}

	if strings.Contains(doc, "xmlns:w=") &&
		!containsAny(doc, "xmlns:mc=", "xmlns:w14=", "xmlns:w15=", "xmlns:w16=") &&
		strings.Contains(doc, `<w:rFonts w:ascii="Times"`) {
		sc.hit(2, "document.xml limited to base namespaces and hardcoded Times font")
	}

	if strings.Contains(theme, `name="Default Theme"`) {
		sc.hit(1, "Theme1.xml uses name='Default Theme' (TextEdit theme rewrite)")
	}

	if !strings.Contains(contentTypes, "/docProps/custom.xml") &&
		!strings.Contains(contentTypes, "/customXml/") &&
		!strings.Contains(app, "<Template>") {
		sc.hit(1, "No customXml or extended properties (TextEdit metadata purge)")
	}

	return sc.result(model.OriginTextEdit)
}
