package detector

import (
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

// LibreOffice scores signals left behind by LibreOffice Writer exports.
func LibreOffice(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	if app := b.Tree(docx.AppProps).First("Application"); app != nil {
		if strings.Contains(strings.ToLower(app.Text), "libreoffice") {
			sc.hit(6, "Application tag indicates LibreOffice")
		}
	}

	fonts := b.Text(docx.FontTable)
	if containsAny(fonts, "Liberation", "Noto", "Lohit") {
		sc.hit(3, "LibreOffice font families present (Liberation/Noto/Lohit)")
	}
	if fonts != "" && !strings.Contains(fonts, "<w:panose1") && !strings.Contains(fonts, "<w:sig") {
		sc.note("No <w:panose1> or <w:sig> font fingerprints (often present in Word)")
	}

	if strings.Contains(b.Text(docx.Document), "<w:formProt") {
		sc.hit(3, "Found <w:formProt> (LibreOffice hallmark)")
	}

	styles := b.Text(docx.Styles)
	if styles != "" {
		if hasLibreOfficeStyleNames(b.Tree(docx.Styles)) {
			sc.hit(3, "Found LibreOffice-style names (Text Body / Standard)")
		}
		if containsAny(styles, "Liberation Sans", "Liberation Serif", "Noto Sans", "Lohit") {
			sc.hit(3, "LibreOffice font families referenced in styles")
		}
	}

	if strings.Contains(b.Text(docx.Settings), "<w:autoHyphenation") {
		sc.hit(0.5, "Contains <w:autoHyphenation> (possible LO default)")
	}

	if containsAny(b.Text(docx.ContentTypes), "image/png", "image/jpeg") {
		sc.hit(1, "Lists extra image MIME types (often seen in LO)")
	}

	custom := b.Text(docx.CustomProps)
	if containsAny(custom, "<vt:bool>0</vt:bool>", "<vt:bool>1</vt:bool>") {
		sc.hit(0.2, "Boolean serialization uses numeric form (LibreOffice style)")
	}
	if strings.Contains(custom, "vt:lpwstr") && strings.Contains(custom, "$Linux_") {
		sc.hit(0.3, "AppVersion property includes LibreOffice/Linux signature")
	}

	core := b.Text(docx.CoreProps)
	if strings.Contains(core, "schemas.openxmlformats.org/officeDocument/2006/bibliography") &&
		!strings.Contains(core, "schemas.microsoft.com/office") {
		sc.hit(0.4, "Open bibliography schema without Microsoft URIs (LO-style rewrite)")
	}

	return sc.result(model.OriginLibreOffice)
}

// hasLibreOfficeStyleNames checks the parsed style table for LO's renamed
// built-in styles.
func hasLibreOfficeStyleNames(styles *docx.Node) bool {
	if styles == nil {
		return false
	}
	for _, style := range styles.FindAll("style") {
		switch strings.ToLower(style.Attr("styleId")) {
		case "text body", "standard", "heading", "index":
			return true
		}
	}
	return false
}
