package detector

import (
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var (
	pandocMentionRe = regexp.MustCompile(`(?i)pandoc`)
	sourceCodeRe    = regexp.MustCompile(`styleId="SourceCode"|styleId="VerbatimChar"`)
	pygmentsTokRe   = regexp.MustCompile(`styleId="KeywordTok"|styleId="StringTok"|styleId="CommentTok"`)
	emptyAuthorRe   = regexp.MustCompile(`<dc:creator\s*/>|<cp:lastModifiedBy>\s*</cp:lastModifiedBy>`)
)

// office2007Palette is the classic Office 2007 accent palette Pandoc ships
// in its default theme.
var office2007Palette = []string{"4F81BD", "C0504D", "9BBB59", "8064A2", "4BACC6", "F79646"}

// Pandoc scores signals of Pandoc or similar programmatic DOCX generation.
func Pandoc(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	app := b.Text(docx.AppProps)
	core := b.Text(docx.CoreProps)
	styles := b.Text(docx.Styles)
	theme := b.Text(docx.Theme)
	doc := b.Text(docx.Document)
	fonts := b.Text(docx.FontTable)

	if pandocMentionRe.MatchString(app + core) {
		sc.hit(8, "Application or core properties mention Pandoc")
	}

	// Programmatic minimalism: app part exists but carries no tool identity.
	if strings.TrimSpace(app) != "" && !containsAny(app, "Application", "AppVersion", "Company") {
		sc.hit(1.5, "App properties minimal (likely programmatic generation)")
	}

	if sourceCodeRe.MatchString(styles) {
		sc.hit(2.5, "Contains 'SourceCode' / 'VerbatimChar' styles (Pandoc hallmark)")
	}
	if pygmentsTokRe.MatchString(styles) {
		sc.hit(2.0, "Contains Pygments token styles (Pandoc code highlighting)")
	}

	if !strings.Contains(theme, "xmlns:thm15") && strings.Contains(theme, "<a:srgbClr") &&
		!strings.Contains(theme, "<a:sysClr") {
		sc.hit(1.5, "Theme lacks thm15 namespace, uses only sRGB colors (Pandoc minimal theme)")
	}

	if containsAll(fonts, "Calibri", "Cambria") && !containsAny(fonts, "Aptos", "Liberation", "Roboto") {
		sc.hit(1.0, "Generic Calibri/Cambria font table (typical Pandoc default)")
	}

	if !strings.Contains(doc, "rsidR") && !strings.Contains(doc, "mc:Ignorable") {
		sc.hit(1.0, "Document XML lacks Word-specific rsid and mc:Ignorable attributes")
	}

	web := b.Text(docx.WebSettings)
	if strings.Contains(web, "<w:doNotSaveAsSingleFile") && !strings.Contains(web, "optimizeForBrowser") {
		sc.hit(0.8, "Contains <w:doNotSaveAsSingleFile> without optimizeForBrowser (Pandoc default)")
	}

	if !strings.Contains(styles, "<w:latentStyles") && strings.Contains(styles, `<w:styleId="Normal"`) {
		sc.hit(0.8, "Missing <w:latentStyles> (common in Pandoc-generated DOCX)")
	}

	// Round-trip fidelity heuristics on the body structure.
	if strings.Count(doc, "<w:r>") < 2*strings.Count(doc, "<w:p>") {
		sc.hit(0.8, "Low <w:r>/<w:p> ratio (flattened run structure typical of Pandoc)")
	}
	if strings.Contains(doc, "<w:pPr>") && !containsAny(doc, "w:spacing", "w:ind", "w:contextualSpacing") {
		sc.hit(0.5, "Paragraph properties minimal (no spacing/indent attributes)")
	}
	if strings.Contains(fonts, "Lucida") && !strings.Contains(fonts, "Cambria Math") {
		sc.hit(0.5, "Math font substitution (Lucida instead of Cambria Math)")
	}
	if containsAny(theme, office2007Palette...) {
		sc.hit(0.5, "Classic Office 2007 color palette (Pandoc default theme)")
	}
	if emptyAuthorRe.MatchString(core) {
		sc.hit(0.5, "Empty author/modified fields (metadata stripped by Pandoc)")
	}

	return sc.result(model.OriginPandoc)
}
