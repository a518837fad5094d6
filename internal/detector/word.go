package detector

import (
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var headingCascadeRe = regexp.MustCompile(`Heading1|Heading2|Heading3`)

// competitorThreshold gates the "no competing explanation" boost: when the
// three strongest non-Word detectors all score below it, the document
// defaults toward Word.
const competitorThreshold = 4.0

// Word scores Microsoft Word confidence. Unlike the other detectors it
// consults the already-computed LibreOffice, Google Docs, and Apple Pages
// scores, so the pipeline must run it last.
func Word(b *docx.PartBundle, loScore, gdScore, pgScore float64) model.DetectorResult {
	sc := newScorecard()

	if app := b.Tree(docx.AppProps).First("Application"); app != nil {
		if strings.Contains(strings.ToLower(app.Text), "word") {
			sc.hit(4.0, "Application tag indicates Microsoft Word")
		}
	}

	theme := b.Text(docx.Theme)
	if strings.Contains(theme, "xmlns:thm15") {
		sc.hit(1.5, "Theme includes thm15 namespace (common in Word)")
	}
	if strings.Contains(theme, "<a:sysClr") {
		sc.hit(1.0, "Theme uses <a:sysClr> (Windows system color mapping)")
	}

	fonts := b.Text(docx.FontTable)
	if strings.Contains(fonts, "<w:panose1") || strings.Contains(fonts, "<w:sig") {
		sc.hit(1.0, "Font table includes <w:panose1> / <w:sig> fingerprints (Word)")
	}

	if headingCascadeRe.MatchString(b.Text(docx.Styles)) {
		sc.hit(0.8, "Heading1-3 style cascade present (Word defaults)")
	}

	if loScore < competitorThreshold && gdScore < competitorThreshold && pgScore < competitorThreshold {
		sc.hit(1.2, "No strong non-Word indicators (boosting Word confidence)")
	}

	// Generation libraries such as python-docx write the [Content_Types].xml
	// overrides in a canonical order that lists every docProps part before
	// any word part; native Word interleaves them. The only negative
	// contribution in the suite; the clamp keeps the score at zero or above.
	if generatedOverrideOrder(b.Tree(docx.ContentTypes)) {
		sc.hit(-0.3, "Override order in [Content_Types].xml shows docProps before /word/document.xml "+
			"(python-docx generation pattern; small deduction)")
	}

	return sc.result(model.OriginWord)
}

// generatedOverrideOrder reports whether the manifest lists all /docProps/
// overrides strictly before the first /word/ override.
func generatedOverrideOrder(contentTypes *docx.Node) bool {
	if contentTypes == nil {
		return false
	}

	var overrides []string
	hasDocument := false
	for _, child := range contentTypes.Children {
		if child.Tag != "Override" {
			continue
		}
		part := child.Attr("PartName")
		overrides = append(overrides, part)
		if part == "/word/document.xml" {
			hasDocument = true
		}
	}
	if !hasDocument {
		return false
	}

	docPropsLast := -1
	wordFirst := -1
	for i, part := range overrides {
		if strings.HasPrefix(part, "/docProps/") {
			docPropsLast = i
		}
		if wordFirst < 0 && strings.HasPrefix(part, "/word/") {
			wordFirst = i
		}
	}
	return docPropsLast >= 0 && wordFirst >= 0 && docPropsLast < wordFirst
}
