package detector

import (
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var (
	decimalAttrRe   = regexp.MustCompile(`w:w="\d+\.\d+"`)
	lowerHexColorRe = regexp.MustCompile(`w:color w:val="[0-9a-f]{6}"`)
	playFontRe      = regexp.MustCompile(`w:font[^>]+name="Play"`)
)

// GoogleDocs scores signals left behind by Google Docs exports. The two
// low-specificity patterns (lowercase hex colors, the symex namespace) only
// add weight once an independently strong signal has fired; on their own
// they would let a single ambiguous marker dominate the score.
func GoogleDocs(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	styles := b.Text(docx.Styles)
	fonts := b.Text(docx.FontTable)

	if containsAny(styles, `w:semiHidden w:val="1"`, `w:unhideWhenUsed w:val="1"`) {
		sc.hit(2.0, "Boolean attributes serialized as w:val='1' (Google Docs pattern)")
	}
	if decimalAttrRe.MatchString(styles) {
		sc.hit(1.5, "Decimal-style numeric attributes (e.g., w:w='0.0') found")
	}

	lowerHex := lowerHexColorRe.MatchString(styles)
	if lowerHex {
		sc.note("Lowercase 6-digit hex color codes (weak Google Docs pattern)")
	}
	hasSymex := containsAny(styles, "word/2015/wordml/symex", "w16se")
	if hasSymex {
		sc.note("Contains w16se:symex namespace (weak marker; Word may include)")
	}

	fontsHit := false
	if playFontRe.MatchString(fonts) || strings.Contains(fonts, "Play Bold") {
		sc.hit(3.0, "Contains Play / Play Bold fonts (Google bundle)")
		fontsHit = true
	}
	if containsAny(fonts, "Roboto", "Noto Sans", "Noto Serif") {
		sc.hit(1.5, "Contains Roboto/Noto font families (Google pattern)")
		fontsHit = true
	}

	// Conjunctive secondary signals: the weak patterns count only alongside
	// a font hit or an already-substantial score.
	if (lowerHex || hasSymex) && (fontsHit || sc.score >= 2.5) {
		if lowerHex {
			sc.score += 0.5
		}
		if hasSymex {
			sc.score += 0.5
		}
	}

	return sc.result(model.OriginGoogleDocs)
}
