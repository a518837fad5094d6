package detector

import (
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var appleMarkerRe = regexp.MustCompile(`\bApple\b|\bPages\b`)

// ApplePages scores signals left behind by Apple Pages exports.
func ApplePages(b *docx.PartBundle) model.DetectorResult {
	sc := newScorecard()

	theme := b.Text(docx.Theme)
	if strings.Contains(theme, "Helvetica Neue") {
		sc.hit(4.5, "Contains Helvetica Neue (Apple Pages default font)")
	}
	if strings.Contains(theme, "<a:theme") && strings.Contains(theme, "Office Theme") &&
		!strings.Contains(theme, "xmlns:thm15") {
		sc.hit(1.5, "Missing thm15 theme namespace (Pages-style theme)")
	}
	if strings.Contains(theme, "<a:srgbClr") && !strings.Contains(theme, "<a:sysClr") {
		sc.hit(1.0, "Theme uses only <a:srgbClr> (no <a:sysClr>)")
	}

	// Weak indicator, counted only once the theme signals above add up.
	if !strings.Contains(theme, "<a:objectDefaults>") || !strings.Contains(theme, "<a:extLst>") {
		if sc.score >= 1.5 {
			sc.hit(0.5, "No <a:objectDefaults> or <a:extLst> (weak Pages indicator)")
		}
	}

	if appleMarkerRe.MatchString(b.Text(docx.AppProps) + b.Text(docx.CoreProps)) {
		sc.hit(3.5, "Explicit Apple/Pages marker in metadata")
	}

	return sc.result(model.OriginApplePages)
}
