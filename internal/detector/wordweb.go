package detector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var sharepointURLRe = regexp.MustCompile(`(?i)https://.*sharepoint\.com`)

// WordWebSharePoint is the speculative probe for Word 365 web-editing and
// SharePoint round-trip artifacts. It scans the raw archive entry list in
// addition to the part bundle; advisory only.
func WordWebSharePoint(b *docx.PartBundle) model.WordWebReport {
	sc := newScorecard()

	for _, name := range b.Entries {
		if strings.HasPrefix(name, "webextensions/") {
			sc.hit(3, fmt.Sprintf("Contains %s (Word 365 Web add-in structure)", name))
		}
		if strings.Contains(strings.ToLower(name), "sharepoint.com") {
			sc.hit(5, fmt.Sprintf("References SharePoint URL in relationships: %s", name))
		}
	}

	core := b.Text(docx.CoreProps)
	if sharepointURLRe.MatchString(core) {
		sc.hit(4, "SharePoint reference found in core properties")
	}
	if strings.Contains(core, "Microsoft Office Word") {
		sc.hit(1, "Application tag suggests Office Online editor")
	}

	return model.WordWebReport{Score: clamp(sc.score), Evidence: sc.evidence}
}
