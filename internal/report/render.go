// Package report renders a ProvenanceReport for humans and machines. The
// analysis core only defines the record; every output shape lives here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/provenance-cli/internal/model"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options selects the rendering shape.
type Options struct {
	Format  string
	Concise bool
}

// ValidFormat reports whether the format name is renderable.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Render writes the report to w in the requested shape.
func Render(w io.Writer, r *model.ProvenanceReport, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, r, opts.Concise)
	case FormatYAML:
		return renderYAML(w, r, opts.Concise)
	case FormatText, "":
		return renderText(w, r, opts.Concise)
	default:
		return eris.Errorf("report: unsupported format %q", opts.Format)
	}
}

// ConciseVerdict reduces a verdict label to its load-bearing word: the
// origin name for attribution verdicts, the leading word otherwise.
func ConciseVerdict(verdict string) string {
	words := strings.Fields(verdict)
	if len(words) < 2 || words[1] == "/" {
		if len(words) == 0 {
			return ""
		}
		return words[0]
	}
	return words[1]
}

// Summary returns a short human-friendly paragraph for the report.
func Summary(r *model.ProvenanceReport) string {
	lines := []string{fmt.Sprintf("Overall verdict: %s.", r.Verdict)}
	if v := r.WordVariants.LikelyVariant(); v != "" {
		lines = append(lines, fmt.Sprintf(
			"Within Microsoft Word, this document most closely matches **%s** patterns.", v.Label()))
	}
	lines = append(lines, "Heuristics examined include font defaults, XML namespaces, and application metadata.")
	return strings.Join(lines, " ")
}

func renderJSON(w io.Writer, r *model.ProvenanceReport, concise bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if concise {
		return eris.Wrap(enc.Encode(map[string]string{
			"verdict": ConciseVerdict(r.Verdict),
		}), "report: encode json")
	}
	return eris.Wrap(enc.Encode(r), "report: encode json")
}

func renderYAML(w io.Writer, r *model.ProvenanceReport, concise bool) error {
	var doc any = r
	if concise {
		doc = map[string]string{"verdict": ConciseVerdict(r.Verdict)}
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return eris.Wrap(err, "report: marshal yaml")
	}
	_, err = w.Write(raw)
	return eris.Wrap(err, "report: write yaml")
}

func renderText(w io.Writer, r *model.ProvenanceReport, concise bool) error {
	if concise {
		_, err := fmt.Fprintf(w, "%s: %s\n", r.File, ConciseVerdict(r.Verdict))
		return eris.Wrap(err, "report: write text")
	}

	var sb strings.Builder

	sb.WriteString("Word Variant Summary:\n")
	sb.WriteString(Summary(r))
	sb.WriteString("\n\n")

	if r.File != "" {
		fmt.Fprintf(&sb, "%s\n", r.File)
	}
	fmt.Fprintf(&sb, "Verdict: %s\n", r.Verdict)
	sb.WriteString("Scores (0-10):\n")
	for _, o := range model.Origins {
		fmt.Fprintf(&sb, "  - %-21s: %.1f\n", o.Label(), r.Scores[o])
	}
	fmt.Fprintf(&sb, "\nTaint (max non-Word): %.1f/10\n\n", r.Taint)

	for _, o := range model.Origins {
		evs := r.Evidence[o]
		if len(evs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s evidence:\n", o.Label())
		for _, e := range evs {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
		sb.WriteString("\n")
	}

	if ww := r.Speculative.WordWeb; ww.Score > 0 {
		fmt.Fprintf(&sb, "Speculative Word Web/SharePoint score: %.1f\n", ww.Score)
		for _, e := range ww.Evidence {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
		sb.WriteString("\n")
	}

	if other := r.Speculative.OtherEngines; len(other.Scores) > 0 {
		sb.WriteString("Other-engine (conjectural, not sample-based) heuristic hits:\n")
		for _, e := range model.Engines {
			if other.Scores[e] >= 3 {
				fmt.Fprintf(&sb, "  - %-12s: %.1f\n", e, other.Scores[e])
			}
		}
		for _, ev := range other.Evidence {
			fmt.Fprintf(&sb, "    * %s: %s\n", ev.Engine.Label(), ev.Note)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Word variant (Web vs Desktop) analysis:\n")
	for _, v := range model.Variants {
		if r.WordVariants.Scores[v] > 0 {
			fmt.Fprintf(&sb, "  - %-12s: %.1f\n", v, r.WordVariants.Scores[v])
		}
	}
	for _, v := range model.Variants {
		for _, e := range r.WordVariants.Evidence[v] {
			fmt.Fprintf(&sb, "    * %s: %s\n", v, e)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return eris.Wrap(err, "report: write text")
}
