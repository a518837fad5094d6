package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/provenance-cli/internal/model"
)

func sampleReport() *model.ProvenanceReport {
	return &model.ProvenanceReport{
		File: "sample.docx",
		Scores: model.ScoreBoard{
			model.OriginWord:        1.2,
			model.OriginLibreOffice: 8.5,
			model.OriginGoogleDocs:  0,
			model.OriginApplePages:  0,
			model.OriginPandoc:      0.5,
			model.OriginWordPad:     0,
			model.OriginTextEdit:    0,
		},
		Verdict: "Definitely LibreOffice export",
		Taint:   8.5,
		Evidence: map[model.Origin][]string{
			model.OriginWord:        {},
			model.OriginLibreOffice: {"Application tag indicates LibreOffice"},
			model.OriginGoogleDocs:  {},
			model.OriginApplePages:  {},
			model.OriginPandoc:      {"Empty author/modified fields (metadata stripped by Pandoc)"},
			model.OriginWordPad:     {},
			model.OriginTextEdit:    {},
		},
		WordVariants: model.VariantReport{
			Scores: map[model.Variant]float64{
				model.VariantWordWeb:     0.5,
				model.VariantWordDesktop: 0.5,
			},
			Evidence: map[model.Variant][]string{
				model.VariantWordWeb:     {"No revision property (Word Web minimal metadata)"},
				model.VariantWordDesktop: {"Compact run structure (Desktop Word)"},
			},
		},
		Speculative: model.SpeculativeReport{
			WordWeb: model.WordWebReport{Score: 0, Evidence: []string{}},
			OtherEngines: model.OtherEngineReport{
				Scores: map[model.Engine]float64{
					model.EngineWPS:          0,
					model.EngineOnlyOffice:   3.5,
					model.EngineAbiWord:      0,
					model.EngineCalligra:     0,
					model.EngineWordPad:      0,
					model.EngineSoftMaker:    0,
					model.EngineProgrammatic: 2,
				},
				Evidence: []model.EngineEvidence{
					{Engine: model.EngineOnlyOffice, Note: "Missing latentStyles section (common in OnlyOffice exports)"},
				},
			},
		},
	}
}

func TestConciseVerdict(t *testing.T) {
	cases := map[string]string{
		"Definitely LibreOffice export":                     "LibreOffice",
		"Likely Google Docs export or mixed":                "Google",
		"Pure Microsoft Word":                               "Microsoft",
		"Probably Microsoft Word (minor artifacts present)": "Microsoft",
		"Inconclusive / mixed":                              "Inconclusive",
		"":                                                  "",
	}
	for verdict, want := range cases {
		assert.Equal(t, want, ConciseVerdict(verdict), "verdict %q", verdict)
	}
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatText))
	assert.True(t, ValidFormat(FormatJSON))
	assert.True(t, ValidFormat(FormatYAML))
	assert.False(t, ValidFormat("xml"))
	assert.False(t, ValidFormat(""))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleReport(), Options{Format: "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRenderJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatJSON}))

	var decoded model.ProvenanceReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "sample.docx", decoded.File)
	assert.Equal(t, "Definitely LibreOffice export", decoded.Verdict)
	assert.Equal(t, 8.5, decoded.Scores[model.OriginLibreOffice])
	assert.Equal(t, 8.5, decoded.Taint)
}

func TestRenderJSONDeterministic(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, Render(&first, sampleReport(), Options{Format: FormatJSON}))
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		require.NoError(t, Render(&again, sampleReport(), Options{Format: FormatJSON}))
		require.Equal(t, first.String(), again.String())
	}
}

func TestRenderJSONConcise(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatJSON, Concise: true}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"verdict": "LibreOffice"}, decoded)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatYAML}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Definitely LibreOffice export", decoded["verdict"])
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatText}))
	out := buf.String()

	assert.Contains(t, out, "Word Variant Summary:")
	assert.Contains(t, out, "Overall verdict: Definitely LibreOffice export.")
	assert.Contains(t, out, "sample.docx")
	assert.Contains(t, out, "Verdict: Definitely LibreOffice export")
	assert.Contains(t, out, "Scores (0-10):")
	assert.Contains(t, out, "Taint (max non-Word): 8.5/10")
	assert.Contains(t, out, "LibreOffice evidence:")
	assert.Contains(t, out, "  - Application tag indicates LibreOffice")
	assert.Contains(t, out, "Other-engine (conjectural, not sample-based) heuristic hits:")
	assert.Contains(t, out, "onlyoffice")
	assert.Contains(t, out, "Word variant (Web vs Desktop) analysis:")

	// Empty origins get a score row but no evidence block.
	assert.Contains(t, out, "Google Docs")
	assert.NotContains(t, out, "Google Docs evidence:")
	// Speculative WordWeb at zero stays out of the text shape.
	assert.NotContains(t, out, "Speculative Word Web/SharePoint score")
}

func TestRenderTextScoreOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatText}))
	// Score rows follow the catalogue order, Word first.
	var rows []string
	inScores := false
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "Scores (0-10):"):
			inScores = true
		case inScores && strings.HasPrefix(line, "  - "):
			rows = append(rows, strings.TrimSpace(strings.SplitN(line[4:], ":", 2)[0]))
		case inScores:
			inScores = false
		}
	}

	want := make([]string, 0, len(model.Origins))
	for _, o := range model.Origins {
		want = append(want, o.Label())
	}
	assert.Equal(t, want, rows)
}

func TestRenderTextConcise(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: FormatText, Concise: true}))
	assert.Equal(t, "sample.docx: LibreOffice\n", buf.String())
}

func TestSummaryWithoutVariantSignal(t *testing.T) {
	r := sampleReport()
	r.WordVariants.Scores = map[model.Variant]float64{}

	s := Summary(r)
	assert.Contains(t, s, "Overall verdict: Definitely LibreOffice export.")
	assert.NotContains(t, s, "most closely matches")
}

func TestSummaryNamesVariant(t *testing.T) {
	r := sampleReport()
	r.WordVariants.Scores[model.VariantWordDesktop] = 6

	s := Summary(r)
	assert.Contains(t, s, "**Word Desktop** patterns")
}
