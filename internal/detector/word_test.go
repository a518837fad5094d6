package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/provenance-cli/internal/docx"
)

func TestWordStrongSignals(t *testing.T) {
	b := bundle(map[docx.PartName]string{
		docx.AppProps:  `<Properties><Application>Microsoft Office Word</Application></Properties>`,
		docx.Theme:     `<a:theme xmlns:thm15="x"><a:sysClr val="windowText"/></a:theme>`,
		docx.FontTable: `<w:fonts><w:font w:name="Calibri"><w:panose1 w:val="x"/></w:font></w:fonts>`,
		docx.Styles:    `<w:styles><w:style w:styleId="Heading1"/></w:styles>`,
	})

	res := Word(b, 0, 0, 0)
	// 4.0 app + 1.5 thm15 + 1.0 sysClr + 1.0 panose + 0.8 headings + 1.2 boost.
	assert.InDelta(t, 9.5, res.Score, 1e-9)
	assert.Equal(t, "Application tag indicates Microsoft Word", res.Evidence[0])
}

func TestWordCompetitorBoost(t *testing.T) {
	b := bundle(nil)

	boosted := Word(b, 3.9, 0, 0)
	assert.InDelta(t, 1.2, boosted.Score, 1e-9)
	assert.Contains(t, boosted.Evidence, "No strong non-Word indicators (boosting Word confidence)")

	// One competitor at the threshold suppresses the boost.
	suppressed := Word(b, 4.0, 0, 0)
	assert.Zero(t, suppressed.Score)
	assert.Empty(t, suppressed.Evidence)
}

func TestWordGeneratedManifestDeduction(t *testing.T) {
	contentTypes := `<Types xmlns="ct">
		<Override PartName="/docProps/core.xml" ContentType="a"/>
		<Override PartName="/docProps/app.xml" ContentType="b"/>
		<Override PartName="/word/document.xml" ContentType="c"/>
		<Override PartName="/word/styles.xml" ContentType="d"/>
	</Types>`

	b := bundle(map[docx.PartName]string{docx.ContentTypes: contentTypes})

	res := Word(b, 5, 5, 5) // competitors high: no boost
	// The deduction is the suite's only negative weight and must clamp at zero.
	assert.Zero(t, res.Score)
	require.Len(t, res.Evidence, 1)
	assert.Contains(t, res.Evidence[0], "docProps before /word/document.xml")

	withBoost := Word(b, 0, 0, 0)
	assert.InDelta(t, 0.9, withBoost.Score, 1e-9)
}

func TestWordManifestOrderNativeInterleave(t *testing.T) {
	// Word itself interleaves docProps and word overrides: no deduction.
	contentTypes := `<Types xmlns="ct">
		<Override PartName="/word/document.xml" ContentType="c"/>
		<Override PartName="/docProps/core.xml" ContentType="a"/>
	</Types>`

	b := bundle(map[docx.PartName]string{docx.ContentTypes: contentTypes})
	res := Word(b, 5, 5, 5)
	assert.Zero(t, res.Score)
	assert.Empty(t, res.Evidence)
}

func TestWordManifestWithoutDocumentOverride(t *testing.T) {
	contentTypes := `<Types xmlns="ct">
		<Override PartName="/docProps/core.xml" ContentType="a"/>
		<Override PartName="/word/styles.xml" ContentType="d"/>
	</Types>`

	b := bundle(map[docx.PartName]string{docx.ContentTypes: contentTypes})
	res := Word(b, 5, 5, 5)
	assert.Zero(t, res.Score)
	assert.Empty(t, res.Evidence)
}
