package detector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tblCellSpacingRe = regexp.MustCompile(`<w:tblCellSpacing[^>]*w:w="(\d+)"`)
	tblFixedLayoutRe = regexp.MustCompile(`<w:tblLayout[^>]*w:type="fixed"`)
	tblLookBitmaskRe = regexp.MustCompile(`<w:tblLook[^>]*w:val="0[4-7][A-F0-9]{2}"`)
	tblWBeforeStyle  = regexp.MustCompile(`<w:tblW[^>]*>\s*<w:tblStyle`)
	bordersBeforeLay = regexp.MustCompile(`<w:tblBorders[^>]*>\s*<w:tblLayout`)
	twipAttrRe       = regexp.MustCompile(`w:w="(\d+)"`)
	prChangeRe       = regexp.MustCompile(`<w:(tbl|tr|tc|p|r)PrChange`)
)

// onlyOfficeTableSignals scores OnlyOffice's table and section encoding
// idiosyncrasies in the document body: fixed-layout defaults, bitmask flag
// irregularities, and unit-rounding artifacts from its mm-based internals.
func onlyOfficeTableSignals(body string) (float64, []string) {
	sc := newScorecard()

	// OnlyOffice stores table metrics in mm and converts twice on export,
	// leaving cell spacing near multiples of 1134 twips (2 cm).
	for _, m := range tblCellSpacingRe.FindAllStringSubmatch(body, -1) {
		if val, err := strconv.Atoi(m[1]); err == nil && val%1134 < 10 {
			sc.hit(2, "Table cell spacing matches doubled mm/twip conversion (OnlyOffice).")
			break
		}
	}

	if n := len(tblFixedLayoutRe.FindAllString(body, -1)); n >= 3 {
		sc.hit(2, fmt.Sprintf("%d tables forced to fixed layout (OnlyOffice default).", n))
	}

	if tblLookBitmaskRe.MatchString(body) {
		sc.hit(2, "Nonstandard <w:tblLook> bitmask (OnlyOffice bit flag composition).")
	}

	if tblWBeforeStyle.MatchString(body) {
		sc.hit(1, "<w:tblW> precedes <w:tblStyle> (OnlyOffice ordering).")
	}
	if bordersBeforeLay.MatchString(body) {
		sc.hit(1, "<w:tblBorders> precedes <w:tblLayout> (OnlyOffice ordering).")
	}

	for _, m := range twipAttrRe.FindAllStringSubmatch(body, -1) {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if v%5 != 0 && v%10 != 0 {
			sc.hit(1, fmt.Sprintf("Non-rounded twip %d from float-to-int mm rounding (OnlyOffice).", v))
			break
		}
	}

	if strings.Contains(body, "<w:tblLayout") && !strings.Contains(body, "mc:Ignorable") {
		sc.hit(1, "tblLayout present but missing mc:Ignorable (OnlyOffice omission).")
	}

	if prChangeRe.MatchString(body) && !strings.Contains(body, "<w:trackChange") {
		sc.hit(2, "Inline *PrChange blocks without trackChange (OnlyOffice-style revisions).")
	}

	if strings.Contains(body, `<w:numId w:val="0"`) && !strings.Contains(body, "<w:abstractNumId") {
		sc.hit(1, "<w:numId w:val='0'> without abstractNum (OnlyOffice numbering map leak).")
	}
	if strings.Contains(body, "<w:lvlOverride") && !strings.Contains(body, "<w:startOverride") {
		sc.hit(1, "<w:lvlOverride> without startOverride (OnlyOffice list export artifact).")
	}

	if strings.Contains(body, "<w:headerReference") && !strings.Contains(body, "<w:evenAndOddHeaders") {
		sc.hit(1, "Header refs but no evenAndOddHeaders: pre-v5 OnlyOffice schema.")
	}
	if strings.Contains(body, "<w:sectPr") && !strings.Contains(body, "<w:titlePg") {
		sc.hit(1, "Sections present but missing titlePg: older OnlyOffice export (<v5).")
	}

	if itemPropsRe.MatchString(body) || oformRe.MatchString(body) {
		sc.hit(2, "References to OForm/Glossary/JSA: OnlyOffice extensions.")
	}

	if !strings.Contains(body, "xmlns:wps") && strings.Contains(body, "drawing") {
		sc.hit(1, "Missing wps/wpg drawing namespaces (OnlyOffice omission).")
	}

	return clamp(sc.score), sc.evidence
}
