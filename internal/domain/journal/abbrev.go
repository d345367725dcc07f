// Package journal maps feed and journal names to the short codes shown as
// title prefixes in the merged feed.
//
// A Table is built once at startup and is read-only afterwards. The package
// never exposes the underlying map, so no caller can mutate it at runtime.
package journal

import (
	"strings"

	"paper-feed/internal/utils/text"
)

const (
	// tocSuffix is appended by some publishers to their feed titles.
	tocSuffix = " - new TOC"
	// publisherPrefix is the boilerplate ScienceDirect puts in front of every journal name.
	publisherPrefix = "ScienceDirect Publication: "
	// fallbackLength is the rune length used when a name has no known code.
	fallbackLength = 15
)

// builtin holds the known journal names, already stripped of tocSuffix and
// publisherPrefix.
var builtin = map[string]string{
	// Elsevier / ScienceDirect
	"Medical Image Analysis":                              "MedIA",
	"Pattern Recognition":                                 "PR",
	"Knowledge-Based Systems":                             "KBS",
	"Neural Networks":                                     "NN",
	"Neurocomputing":                                      "NC",
	"Computers in Biology and Medicine":                   "CBM",
	"Biomedical Signal Processing and Control":            "BSPC",
	"Artificial Intelligence in Medicine":                 "AIM",
	"Engineering Applications of Artificial Intelligence": "EAAI",
	"Expert Systems with Applications":                    "ESWA",
	"Information Fusion":                                  "IF",
	"NeuroImage":                                          "NI",

	// IEEE
	"IEEE Transactions on Medical Imaging":                           "TMI",
	"IEEE Transactions on Pattern Analysis and Machine Intelligence": "TPAMI",
	"IEEE Transactions on Image Processing":                          "TIP",
	"IEEE Transactions on Biomedical Engineering":                    "TBME",
	"IEEE Journal of Biomedical and Health Informatics":              "JBHI",

	// Wiley
	"Wiley: Medical Physics: Table of Contents": "MP",

	// arXiv
	"cs.CV updates on arXiv.org":   "arXiv-CV",
	"eess.IV updates on arXiv.org": "arXiv-IV",
	"cs.LG updates on arXiv.org":   "arXiv-ML",
}

// Table is an immutable journal-name to short-code mapping.
type Table struct {
	codes map[string]string
}

// Default returns the built-in table.
func Default() Table {
	return WithOverrides(nil)
}

// WithOverrides returns a new table holding the built-in codes plus the
// given overrides. Override keys are cleaned the same way lookups are, so
// both "ScienceDirect Publication: Neurocomputing" and "Neurocomputing"
// address the same entry. Empty keys or codes are ignored.
func WithOverrides(overrides map[string]string) Table {
	codes := make(map[string]string, len(builtin)+len(overrides))
	for name, code := range builtin {
		codes[name] = code
	}
	for name, code := range overrides {
		name = Clean(name)
		code = strings.TrimSpace(code)
		if name == "" || code == "" {
			continue
		}
		codes[name] = code
	}
	return Table{codes: codes}
}

// Len returns the number of known names.
func (t Table) Len() int {
	return len(t.codes)
}

// Lookup returns the code for an already cleaned name.
func (t Table) Lookup(name string) (string, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// Abbreviate returns the display code for a source label.
// The label is cleaned, looked up, and when unknown truncated to its first
// 15 characters.
func (t Table) Abbreviate(sourceLabel string) string {
	name := Clean(sourceLabel)
	if code, ok := t.Lookup(name); ok {
		return code
	}
	return text.TruncateRunes(name, fallbackLength)
}

// Clean strips the table-of-contents suffix and the publisher prefix from a
// feed title.
func Clean(sourceLabel string) string {
	name := strings.TrimSpace(sourceLabel)
	name = strings.TrimSuffix(name, tocSuffix)
	name = strings.TrimPrefix(name, publisherPrefix)
	return strings.TrimSpace(name)
}
