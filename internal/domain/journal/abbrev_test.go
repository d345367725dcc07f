package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Abbreviate(t *testing.T) {
	table := Default()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "sciencedirect prefix", label: "ScienceDirect Publication: Medical Image Analysis", want: "MedIA"},
		{name: "bare journal name", label: "Neurocomputing", want: "NC"},
		{name: "ieee", label: "IEEE Transactions on Medical Imaging", want: "TMI"},
		{name: "toc suffix", label: "IEEE Transactions on Image Processing - new TOC", want: "TIP"},
		{name: "arxiv", label: "cs.CV updates on arXiv.org", want: "arXiv-CV"},
		{name: "wiley", label: "Wiley: Medical Physics: Table of Contents", want: "MP"},
		{name: "unknown short name kept", label: "Radiology", want: "Radiology"},
		{name: "unknown prefixed name truncated after cleaning", label: "ScienceDirect Publication: Journal of Hepatology", want: "Journal of Hepa"},
		{name: "empty", label: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Abbreviate(tt.label))
		})
	}
}

func TestTable_Abbreviate_TwentyCharFallback(t *testing.T) {
	label := "Journal of Testingss"
	assert.Len(t, []rune(label), 20)

	got := Default().Abbreviate(label)

	assert.Equal(t, "Journal of Test", got)
	assert.Len(t, []rune(got), 15)
}

func TestWithOverrides(t *testing.T) {
	table := WithOverrides(map[string]string{
		"ScienceDirect Publication: Journal of Hepatology": "JHEP",
		"Neurocomputing": "NCOM",
		"   ":            "ignored",
		"Empty Code":     " ",
	})

	assert.Equal(t, "JHEP", table.Abbreviate("Journal of Hepatology"))
	assert.Equal(t, "NCOM", table.Abbreviate("ScienceDirect Publication: Neurocomputing"))
	assert.Equal(t, "Empty Code", table.Abbreviate("Empty Code"))
	assert.Equal(t, Default().Len()+1, table.Len())

	// the built-in table is not affected by overrides
	assert.Equal(t, "NC", Default().Abbreviate("Neurocomputing"))
}

func TestTable_Lookup(t *testing.T) {
	table := Default()

	code, ok := table.Lookup("Pattern Recognition")
	assert.True(t, ok)
	assert.Equal(t, "PR", code)

	_, ok = table.Lookup("ScienceDirect Publication: Pattern Recognition")
	assert.False(t, ok, "lookup expects cleaned names")
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Information Fusion", Clean("ScienceDirect Publication: Information Fusion"))
	assert.Equal(t, "Medical Physics", Clean("Medical Physics - new TOC"))
	assert.Equal(t, "NeuroImage", Clean("  NeuroImage  "))
}
