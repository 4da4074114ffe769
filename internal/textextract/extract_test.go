package textextract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdown_StripsMarkup(t *testing.T) {
	source := []byte("# Oncology Report\n\nPatient shows **severe** symptoms.\n\n- malignant tumor\n- follow-up needed\n")
	out := Markdown(source)
	require.Contains(t, out, "Oncology Report")
	require.Contains(t, out, "severe")
	require.Contains(t, out, "malignant tumor")
	require.NotContains(t, out, "#")
	require.NotContains(t, out, "**")
	require.NotContains(t, out, "- ")
}

func TestFromFile_PlainText(t *testing.T) {
	out := FromFile("report.txt", []byte("  normal checkup  \n"))
	require.Equal(t, "normal checkup", out)
}

func TestFromFile_MarkdownByExtension(t *testing.T) {
	out := FromFile("report.md", []byte("*severe* case"))
	require.Equal(t, "severe case", out)
}
