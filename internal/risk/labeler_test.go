package risk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabel_KeywordMembership(t *testing.T) {
	require.Equal(t, 0, Label("normal checkup"))
	require.Equal(t, 1, Label("severe malignant tumor"))
}

func TestLabel_CaseInsensitive(t *testing.T) {
	require.Equal(t, 1, Label("Referred to ONCOLOGY department"))
	require.Equal(t, 1, Label("Metastatic spread suspected"))
}

func TestLabel_NoKeywords(t *testing.T) {
	require.Equal(t, 0, Label(""))
	require.Equal(t, 0, Label("routine blood panel, all values nominal"))
}
