package score

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWeights(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeightsMissingFileUsesDefaults(t *testing.T) {
	w, err := LoadWeights(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeightsEmptyPathUsesDefaults(t *testing.T) {
	w, err := LoadWeights("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeightsPartialOverride(t *testing.T) {
	path := writeWeights(t, "diversity: 0.5\ntargeting: 0.1\n")

	w, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Diversity)
	assert.Equal(t, 0.1, w.Targeting)
	assert.Equal(t, DefaultWeights().Voice, w.Voice)
	assert.Equal(t, DefaultWeights().Completeness, w.Completeness)
}

func TestLoadWeightsZeroIsAllowed(t *testing.T) {
	path := writeWeights(t, "voice: 0\n")

	w, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.Voice)
}

func TestLoadWeightsRejectsNegative(t *testing.T) {
	path := writeWeights(t, "completeness: -0.2\n")

	_, err := LoadWeights(path)
	assert.Error(t, err)
}

func TestLoadWeightsRejectsGarbage(t *testing.T) {
	path := writeWeights(t, "{not yaml")

	_, err := LoadWeights(path)
	assert.Error(t, err)
}
