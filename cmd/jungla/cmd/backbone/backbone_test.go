package backbone

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	bb "habla-jungla/internal/app/classifier/backbone"
)

func TestInitWritesSeededWeights(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jungla.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("classifier:\n  backbone:\n    seed: 42\n"), 0644))
	cmdutil.ConfigPath = cfgPath
	t.Cleanup(func() { cmdutil.ConfigPath = "" })

	path := filepath.Join(dir, "weights.msgpack")
	var out bytes.Buffer
	initCmd.SetOut(&out)

	require.NoError(t, initCmd.RunE(initCmd, []string{path}))
	assert.Contains(t, out.String(), "3-block weights")

	w, err := bb.LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, bb.SeededWeights(42, bb.InputChannels, bb.DefaultBlocks), w)

	assert.Error(t, initCmd.RunE(initCmd, []string{path}))
}
