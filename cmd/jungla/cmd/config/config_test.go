package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "habla-jungla/internal/config"
)

func TestInitWritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jungla.yaml")
	var out bytes.Buffer
	initCmd.SetOut(&out)

	require.NoError(t, initCmd.RunE(initCmd, []string{path}))
	assert.Contains(t, out.String(), path)

	settings, err := appconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, appconfig.DefaultLabels, settings.Classifier.Labels)

	err = initCmd.RunE(initCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
