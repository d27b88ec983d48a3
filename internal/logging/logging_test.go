// SPDX-License-Identifier: MIT

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultIsNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Logger.Infow("nothing happens", "key", "value")
	})
}

func TestInitialize(t *testing.T) {
	saved := Logger
	t.Cleanup(func() { Logger = saved })

	require.NoError(t, Initialize(Options{Verbose: true}))
	assert.True(t, Logger.Desugar().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Initialize(Options{}))
	assert.False(t, Logger.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, Logger.Desugar().Core().Enabled(zap.InfoLevel))

	require.NoError(t, Initialize(Options{JSON: true}))
	assert.True(t, Logger.Desugar().Core().Enabled(zap.InfoLevel))
}
