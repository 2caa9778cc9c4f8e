package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/povilasb/wabbit-go/internal/config"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func resetConfig() {
	cfg = config.Default()
}

func TestTokenitEvalText(t *testing.T) {
	resetConfig()
	tokenitEval = "print 1;"
	defer func() { tokenitEval = "" }()

	out := captureStdout(t, func() {
		require.NoError(t, runTokenit(nil, nil))
	})
	assert.Contains(t, out, "PRINT")
	assert.Contains(t, out, "INTEGER")
}

func TestTokenitFingerprintIsDeterministic(t *testing.T) {
	resetConfig()
	tokenitEval = "print 1;"
	tokenitFinger = true
	defer func() { tokenitEval = ""; tokenitFinger = false }()

	first := captureStdout(t, func() { require.NoError(t, runTokenit(nil, nil)) })
	second := captureStdout(t, func() { require.NoError(t, runTokenit(nil, nil)) })
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestRunitEvalPrintsOutput(t *testing.T) {
	resetConfig()
	runitEval = "print 1 + 2;"
	defer func() { runitEval = "" }()

	out := captureStdout(t, func() {
		require.NoError(t, runRunit(nil, nil))
	})
	assert.Equal(t, "3", out)
}

func TestRunitEvalRuntimeErrorSurfacesWithContext(t *testing.T) {
	resetConfig()
	runitEval = "print 1 / 0;"
	defer func() { runitEval = "" }()

	err := runRunit(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RuntimeError")
}

func TestRunitDebugModePanicsInsteadOfReturningError(t *testing.T) {
	resetConfig()
	runitEval = "print 1 / 0;"
	runitDebug = true
	defer func() { runitEval = ""; runitDebug = false }()

	assert.Panics(t, func() {
		_ = runRunit(nil, nil)
	})
}

func TestCompileEvalProducesIR(t *testing.T) {
	resetConfig()
	compileEval = "print 1;"
	defer func() { compileEval = "" }()

	out := captureStdout(t, func() {
		require.NoError(t, runCompile(nil, nil))
	})
	assert.Contains(t, out, "define i32 @main()")
}

func TestParsitEvalPrintsCanonicalForm(t *testing.T) {
	resetConfig()
	parsitEval = "print 1+2;"
	defer func() { parsitEval = "" }()

	out := captureStdout(t, func() {
		require.NoError(t, runParsit(nil, nil))
	})
	assert.Equal(t, "print 1 + 2;\n", out)
}
