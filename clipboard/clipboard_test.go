package clipboard_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/atotto/clipboard"
	mvclipboard "github.com/fwojciec/mvreport/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	t.Parallel()

	// Skip if no clipboard utility is installed (headless CI)
	if !mvclipboard.Available() {
		t.Skip("system clipboard not available, skipping clipboard test")
	}

	cb := mvclipboard.NewSystem()
	content := "{\n  \"avaliacaoVideo\": \"Aula de violão\"\n}"

	if err := cb.Copy(content); err != nil {
		t.Skipf("clipboard not usable: %v", err)
	}

	got, err := clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestOSC52_Copy(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cb := mvclipboard.NewOSC52(&buf)

	require.NoError(t, cb.Copy(`{"a":1}`))

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"a":1}`))
	assert.Contains(t, buf.String(), "]52;c;"+encoded)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cb := mvclipboard.Default(&buf)

	if mvclipboard.Available() {
		assert.IsType(t, &mvclipboard.System{}, cb)
	} else {
		assert.IsType(t, &mvclipboard.OSC52{}, cb)
	}
}
