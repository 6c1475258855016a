package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRPNG(t *testing.T) {
	dir := t.TempDir()

	filename, err := GenerateQRPNG(dir, "img-1", "https://pay.example.com/abc")
	require.NoError(t, err)
	assert.Equal(t, "img-1.png", filename)

	info, err := os.Stat(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateQRPNGCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "media")

	_, err := GenerateQRPNG(dir, "img-2", "tron:TXYZ?amount=10.000000")
	require.NoError(t, err)
}
