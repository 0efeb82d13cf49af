package spool_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybercell/helpline/pkg/adapters/spool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_StoreAndURL(t *testing.T) {
	dir := t.TempDir()
	archive := spool.NewArchive(dir, "https://bot.example.org/")

	url, err := archive.Store(context.Background(), "complaint_1.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.org/download/complaint_1.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "complaint_1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestArchive_StripsPathSegments(t *testing.T) {
	dir := t.TempDir()
	archive := spool.NewArchive(dir, "https://bot.example.org")

	url, err := archive.Store(context.Background(), "../escape.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.org/download/escape.pdf", url)

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)
}
