package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVCF(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVCardSourceFetch_ReadsCards(t *testing.T) {
	path := writeVCF(t, "BEGIN:VCARD\r\n"+
		"VERSION:4.0\r\n"+
		"FN:Ana García\r\n"+
		"BDAY:1990-03-10\r\n"+
		"END:VCARD\r\n"+
		"BEGIN:VCARD\r\n"+
		"VERSION:4.0\r\n"+
		"FN:Berto López\r\n"+
		"BDAY:19851102\r\n"+
		"END:VCARD\r\n")

	records, err := (&VCardSource{Path: path}).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ana García", records[0].Name)
	assert.Equal(t, "1990-03-10", records[0].RawDate)
	assert.Equal(t, "Berto López", records[1].Name)
	assert.Equal(t, "19851102", records[1].RawDate)
}

// TestVCardSourceFetch_NoBirthday keeps the card with an empty raw date;
// the resolver drops it later.
func TestVCardSourceFetch_NoBirthday(t *testing.T) {
	path := writeVCF(t, "BEGIN:VCARD\r\n"+
		"VERSION:4.0\r\n"+
		"FN:Sin Cumple\r\n"+
		"END:VCARD\r\n")

	records, err := (&VCardSource{Path: path}).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sin Cumple", records[0].Name)
	assert.Empty(t, records[0].RawDate)
}

func TestVCardSourceFetch_MissingFile(t *testing.T) {
	src := &VCardSource{Path: filepath.Join(t.TempDir(), "nope.vcf")}

	_, err := src.Fetch(context.Background())

	assert.Error(t, err)
}

func TestVCardSourceFetch_EmptyPath(t *testing.T) {
	_, err := (&VCardSource{}).Fetch(context.Background())

	assert.Error(t, err)
}

func TestVCardSourceFetch_ContextCancelled(t *testing.T) {
	path := writeVCF(t, "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ana\r\nEND:VCARD\r\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&VCardSource{Path: path}).Fetch(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
