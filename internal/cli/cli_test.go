package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPreview_Online(t *testing.T) {
	out, err := run(t, "preview", "--online", "--from", "2024-06-01", "--start", "10:00", "--end", "12:00", "--tz", "UTC")
	require.NoError(t, err)

	assert.Equal(t, "online: 2 слота\n  01.06.2024 (Сб)  10:00 11:00\n", out)
}

func TestPreview_RangeInAnyOrder(t *testing.T) {
	out, err := run(t, "preview", "--city", "Moscow", "--from", "2024-06-03", "--to", "2024-06-02",
		"--start", "10:00", "--end", "11:00", "--tz", "UTC")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Moscow: 2 слота", lines[0])
	assert.Contains(t, lines[1], "02.06.2024")
	assert.Contains(t, lines[2], "03.06.2024")
}

func TestPreview_OfflineRequiresCity(t *testing.T) {
	_, err := run(t, "preview", "--from", "2024-06-01", "--tz", "UTC")
	assert.Error(t, err)
}

func TestPreview_InvalidDate(t *testing.T) {
	_, err := run(t, "preview", "--online", "--from", "01.06.2024")
	assert.Error(t, err)
}

func TestHashSecret(t *testing.T) {
	out, err := run(t, "hash-secret", "Letmein")
	require.NoError(t, err)

	hash, ok := strings.CutPrefix(strings.TrimSpace(out), "ADMIN_SECRET_HASH='")
	require.True(t, ok, out)
	hash = strings.TrimSuffix(hash, "'")

	gate := auth.NewGate(hash, nil)
	assert.True(t, gate.CheckSecret("letmein"))
	assert.False(t, gate.CheckSecret("other"))
}

func TestHashSecret_Empty(t *testing.T) {
	_, err := run(t, "hash-secret", "  ")
	assert.Error(t, err)
}
