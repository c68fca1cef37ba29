package framelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wk2k/irmp-go/internal/irmp"
)

func TestLogWritesDailyFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	require.NoError(t, err)
	defer l.Close()

	now := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.Write(now, irmp.Frame{Protocol: irmp.ProtocolNEC, Address: 0x1234, Command: 0x56}))

	full := filepath.Join(dir, "2026-07-29.log")
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Contains(t, string(data), header)
	assert.Contains(t, string(data), "NEC")
}

func TestLogRotatesOnDateChange(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	require.NoError(t, err)
	defer l.Close()

	day1 := time.Date(2026, 7, 29, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 7, 30, 0, 0, 1, 0, time.UTC)

	require.NoError(t, l.Write(day1, irmp.Frame{Protocol: irmp.ProtocolNEC}))
	require.NoError(t, l.Write(day2, irmp.Frame{Protocol: irmp.ProtocolRC5}))

	_, err = os.Stat(filepath.Join(dir, "2026-07-29.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "2026-07-30.log"))
	assert.NoError(t, err)
}

func TestArchiveAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2026-07-29.log")
	require.NoError(t, os.WriteFile(path, []byte(header+"1,2,NEC,1,2,false,false\n"), 0o644))

	archivePath, err := ArchiveAndRemove(path)
	require.NoError(t, err)
	assert.Equal(t, path+".zst", archivePath)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(archivePath)
	assert.NoError(t, err)
}
