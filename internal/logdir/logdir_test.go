package logdir_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func makeDayFolder(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	root := t.TempDir()
	dayPath := filepath.Join(root, logdir.FolderName(testDay))
	require.NoError(t, os.Mkdir(dayPath, 0o755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dayPath, name), []byte(content), 0o644))
	}

	return root, dayPath
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "26-08-25", logdir.FolderName(testDay))
}

func TestResolve(t *testing.T) {
	root, dayPath := makeDayFolder(t, nil)

	got, err := logdir.Resolve(root, testDay)
	require.NoError(t, err)
	assert.Equal(t, dayPath, got)
}

func TestResolveMissingRoot(t *testing.T) {
	_, err := logdir.Resolve(filepath.Join(t.TempDir(), "nope"), testDay)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, logdir.ErrRootUnavailable))
}

func TestResolveMissingDateFolder(t *testing.T) {
	_, err := logdir.Resolve(t.TempDir(), testDay)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, logdir.ErrMissingDateFolder))
}

func TestDiscover(t *testing.T) {
	_, dayPath := makeDayFolder(t, map[string]string{
		"Status_26-08-25.log":    "25-08-26,12:00:00,cpahpa,120.5",
		"CH1 T 26-08-25.log":     "25-08-26,12:00:00,2.94529E+2",
		"CH6 R 26-08-25.log":     "25-08-26,12:00:00,1.23456E+3",
		"Flowmeter 26-08-25.log": "25-08-26,12:00:00,0.512",
		"Heaters_26-08-25.log":   "25-08-26,12:00:00,0,0.002,0,0",
		"Channels 26-08-25.log":  "25-08-26,12:00:00,5,v1,1,v2,0",
		"maxigauge 26-08-25.log": "25-08-26,12:00:00,CH1,,1,1.00E-3,0,1",
		"notes.txt":              "operator scribbles",
		"empty.log":              "",
	})

	sources, err := logdir.Discover(dayPath, testDay)
	require.NoError(t, err)

	kinds := map[string]logdir.Kind{}
	for _, s := range sources {
		kinds[s.Name] = s.Kind
	}

	assert.Len(t, sources, 7)
	assert.Equal(t, logdir.KindStatus, kinds["Status_26-08-25.log"])
	assert.Equal(t, logdir.KindChannelTemp, kinds["CH1 T 26-08-25.log"])
	assert.Equal(t, logdir.KindChannelRes, kinds["CH6 R 26-08-25.log"])
	assert.Equal(t, logdir.KindFlowmeter, kinds["Flowmeter 26-08-25.log"])
	assert.Equal(t, logdir.KindHeaters, kinds["Heaters_26-08-25.log"])
	assert.Equal(t, logdir.KindChannels, kinds["Channels 26-08-25.log"])
	assert.Equal(t, logdir.KindMaxigauge, kinds["maxigauge 26-08-25.log"])
	assert.NotContains(t, kinds, "notes.txt")
	assert.NotContains(t, kinds, "empty.log")
}

func TestDiscoverChannelMetadata(t *testing.T) {
	_, dayPath := makeDayFolder(t, map[string]string{
		"CH9 T 26-08-25.log": "25-08-26,12:00:00,1.20E-2",
	})

	sources, err := logdir.Discover(dayPath, testDay)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	assert.Equal(t, 9, sources[0].Channel)
	assert.True(t, sources[0].Dynamic)
}

func TestDiscoverIgnoresOtherDays(t *testing.T) {
	_, dayPath := makeDayFolder(t, map[string]string{
		"Status_26-08-24.log": "24-08-26,12:00:00,cpahpa,120.5",
		"CH1 T 26-08-24.log":  "24-08-26,12:00:00,2.94529E+2",
	})

	// Yesterday's files still match the CH* pattern shape but not the fixed
	// names for today; the CH file is pattern-matched regardless of date.
	sources, err := logdir.Discover(dayPath, testDay)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, logdir.KindChannelTemp, sources[0].Kind)
}

func TestDiscoverDeterministicOrder(t *testing.T) {
	_, dayPath := makeDayFolder(t, map[string]string{
		"CH6 T 26-08-25.log": "x,y,1",
		"CH1 T 26-08-25.log": "x,y,2",
		"CH2 R 26-08-25.log": "x,y,3",
	})

	sources, err := logdir.Discover(dayPath, testDay)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, "CH1 T 26-08-25.log", sources[0].Name)
	assert.Equal(t, "CH2 R 26-08-25.log", sources[1].Name)
	assert.Equal(t, "CH6 T 26-08-25.log", sources[2].Name)
}
