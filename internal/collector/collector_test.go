package collector_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/collector"
	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testDay }

func newCollector(t *testing.T, logsDir string) *collector.Collector {
	t.Helper()

	mapper, err := metricmap.NewMapper(metricmap.DefaultTable())
	require.NoError(t, err)

	c, err := collector.New(collector.Config{
		LogsDir: logsDir,
		Workers: 2,
	}, mapper, collector.WithClock(fixedClock))
	require.NoError(t, err)

	return c
}

func makeDayFolder(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	dayPath := filepath.Join(root, logdir.FolderName(testDay))
	require.NoError(t, os.Mkdir(dayPath, 0o755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dayPath, name), []byte(content), 0o644))
	}

	return root
}

func fullDay() map[string]string {
	return map[string]string{
		"Status_26-08-25.log":    "25-08-26,12:00:00,cpahpa,120.5,cpatempwi,21.4",
		"CH6 T 26-08-25.log":     "25-08-26,12:00:00,12",
		"CH1 T 26-08-25.log":     "25-08-26,12:00:00,294.529",
		"Flowmeter 26-08-25.log": "25-08-26,12:00:00,0.512",
	}
}

func names(result *collector.Result) []string {
	out := make([]string, 0, len(result.Samples))
	for _, s := range result.Samples {
		out = append(out, s.Name)
	}

	return out
}

func value(t *testing.T, result *collector.Result, name string) float64 {
	t.Helper()

	for _, s := range result.Samples {
		if s.Name == name {
			return s.Value
		}
	}
	t.Fatalf("metric %q not in batch", name)

	return 0
}

func TestRunProducesBatch(t *testing.T) {
	root := makeDayFolder(t, fullDay())

	result, err := newCollector(t, root).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Resolved)
	assert.Equal(t, 4, result.Files)
	assert.Empty(t, result.Failures)

	assert.InDelta(t, 120.5, value(t, result, "cpahpa_mbar"), 1e-9)
	assert.InDelta(t, 0.012, value(t, result, "ch6_t_kelvin"), 1e-9)
	assert.InDelta(t, 294.529, value(t, result, "ch1_t_kelvin"), 1e-9)
	assert.InDelta(t, 0.512, value(t, result, "flowmeter_mmol_per_s"), 1e-9)
}

func TestRunDeterministic(t *testing.T) {
	root := makeDayFolder(t, fullDay())
	c := newCollector(t, root)

	first, err := c.Run(context.Background())
	require.NoError(t, err)
	second, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Samples, second.Samples)
	assert.IsNonDecreasing(t, names(first))
}

func TestRunMissingFileOnlyAffectsItsMetrics(t *testing.T) {
	withFile := makeDayFolder(t, fullDay())

	without := fullDay()
	delete(without, "CH6 T 26-08-25.log")
	withoutFile := makeDayFolder(t, without)

	full, err := newCollector(t, withFile).Run(context.Background())
	require.NoError(t, err)
	partial, err := newCollector(t, withoutFile).Run(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, names(partial), "ch6_t_kelvin")
	for _, s := range partial.Samples {
		assert.InDelta(t, value(t, full, s.Name), s.Value, 1e-9)
	}
	assert.Len(t, full.Samples, len(partial.Samples)+1)
}

func TestRunBadFileDoesNotAbortOthers(t *testing.T) {
	files := fullDay()
	files["CH6 T 26-08-25.log"] = "nothing parseable here"
	root := makeDayFolder(t, files)

	result, err := newCollector(t, root).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "CH6 T 26-08-25.log", result.Failures[0].File)
	assert.Equal(t, logdir.KindChannelTemp, result.Failures[0].Kind)

	// Everything else still made it into the batch.
	assert.Contains(t, names(result), "cpahpa_mbar")
	assert.Contains(t, names(result), "ch1_t_kelvin")
	assert.Contains(t, names(result), "flowmeter_mmol_per_s")
}

func TestRunMissingDateFolder(t *testing.T) {
	result, err := newCollector(t, t.TempDir()).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Resolved)
	assert.True(t, result.Empty())
}

func TestRunMissingRootIsFatal(t *testing.T) {
	_, err := newCollector(t, filepath.Join(t.TempDir(), "gone")).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, collector.ErrRootUnavailable))
}

func TestRunNewChannelPairDiscovered(t *testing.T) {
	files := fullDay()
	files["CH7 T 26-08-25.log"] = "25-08-26,12:00:00,4.2"
	files["CH7 R 26-08-25.log"] = "25-08-26,12:00:00,1023.4"
	root := makeDayFolder(t, files)

	result, err := newCollector(t, root).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, names(result), "ch7_t_kelvin")
	assert.Contains(t, names(result), "ch7_r_ohms")
}
