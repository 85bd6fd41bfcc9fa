package metricmap_test

import (
	"testing"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"codeberg.org/cryolab/fridgewatch/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapper(t *testing.T) *metricmap.Mapper {
	t.Helper()

	m, err := metricmap.NewMapper(metricmap.DefaultTable())
	require.NoError(t, err)

	return m
}

func TestMapStatusKey(t *testing.T) {
	m := newMapper(t)

	got, ok := m.Map(parser.RawSample{Kind: logdir.KindStatus, Key: "cpahpa", Value: "120.5"})
	require.True(t, ok)

	assert.Equal(t, "cpahpa_mbar", got.Name)
	assert.InDelta(t, 120.5, got.Value, 1e-9)
	assert.Contains(t, got.Help, "Compressor high pressure actual")
}

func TestMapMilliKelvinChannel(t *testing.T) {
	m := newMapper(t)

	got, ok := m.Map(parser.RawSample{Kind: logdir.KindChannelTemp, Key: "ch6_t", Value: "12"})
	require.True(t, ok)

	assert.Equal(t, "ch6_t_kelvin", got.Name)
	assert.InDelta(t, 0.012, got.Value, 1e-9)
}

func TestMapKelvinChannel(t *testing.T) {
	m := newMapper(t)

	got, ok := m.Map(parser.RawSample{Kind: logdir.KindChannelTemp, Key: "ch1_t", Value: "294.529"})
	require.True(t, ok)

	assert.Equal(t, "ch1_t_kelvin", got.Name)
	assert.InDelta(t, 294.529, got.Value, 1e-9)
}

func TestMapUnseenChannelUsesGenericRule(t *testing.T) {
	m := newMapper(t)

	// CH7 has no explicit table entry; the per-channel rule must cover it
	// without configuration changes.
	temp, ok := m.Map(parser.RawSample{Kind: logdir.KindChannelTemp, Key: "ch7_t", Value: "4.2"})
	require.True(t, ok)
	assert.Equal(t, "ch7_t_kelvin", temp.Name)
	assert.InDelta(t, 4.2, temp.Value, 1e-9)

	res, ok := m.Map(parser.RawSample{Kind: logdir.KindChannelRes, Key: "ch7_r", Value: "1023.4"})
	require.True(t, ok)
	assert.Equal(t, "ch7_r_ohms", res.Name)
}

func TestMapValveState(t *testing.T) {
	m := newMapper(t)

	open, ok := m.Map(parser.RawSample{Kind: logdir.KindChannels, Key: "v1", Value: "1"})
	require.True(t, ok)
	assert.Equal(t, "v1_state", open.Name)
	assert.InDelta(t, 1, open.Value, 1e-9)

	closed, ok := m.Map(parser.RawSample{Kind: logdir.KindChannels, Key: "v2", Value: "0"})
	require.True(t, ok)
	assert.InDelta(t, 0, closed.Value, 1e-9)
}

func TestMapFlowmeter(t *testing.T) {
	m := newMapper(t)

	got, ok := m.Map(parser.RawSample{Kind: logdir.KindFlowmeter, Key: "flowmeter", Value: "0.512"})
	require.True(t, ok)
	assert.Equal(t, "flowmeter_mmol_per_s", got.Name)
}

func TestMapMaxigauge(t *testing.T) {
	m := newMapper(t)

	got, ok := m.Map(parser.RawSample{Kind: logdir.KindMaxigauge, Key: "maxigauge_ch3", Value: "1.000E-3"})
	require.True(t, ok)
	assert.Equal(t, "maxigauge_ch3_pressure_mbar", got.Name)
	assert.InDelta(t, 0.001, got.Value, 1e-9)
}

func TestMapUnknownKeyDropped(t *testing.T) {
	m := newMapper(t)

	_, ok := m.Map(parser.RawSample{Kind: logdir.KindStatus, Key: "mystery", Value: "1.0"})
	assert.False(t, ok)
}

func TestMapKindMatters(t *testing.T) {
	m := newMapper(t)

	// A status key arriving from the wrong file kind must not match.
	_, ok := m.Map(parser.RawSample{Kind: logdir.KindFlowmeter, Key: "cpahpa", Value: "120.5"})
	assert.False(t, ok)
}

func TestNewMapperRejectsDuplicateNames(t *testing.T) {
	table := metricmap.DefaultTable()
	table[metricmap.Key{Kind: logdir.KindStatus, Raw: "rogue"}] = metricmap.Descriptor{
		Name:    "cpahpa_mbar", // collides with the real cpahpa entry
		Convert: metricmap.Identity,
	}

	_, err := metricmap.NewMapper(table)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, metricmap.ErrDuplicateName))
}
