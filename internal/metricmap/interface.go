package metricmap

import "codeberg.org/cryolab/fridgewatch/internal/logdir"

// Conversion turns a raw string reading into the value of the declared unit.
// Conversions are always declared per descriptor; nothing is inferred from
// the shape of the data.
type Conversion func(raw string) (float64, error)

// Key identifies a descriptor: which file kind the sample came from and the
// raw key the parser extracted.
type Key struct {
	Kind logdir.Kind
	Raw  string
}

// Descriptor is the static metadata for one metric. Name carries the unit
// suffix; once a name is established dashboards depend on it, so entries are
// append-only in practice.
type Descriptor struct {
	Name        string
	Help        string
	UnitSuffix  string
	GrafanaUnit string
	Group       string
	Convert     Conversion
}

// Table maps raw samples to descriptors. Loaded once per process and
// read-only afterwards.
type Table map[Key]Descriptor

// MetricSample is the unit of output: a canonical name, a converted value
// and its help text.
type MetricSample struct {
	Name  string
	Value float64
	Help  string
}
