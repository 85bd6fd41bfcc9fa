package metricmap

import (
	"regexp"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
	"codeberg.org/cryolab/fridgewatch/internal/parser"
)

var (
	channelKeyRe = regexp.MustCompile(`^ch\d+_(t|r)$`)
	heaterKeyRe  = regexp.MustCompile(`^heater_\d+$`)
	gaugeKeyRe   = regexp.MustCompile(`^maxigauge_ch\d+$`)
)

// Mapper translates raw samples into canonical metric samples using an
// immutable descriptor table plus generic per-kind fallback rules. The
// fallback rules are what let a CH7 file that appears for the first time map
// to ch7_t_kelvin with zero configuration.
type Mapper struct {
	table Table
}

// NewMapper validates the table and returns a read-only mapper. Two entries
// producing the same canonical name is a configuration defect, caught here
// before any run starts.
func NewMapper(table Table) (*Mapper, error) {
	errFactory := errors.New()

	seen := make(map[string]Key, len(table))
	for key, desc := range table {
		if prev, ok := seen[desc.Name]; ok {
			return nil, errFactory.WithData(ErrDuplicateName, struct {
				Name  string
				First Key
				Other Key
			}{
				Name:  desc.Name,
				First: prev,
				Other: key,
			})
		}
		seen[desc.Name] = key
	}

	return &Mapper{table: table}, nil
}

// Map translates one raw sample. The second return value is false when the
// sample has no descriptor and no generic rule applies; such samples are
// dropped deliberately — the table is conservative and unknown keys stay out
// of the batch until a human adds a mapping.
func (m *Mapper) Map(sample parser.RawSample) (MetricSample, bool) {
	desc, ok := m.table[Key{Kind: sample.Kind, Raw: sample.Key}]
	if !ok {
		desc, ok = genericDescriptor(sample)
	}
	if !ok {
		logger.Debug().
			Str("kind", string(sample.Kind)).
			Str("key", sample.Key).
			Msg("No metric mapping for raw key, dropping sample")

		return MetricSample{}, false
	}

	value, err := desc.Convert(sample.Value)
	if err != nil {
		logger.Warn().
			Str("key", sample.Key).
			Str("raw_value", sample.Value).
			Err(err).
			Msg("Conversion failed, dropping sample")

		return MetricSample{}, false
	}

	return MetricSample{
		Name:  desc.Name,
		Value: value,
		Help:  desc.Help,
	}, true
}

// genericDescriptor covers samples with a recognized shape but no explicit
// table entry: previously unseen CH* files, extra heater columns, gauge
// positions and valve states. Naming follows the <key>_<unit> convention so
// the names stay stable once dashboards start using them.
func genericDescriptor(sample parser.RawSample) (Descriptor, bool) {
	switch sample.Kind {
	case logdir.KindChannelTemp:
		if channelKeyRe.MatchString(sample.Key) {
			return Descriptor{
				Name:        sample.Key + "_kelvin",
				Help:        "Sensor temperature [" + sample.Key + " file] (" + sample.Key + ")",
				UnitSuffix:  "_kelvin",
				GrafanaUnit: "kelvin",
				Group:       "fridge_temps",
				Convert:     Identity,
			}, true
		}
	case logdir.KindChannelRes:
		if channelKeyRe.MatchString(sample.Key) {
			return Descriptor{
				Name:        sample.Key + "_ohms",
				Help:        "Sensor resistance [" + sample.Key + " file] (" + sample.Key + ")",
				UnitSuffix:  "_ohms",
				GrafanaUnit: "ohm",
				Group:       "fridge_resistance",
				Convert:     Identity,
			}, true
		}
	case logdir.KindHeaters:
		if heaterKeyRe.MatchString(sample.Key) {
			return Descriptor{
				Name:        sample.Key + "_watts",
				Help:        "Heater power [Heaters file] (" + sample.Key + ")",
				UnitSuffix:  "_watts",
				GrafanaUnit: "watt",
				Group:       "heaters",
				Convert:     Identity,
			}, true
		}
	case logdir.KindChannels:
		return Descriptor{
			Name:        sample.Key + "_state",
			Help:        "Valve/channel state, 1=open [Channels file] (" + sample.Key + ")",
			UnitSuffix:  "_state",
			GrafanaUnit: "bool_on_off",
			Group:       "valves",
			Convert:     OnOff,
		}, true
	case logdir.KindMaxigauge:
		if gaugeKeyRe.MatchString(sample.Key) {
			return Descriptor{
				Name:        sample.Key + "_pressure_mbar",
				Help:        "Maxigauge pressure [maxigauge file] (" + sample.Key + ")",
				UnitSuffix:  "_pressure_mbar",
				GrafanaUnit: "pressurembar",
				Group:       "maxigauge",
				Convert:     Identity,
			}, true
		}
	}

	return Descriptor{}, false
}
