package parser

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
)

// Multi-column device logs: flowmeter, heaters, valve/channel states and the
// six-position pressure gauge. Each row is a timestamp followed by the
// device's readings; only the latest row matters per run.

// parseFlowmeterLine handles DD-MM-YY,HH:MM:SS,<flow>.
func parseFlowmeterLine(line string) ([]RawSample, error) {
	errFactory := errors.New()

	fields := splitFields(line)
	if len(fields) != 3 {
		return nil, errFactory.WithMessage(ErrMalformedLine, "flowmeter row needs timestamp and one value")
	}
	if _, err := strconv.ParseFloat(fields[2], 64); err != nil {
		return nil, errFactory.WithMessage(ErrMalformedLine, "non-numeric flow value")
	}

	return []RawSample{{
		Kind:  logdir.KindFlowmeter,
		Key:   "flowmeter",
		Value: fields[2],
	}}, nil
}

// parseHeatersLine handles DD-MM-YY,HH:MM:SS,<power>[,<power>...]. Columns
// are keyed by position: heater_1, heater_2, ...
func parseHeatersLine(line string) ([]RawSample, error) {
	errFactory := errors.New()

	fields := splitFields(line)
	if len(fields) < 3 {
		return nil, errFactory.WithMessage(ErrMalformedLine, "heaters row needs timestamp and at least one value")
	}

	samples := make([]RawSample, 0, len(fields)-2)
	for i, value := range fields[2:] {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, errFactory.WithMessage(ErrMalformedLine, fmt.Sprintf("non-numeric heater value in column %d", i+1))
		}
		samples = append(samples, RawSample{
			Kind:  logdir.KindHeaters,
			Key:   fmt.Sprintf("heater_%d", i+1),
			Value: value,
		})
	}

	return samples, nil
}

// parseChannelsLine handles the valve/channel state rows:
//
//	DD-MM-YY,HH:MM:SS,<code>,name,state,name,state,...
//
// States are the controller's on/off indicators ("1"/"0"); they stay raw
// here and the mapper converts them to 0/1 gauges.
func parseChannelsLine(line string) ([]RawSample, error) {
	errFactory := errors.New()

	fields := splitFields(line)
	if len(fields) < 5 || (len(fields)-3)%2 != 0 {
		return nil, errFactory.WithMessage(ErrMalformedLine, "channels row needs timestamp, code and name/state pairs")
	}

	samples := make([]RawSample, 0, (len(fields)-3)/2)
	for i := 3; i < len(fields); i += 2 {
		name := strings.ToLower(fields[i])
		if name == "" {
			return nil, errFactory.WithMessage(ErrMalformedLine, "empty name in channels row")
		}
		state := fields[i+1]
		if state != "0" && state != "1" {
			return nil, errFactory.WithMessage(ErrMalformedLine, "invalid state for "+name)
		}
		samples = append(samples, RawSample{
			Kind:  logdir.KindChannels,
			Key:   name,
			Value: state,
		})
	}

	return samples, nil
}

// parseMaxigaugeLine handles the six-field gauge groups:
//
//	DD-MM-YY,HH:MM:SS,CH1,<label>,<enabled>,<pressure>,<x>,<y>,CH2,...
//
// Disabled gauge positions are skipped rather than reported as zero.
func parseMaxigaugeLine(line string) ([]RawSample, error) {
	errFactory := errors.New()

	fields := splitFields(line)
	if len(fields) < 8 || (len(fields)-2)%6 != 0 {
		return nil, errFactory.WithMessage(ErrMalformedLine, "maxigauge row needs timestamp and six-field gauge groups")
	}

	var samples []RawSample
	for i := 2; i < len(fields); i += 6 {
		name := strings.ToLower(fields[i])
		enabled := fields[i+2]
		value := fields[i+3]

		if !strings.HasPrefix(name, "ch") {
			return nil, errFactory.WithMessage(ErrMalformedLine, "gauge group does not start with a channel name")
		}
		if enabled != "1" {
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, errFactory.WithMessage(ErrMalformedLine, "non-numeric pressure for "+name)
		}
		samples = append(samples, RawSample{
			Kind:  logdir.KindMaxigauge,
			Key:   "maxigauge_" + name,
			Value: value,
		})
	}

	return samples, nil
}
