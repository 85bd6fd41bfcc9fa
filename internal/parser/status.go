package parser

import (
	"strconv"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
)

// parseStatusLine handles the controller's flat key-value status rows:
//
//	DD-MM-YY,HH:MM:SS,key,value,key,value,...
//
// Every key found is passed through as a raw sample, including keys unknown
// to the metric table, so firmware additions show up without code changes.
func parseStatusLine(line string) ([]RawSample, error) {
	errFactory := errors.New()

	fields := splitFields(line)
	if len(fields) < 4 || (len(fields)-2)%2 != 0 {
		return nil, errFactory.WithMessage(ErrMalformedLine, "status row needs timestamp plus key/value pairs")
	}

	samples := make([]RawSample, 0, (len(fields)-2)/2)
	for i := 2; i < len(fields); i += 2 {
		key := fields[i]
		value := fields[i+1]
		if key == "" {
			return nil, errFactory.WithMessage(ErrMalformedLine, "empty key in status row")
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, errFactory.WithMessage(ErrMalformedLine, "non-numeric value for key "+key)
		}
		samples = append(samples, RawSample{
			Kind:  logdir.KindStatus,
			Key:   key,
			Value: value,
		})
	}

	return samples, nil
}
