package parser

import (
	"fmt"
	"strconv"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
)

// channelLineParser builds a parser for the single-value CH<N> temperature
// and resistance files:
//
//	DD-MM-YY,HH:MM:SS,<value>
//
// The resulting sample is keyed by channel number and reading kind, e.g.
// "ch6_t", so the mapper's per-channel rules apply uniformly to channels
// that were never seen before.
func channelLineParser(src logdir.SourceFile, suffix string) lineParser {
	key := fmt.Sprintf("ch%d_%s", src.Channel, suffix)

	return func(line string) ([]RawSample, error) {
		errFactory := errors.New()

		fields := splitFields(line)
		if len(fields) != 3 {
			return nil, errFactory.WithMessage(ErrMalformedLine, "channel row needs timestamp and one value")
		}
		if _, err := strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, errFactory.WithMessage(ErrMalformedLine, "non-numeric channel value")
		}

		return []RawSample{{
			Kind:  src.Kind,
			Key:   key,
			Value: fields[2],
		}}, nil
	}
}
