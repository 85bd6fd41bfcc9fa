package parser

import (
	"bufio"
	"os"
	"strings"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
)

// Parse reads one source file and extracts its raw samples. The file is
// opened read-only and closed before returning; the controller may still be
// appending to it, so a truncated or malformed trailing line falls back to
// the most recent complete record instead of failing the file.
//
// Parse fails for the whole file only when the file cannot be opened or
// contains no parseable records at all.
func Parse(src logdir.SourceFile) (Result, error) {
	errFactory := errors.New()

	lines, err := readLines(src.Path)
	if err != nil {
		return Result{}, err
	}

	var result Result
	switch src.Kind {
	case logdir.KindStatus:
		result = parseLatest(lines, parseStatusLine)
	case logdir.KindChannelTemp:
		result = parseLatest(lines, channelLineParser(src, "t"))
	case logdir.KindChannelRes:
		result = parseLatest(lines, channelLineParser(src, "r"))
	case logdir.KindFlowmeter:
		result = parseLatest(lines, parseFlowmeterLine)
	case logdir.KindHeaters:
		result = parseLatest(lines, parseHeatersLine)
	case logdir.KindChannels:
		result = parseLatest(lines, parseChannelsLine)
	case logdir.KindMaxigauge:
		result = parseLatest(lines, parseMaxigaugeLine)
	default:
		return Result{}, errFactory.WithData(ErrUnknownKind, struct {
			Kind string
			File string
		}{
			Kind: string(src.Kind),
			File: src.Name,
		})
	}

	if len(result.Samples) == 0 {
		return result, errFactory.WithData(ErrNoRecords, struct {
			File string
		}{
			File: src.Name,
		})
	}

	return result, nil
}

// lineParser turns one logical row into raw samples, or fails for that row.
type lineParser func(line string) ([]RawSample, error)

// parseLatest walks the file bottom-up in spirit: every line is attempted and
// the samples of the latest valid line win. Earlier malformed lines are only
// recorded when no later valid line supersedes the question of whether the
// file is usable at all.
func parseLatest(lines []string, parse lineParser) Result {
	var result Result

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		samples, err := parse(trimmed)
		if err != nil {
			result.LineErrors = append(result.LineErrors, LineError{
				Line: i + 1,
				Text: trimmed,
				Err:  err,
			})
			continue
		}
		result.Samples = samples
	}

	return result
}

// readLines slurps the file line by line with a share-friendly read-only
// open. No handle is held after return and nothing is ever written or locked
// under the log directory.
func readLines(path string) ([]string, error) {
	errFactory := errors.New()

	f, err := os.Open(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrFileUnavailable, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		// A short read mid-append is acceptable; whatever complete lines we
		// already have are still usable.
		if len(lines) == 0 {
			return nil, errFactory.Wrap(ErrFileUnavailable, err)
		}
	}

	return lines, nil
}

// splitFields splits a comma-separated controller row and trims each field.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
