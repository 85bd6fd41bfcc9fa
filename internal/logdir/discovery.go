package logdir

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
)

// Files larger than this are skipped outright; the controller's daily files
// stay in the kilobyte range, so anything bigger is not ours to read.
const maxFileSizeBytes = 50 * 1024 * 1024

var channelFileRe = regexp.MustCompile(`^CH(\d+) (T|R) \d{2}-\d{2}-\d{2}\.log$`)

// Discover enumerates the parser-eligible files in a resolved date folder.
// Fixed-name files are matched against the given day; CH* temperature and
// resistance files are matched by pattern so channels that appear for the
// first time are picked up without configuration. Unrecognized, empty and
// oversized files are ignored.
func Discover(dayPath string, day time.Time) ([]SourceFile, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(dayPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrDiscoveryFailed, err)
	}

	ds := FolderName(day)
	fixed := map[string]Kind{
		"Status_" + ds + ".log":    KindStatus,
		"Flowmeter " + ds + ".log": KindFlowmeter,
		"Heaters_" + ds + ".log":   KindHeaters,
		"Channels " + ds + ".log":  KindChannels,
		"maxigauge " + ds + ".log": KindMaxigauge,
	}

	var sources []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		info, err := entry.Info()
		if err != nil {
			logger.Debug().Str("file", name).Err(err).Msg("Cannot stat file, skipping")
			continue
		}
		if info.Size() == 0 || info.Size() > maxFileSizeBytes {
			logger.Debug().Str("file", name).Int64("size", info.Size()).Msg("Skipping empty or oversized file")
			continue
		}

		if kind, ok := fixed[name]; ok {
			sources = append(sources, SourceFile{
				Kind: kind,
				Name: name,
				Path: filepath.Join(dayPath, name),
			})
			continue
		}

		if m := channelFileRe.FindStringSubmatch(name); m != nil {
			channel, _ := strconv.Atoi(m[1])
			kind := KindChannelTemp
			if m[2] == "R" {
				kind = KindChannelRes
			}
			sources = append(sources, SourceFile{
				Kind:    kind,
				Name:    name,
				Path:    filepath.Join(dayPath, name),
				Channel: channel,
				Dynamic: true,
			})
		}
	}

	// Deterministic processing order across runs
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})

	return sources, nil
}
