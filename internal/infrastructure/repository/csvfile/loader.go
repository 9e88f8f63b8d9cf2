package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/logging"
	"github.com/clubstats/matchlens/internal/platform/resilience"
)

// Options configure normalization behavior of the loader.
type Options struct {
	// NormalizeHeaders lower-cases headers and replaces spaces with
	// underscores after the rename table is applied. Some source variants
	// ship pre-normalized files, hence the switch.
	NormalizeHeaders bool
	// DateFormat is the layout of the date column. Defaults to
	// DefaultDateFormat.
	DateFormat string
}

// Loader reads the dataset from the first existing candidate path and caches
// the normalized snapshot keyed by (path, mtime, size). The cached snapshot
// is replaced by atomic swap only; readers holding the previous snapshot are
// unaffected.
type Loader struct {
	paths    []string
	opts     Options
	logger   *logging.Logger
	flight   resilience.SingleFlight
	snapshot atomic.Pointer[dataset.Snapshot]
}

func NewLoader(paths []string, opts Options, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		paths:  append([]string(nil), paths...),
		opts:   opts,
		logger: logger,
	}
}

func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	path, info, err := l.resolvePath()
	if err != nil {
		return nil, err
	}

	if cached := l.snapshot.Load(); snapshotMatches(cached, path, info) {
		return cached, nil
	}

	key := path + "|" + info.ModTime().UTC().Format(time.RFC3339Nano)
	value, err, _ := l.flight.Do(key, func() (any, error) {
		if cached := l.snapshot.Load(); snapshotMatches(cached, path, info) {
			return cached, nil
		}

		snapshot, loadErr := l.loadFile(ctx, path, info)
		if loadErr != nil {
			return nil, loadErr
		}
		l.snapshot.Store(snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*dataset.Snapshot), nil
}

func (l *Loader) Invalidate(_ context.Context) {
	l.snapshot.Store(nil)
}

func (l *Loader) resolvePath() (string, os.FileInfo, error) {
	for _, candidate := range l.paths {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, info, nil
		}
	}
	return "", nil, errors.Mark(
		errors.Newf("no dataset file found, probed paths: %v", l.paths),
		dataset.ErrDataUnavailable,
	)
}

func snapshotMatches(s *dataset.Snapshot, path string, info os.FileInfo) bool {
	return s != nil && s.Path == path && s.ModTime.Equal(info.ModTime()) && s.Size == info.Size()
}

func (l *Loader) loadFile(ctx context.Context, path string, info os.FileInfo) (*dataset.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open dataset %s", path), dataset.ErrDataUnavailable)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rawHeaders, err := reader.Read()
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read header of %s", path), dataset.ErrSchema)
	}

	headers := CanonicalizeHeaders(rawHeaders, l.opts.NormalizeHeaders)
	if missing := missingRequired(headers); len(missing) > 0 {
		return nil, errors.Mark(
			errors.Newf("missing required columns %v, found columns %v", missing, headers),
			dataset.ErrSchema,
		)
	}

	parser := newRowParser(headers, l.opts.DateFormat)
	records := make([]dataset.MatchRecord, 0, 1024)
	dropped := 0
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.Wrapf(readErr, "read rows of %s", path)
		}

		record, ok := parser.parse(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}

	snapshot := &dataset.Snapshot{
		Table:       dataset.NewTable(records),
		Path:        path,
		ModTime:     info.ModTime(),
		Size:        info.Size(),
		DroppedRows: dropped,
		LoadedAt:    time.Now().UTC(),
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		"path", path,
		"rows", len(records),
		"dropped_rows", dropped,
	)
	if dropped > 0 {
		l.logger.WarnContext(ctx, "rows dropped during coercion", "path", path, "dropped_rows", dropped)
	}

	return snapshot, nil
}
