package props

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/area"
	"github.com/joshuapare/propkit/area/dirty"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/labels"
	"github.com/joshuapare/propkit/pkg/types"
	"github.com/joshuapare/propkit/trie"
)

// Store runs queries against the regions described by a Config.
type Store struct {
	cfg Config
	src labels.Source
	log *zap.Logger
}

// Result is the outcome of a single-name query.
type Result struct {
	types.Record
	// Changed is true when an update modified the record.
	Changed bool `json:"changed"`
}

// New builds a Store, loading the label source up front.
func New(cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()
	src, err := labels.Select(cfg.Catalog, cfg.UseFiles, cfg.LabelFiles, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, src: src, log: cfg.Logger}, nil
}

// Config returns the effective configuration.
func (s *Store) Config() Config { return s.cfg }

// Labels returns the label source in use.
func (s *Store) Labels() labels.Source { return s.src }

// Label returns the label of name as the region lookup sees it. Below SDK 24
// a leading "ro." is ignored.
func (s *Store) Label(name string) (string, bool) {
	if s.cfg.Legacy() {
		return labels.Legacy(s.src).Label(name)
	}
	return s.src.Label(name)
}

// RegionPath returns the file holding label's records.
func (s *Store) RegionPath(label string) (string, error) {
	if s.cfg.Legacy() {
		return s.cfg.Root, nil
	}
	if label == "" || label == "." || label == ".." || strings.ContainsRune(label, '/') {
		return "", types.Errorf(types.ErrKindFormat, nil, "label %q is not a region name", label)
	}
	return filepath.Join(s.cfg.Root, label), nil
}

// regionFor returns the region path of name and the label to report with it.
func (s *Store) regionFor(name string) (path, label string, err error) {
	if s.cfg.Legacy() {
		label, _ = s.Label(name)
		return s.cfg.Root, label, nil
	}
	label, ok := s.src.Label(name)
	if !ok {
		return "", "", types.Errorf(types.ErrKindNotFound, nil, "no label for %s", name)
	}
	path, err = s.RegionPath(label)
	return path, label, err
}

// Dump returns every populated record of every region, in walk order.
// Regions that cannot be opened are logged and skipped.
func (s *Store) Dump(ctx context.Context) ([]types.Record, error) {
	if s.cfg.Legacy() {
		return s.dumpRegion(s.cfg.Root, "", true)
	}

	var out []types.Record
	for _, label := range s.src.Labels() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		path, err := s.RegionPath(label)
		if err != nil {
			s.log.Warn("skipping label", zap.String("label", label), zap.Error(err))
			continue
		}
		recs, err := s.dumpRegion(path, label, false)
		if err != nil {
			continue
		}
		out = append(out, recs...)
	}
	return out, nil
}

// dumpRegion walks one region. With perName set, labels are resolved per
// record instead of taken from the region.
func (s *Store) dumpRegion(path, label string, perName bool) ([]types.Record, error) {
	a, err := area.Open(path, false)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || types.IsKind(err, types.ErrKindPermission) {
			s.log.Debug("region unavailable", zap.String("path", path), zap.Error(err))
		} else {
			s.log.Warn("cannot open region", zap.String("path", path), zap.Error(err))
		}
		return nil, err
	}
	defer a.Close()

	var out []types.Record
	err = trie.New(a, s.log).Walk(func(info area.Info) error {
		rec := record(info)
		if s.cfg.WantLabels {
			if perName {
				rec.Label, _ = s.Label(rec.Name)
			} else {
				rec.Label = label
			}
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// List dumps every region and returns the records selected by pattern,
// sorted by name.
func (s *Store) List(ctx context.Context, pattern string) ([]types.Record, error) {
	recs, err := s.Dump(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(recs, pattern), nil
}

// Get returns the record for name.
func (s *Store) Get(ctx context.Context, name string) (Result, error) {
	return s.Update(ctx, name, nil, format.CountUnset)
}

// Set stores value under name, creating the name when missing.
func (s *Store) Set(ctx context.Context, name, value string) (Result, error) {
	return s.Update(ctx, name, &value, format.CountUnset)
}

// Update resolves name and applies the optional value and counter. With a
// nil value and format.CountUnset it is a read-only lookup. The name (and for
// writes the value and the caller's privilege) is checked before any region
// is opened.
func (s *Store) Update(ctx context.Context, name string, value *string, count uint32) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := validateSingle(name); err != nil {
		return Result{}, err
	}
	write := value != nil || count != format.CountUnset
	if write {
		if value != nil {
			if err := ValidateValue(*value); err != nil {
				return Result{}, err
			}
		}
		if !s.cfg.IsPrivileged() {
			return Result{}, types.Errorf(types.ErrKindPermission, nil, "changing %s requires root", name)
		}
	}

	path, label, err := s.regionFor(name)
	if err != nil {
		return Result{}, err
	}
	a, err := area.Open(path, write)
	if err != nil {
		return Result{}, err
	}
	defer a.Close()

	t := trie.New(a, s.log)
	if !write {
		info, err := t.Find(name)
		if err != nil {
			return Result{}, err
		}
		return s.result(info, label, false), nil
	}

	dt := dirty.NewTracker(a)
	info, err := t.FindOrCreate(name, s.cfg.Confirm)
	if err != nil {
		// nodes linked before a failure are already in the region
		if ferr := dt.Flush(ctx); ferr != nil {
			s.log.Warn("flush after failed update", zap.String("path", path), zap.Error(ferr))
		}
		return Result{}, err
	}

	var v []byte
	if value != nil {
		v = []byte(*value)
	}
	changed, err := info.Update(v, count)
	if ferr := dt.Flush(ctx); ferr != nil {
		err = multierr.Append(err, ferr)
	}
	if err != nil {
		return Result{}, err
	}
	if changed {
		s.log.Debug("property updated",
			zap.String("name", name),
			zap.String("path", path),
			zap.Uint32("serial", uint32(info.Serial())))
	}
	return s.result(info, label, changed), nil
}

// SetCount sets the counter of every record pattern selects. A plain name
// goes through Update directly. Per-record failures are collected and the
// rest still applied.
func (s *Store) SetCount(ctx context.Context, pattern string, count uint32) ([]Result, error) {
	if !IsGlob(pattern) {
		r, err := s.Update(ctx, pattern, nil, count)
		if err != nil {
			return nil, err
		}
		return []Result{r}, nil
	}

	if count != format.CountUnset && !s.cfg.IsPrivileged() {
		return nil, types.Errorf(types.ErrKindPermission, nil, "changing %s requires root", pattern)
	}
	recs, err := s.List(ctx, pattern)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(recs))
	var errs error
	for _, rec := range recs {
		r, err := s.Update(ctx, rec.Name, nil, count)
		if err != nil {
			if ctx.Err() != nil {
				return out, multierr.Append(errs, err)
			}
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, r)
	}
	return out, errs
}

func (s *Store) result(info area.Info, label string, changed bool) Result {
	rec := record(info)
	if s.cfg.WantLabels {
		rec.Label = label
	}
	return Result{Record: rec, Changed: changed}
}

func record(info area.Info) types.Record {
	return types.Record{
		Name:   string(info.Name()),
		Value:  string(info.Value()),
		Serial: info.Serial(),
	}
}
