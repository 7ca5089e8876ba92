package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"nagios-stats/pkg/graph"
	"nagios-stats/pkg/logger"
	"nagios-stats/pkg/model"
	"nagios-stats/pkg/objects"
	"nagios-stats/pkg/status"
)

// This package owns the merged host graph and swaps in a fresh copy on every refresh.

// ---- Errors ----

var (
	// ErrFileMissing means a configured path does not exist.
	ErrFileMissing = errors.New("nagios cache file not found")
	// ErrFileOpen means a path exists but could not be opened or read.
	ErrFileOpen = errors.New("nagios cache file unreadable")
)

// ---- Store ----

// Store parses the objects cache and the status file into a Snapshot.
// Readers always see a complete snapshot; a failed refresh keeps the previous one.
type Store struct {
	objectsPath string
	statusPath  string
	log         zerolog.Logger
	now         func() time.Time

	refreshMu sync.Mutex
	current   atomic.Pointer[Snapshot]
}

// Option adjusts a Store before its first refresh.
type Option func(*Store)

// WithLogger replaces the component logger.
func WithLogger(log zerolog.Logger) Option {
	return func(st *Store) { st.log = log }
}

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// Open checks both paths and performs the first refresh. No store is returned on failure.
func Open(objectsPath, statusPath string, opts ...Option) (*Store, error) {
	for _, path := range []string{objectsPath, statusPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, classify(err)
		}
	}

	st := &Store{
		objectsPath: objectsPath,
		statusPath:  statusPath,
		log:         logger.WithComponent("store"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}

	if _, err := st.Refresh(); err != nil {
		return nil, err
	}
	return st, nil
}

// Refresh re-reads both files and publishes a new snapshot only if both parsed.
func (st *Store) Refresh() (*Snapshot, error) {
	st.refreshMu.Lock()
	defer st.refreshMu.Unlock()

	started := st.now()
	objs, err := objects.ParseFile(st.objectsPath)
	if err != nil {
		st.log.Error().Err(err).Str("path", st.objectsPath).Msg("objects cache refresh failed")
		return nil, classify(err)
	}
	statusData, err := status.ParseFile(st.statusPath)
	if err != nil {
		st.log.Error().Err(err).Str("path", st.statusPath).Msg("status file refresh failed")
		return nil, classify(err)
	}

	if objs.Empty() {
		st.log.Warn().Str("path", st.objectsPath).Msg("objects cache has no blocks")
	}
	if statusData.Empty() {
		st.log.Warn().Str("path", st.statusPath).Msg("status file has no blocks")
	}

	snapshot := newSnapshot(objs, statusData, graph.Build(objs, statusData), started)
	for _, issue := range snapshot.Issues() {
		st.log.Warn().Str("path", issue.Path).Int("line", issue.Line).Str("text", issue.Text).Msg(issue.Reason)
	}
	st.current.Store(snapshot)

	st.log.Info().
		Str("snapshot", snapshot.ID.String()).
		Int("hosts", len(snapshot.Hosts())).
		Int("services", snapshot.Hosts().ServiceCount()).
		Int("stubs", snapshot.Stubs()).
		Int("issues", len(snapshot.Issues())).
		Dur("took", st.now().Sub(started)).
		Msg("nagios data refreshed")
	return snapshot, nil
}

// Snapshot returns the most recently published snapshot.
func (st *Store) Snapshot() *Snapshot {
	return st.current.Load()
}

// Paths returns the objects cache and status file locations.
func (st *Store) Paths() (string, string) {
	return st.objectsPath, st.statusPath
}

func (st *Store) Hosts() model.Hosts                            { return st.Snapshot().Hosts() }
func (st *Store) HostGroups() map[string]*model.ConfigObject    { return st.Snapshot().HostGroups() }
func (st *Store) Contacts() map[string]*model.ConfigObject      { return st.Snapshot().Contacts() }
func (st *Store) ContactGroups() map[string]*model.ConfigObject { return st.Snapshot().ContactGroups() }
func (st *Store) TimePeriods() map[string]*model.ConfigObject   { return st.Snapshot().TimePeriods() }
func (st *Store) Commands() map[string]*model.ConfigObject      { return st.Snapshot().Commands() }
func (st *Store) Other(objectType string) []*model.ConfigObject { return st.Snapshot().Other(objectType) }

// ---- Helpers ----

func classify(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileMissing, err)
	}
	return fmt.Errorf("%w: %w", ErrFileOpen, err)
}
