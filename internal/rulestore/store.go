package rulestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"

	"gopkg.in/yaml.v3"
)

// Bundle is one immutable, internally consistent snapshot of the rule set,
// owner map, and taxonomy. Callers must not mutate it; the store replaces the
// whole bundle on reload.
type Bundle struct {
	Rules    []models.Rule
	Owners   map[string]string
	Taxonomy models.Taxonomy
	LoadedAt time.Time
}

// cacheDocument is the on-disk cache payload: the raw source document plus
// the fetch timestamp. Raw rows round-trip cleanly through YAML, typed rules
// do not.
type cacheDocument struct {
	FetchedAt time.Time `yaml:"fetched_at"`
	Document  Document  `yaml:"document"`
}

// Store serves rule bundles with time-boxed caching. A fresh in-memory bundle
// is reused; a stale one triggers a refetch from the source. On source
// failure the store degrades: stale memory first, then the cache file, then
// an empty bundle. Categorization keeps working through outages, it just
// works with old rules.
type Store struct {
	source    Source
	cacheFile string
	ttl       time.Duration
	logger    logging.Logger

	now func() time.Time

	mu     sync.Mutex
	bundle *Bundle
}

// NewStore creates a Store around the given source. cacheFile may be empty to
// disable the on-disk fallback. A zero ttl means every Load refetches.
func NewStore(source Source, cacheFile string, ttl time.Duration, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{
		source:    source,
		cacheFile: cacheFile,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// Load returns the current bundle, refetching from the source when the cached
// one is older than the TTL or when force is set. Load never fails; it
// degrades to stale or empty data and logs what happened.
func (s *Store) Load(force bool) *Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.bundle != nil && s.now().Sub(s.bundle.LoadedAt) < s.ttl {
		return s.bundle
	}

	bundle, err := s.fetch()
	if err == nil {
		s.bundle = bundle
		return s.bundle
	}
	s.logger.WithError(err).Warn("Rule fetch failed, falling back to cached rules")

	if s.bundle != nil {
		return s.bundle
	}

	if cached := s.loadCacheFile(); cached != nil {
		s.bundle = cached
		return s.bundle
	}

	s.logger.Warn("No cached rules available, categorizing with an empty rule set")
	s.bundle = &Bundle{
		Owners:   map[string]string{},
		LoadedAt: s.now(),
	}
	return s.bundle
}

// fetch pulls a fresh document from the source, converts it, and writes the
// cache file.
func (s *Store) fetch() (*Bundle, error) {
	doc, err := s.source.Fetch()
	if err != nil {
		return nil, err
	}

	rules, warnings, err := ConvertRules(doc.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rule document: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn(w)
	}

	fetchedAt := s.now()
	s.writeCacheFile(doc, fetchedAt)

	owners := doc.Owners
	if owners == nil {
		owners = map[string]string{}
	}

	s.logger.WithFields(
		logging.Field{Key: "rules", Value: len(rules)},
		logging.Field{Key: "owners", Value: len(owners)},
	).Debug("Loaded rule bundle")

	return &Bundle{
		Rules:    rules,
		Owners:   owners,
		Taxonomy: doc.Taxonomy,
		LoadedAt: fetchedAt,
	}, nil
}

// writeCacheFile overwrites the on-disk cache wholesale. Failures are logged
// and otherwise ignored; the cache is best effort.
func (s *Store) writeCacheFile(doc *Document, fetchedAt time.Time) {
	if s.cacheFile == "" {
		return
	}

	data, err := yaml.Marshal(cacheDocument{FetchedAt: fetchedAt, Document: *doc})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to serialize rule cache")
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.cacheFile), 0o755); err != nil {
		s.logger.WithError(err).Warn("Failed to create rule cache directory")
		return
	}
	if err := os.WriteFile(s.cacheFile, data, 0o644); err != nil {
		s.logger.WithError(err).Warn("Failed to write rule cache file")
	}
}

// loadCacheFile reads the last persisted document, ignoring its age. Stale
// rules beat no rules during a source outage.
func (s *Store) loadCacheFile() *Bundle {
	if s.cacheFile == "" {
		return nil
	}

	data, err := os.ReadFile(s.cacheFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Failed to read rule cache file")
		}
		return nil
	}

	var cached cacheDocument
	if err := yaml.Unmarshal(data, &cached); err != nil {
		s.logger.WithError(err).Warn("Failed to parse rule cache file")
		return nil
	}

	rules, warnings, err := ConvertRules(cached.Document.Rules)
	if err != nil {
		s.logger.WithError(err).Warn("Cached rule document is invalid")
		return nil
	}
	for _, w := range warnings {
		s.logger.Warn(w)
	}

	owners := cached.Document.Owners
	if owners == nil {
		owners = map[string]string{}
	}

	s.logger.WithField("cache_file", s.cacheFile).Info("Using cached rules after source failure")

	return &Bundle{
		Rules:    rules,
		Owners:   owners,
		Taxonomy: cached.Document.Taxonomy,
		LoadedAt: cached.FetchedAt,
	}
}
