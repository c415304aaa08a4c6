package tagging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/autocomplete"
	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/index"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/sink"
	"github.com/MrSnakeDoc/archivetag/internal/store"
)

// Enqueuer hands a push to the ordered remote dispatcher
type Enqueuer interface {
	Enqueue(url string, tags []string) *sink.Pending
}

// MutationResult is returned by every tag mutation
type MutationResult struct {
	Entry      *domain.Entry     `json:"entry"`
	Collection domain.Collection `json:"-"`
	Remote     sink.Result       `json:"remote"`
	Pushed     bool              `json:"pushed"`
}

// Options tunes the service. Zero values fall back to defaults.
type Options struct {
	SuggestLimit      int
	AutocompleteLimit int
	Now               func() time.Time
	NewID             domain.IDFunc
}

// Service is the single access point for reading and mutating the entry collection.
// Every read-modify-write runs under one mutex: the backend has no compare-and-swap,
// so two concurrent resolutions of a new URL must never both append.
type Service struct {
	mu         sync.Mutex
	store      *store.EntryStore
	dispatcher Enqueuer
	logger     logger.Logger

	suggestLimit      int
	autocompleteLimit int
	now               func() time.Time
	newID             domain.IDFunc
}

// NewService creates a tagging service
func NewService(st *store.EntryStore, dispatcher Enqueuer, log logger.Logger, opts Options) *Service {
	s := &Service{
		store:             st,
		dispatcher:        dispatcher,
		logger:            log,
		suggestLimit:      opts.SuggestLimit,
		autocompleteLimit: opts.AutocompleteLimit,
		now:               opts.Now,
		newID:             opts.NewID,
	}
	if s.suggestLimit == 0 {
		s.suggestLimit = index.DefaultSuggestLimit
	}
	if s.autocompleteLimit == 0 {
		s.autocompleteLimit = autocomplete.DefaultLimit
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = domain.NewID
	}
	return s
}

// ========================================
// Reads
// ========================================

// ResolveCurrentEntry returns the canonical entry for page, creating and persisting it on first sight.
func (s *Service) ResolveCurrentEntry(ctx context.Context, page domain.Page) (*domain.Entry, domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.resolveLocked(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	return res.Entry.Clone(), res.Collection.Clone(), nil
}

// SuggestedTags returns recently used tags the page does not carry yet
func (s *Service) SuggestedTags(ctx context.Context, page domain.Page) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.resolveLocked(ctx, page)
	if err != nil {
		return nil, err
	}
	return index.SuggestedTags(res.Entry, res.Collection, s.suggestLimit), nil
}

// MatchAutocomplete filters the tag universe by query
func (s *Service) MatchAutocomplete(ctx context.Context, query string) ([]string, error) {
	all, err := s.AllTags(ctx)
	if err != nil {
		return nil, err
	}
	return autocomplete.Match(query, all, s.autocompleteLimit), nil
}

// AllTags returns every distinct tag, sorted case-insensitively
func (s *Service) AllTags(ctx context.Context) ([]string, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return index.AllTags(coll), nil
}

// TagStats returns usage count and last use per tag
func (s *Service) TagStats(ctx context.Context) ([]index.TagStat, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return index.Stats(coll), nil
}

// EntryCount returns the number of stored entries
func (s *Service) EntryCount(ctx context.Context) (int, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(coll), nil
}

// ========================================
// Mutations
// ========================================

// AddTag adds a single tag to the page's entry
func (s *Service) AddTag(ctx context.Context, page domain.Page, tag string) (*MutationResult, error) {
	return s.AddTags(ctx, page, []string{tag})
}

// AddTags adds every new, non-blank tag in one write.
// When nothing is left to add the collection is not written and nothing is pushed.
func (s *Service) AddTags(ctx context.Context, page domain.Page, tags []string) (*MutationResult, error) {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}

	return s.mutate(ctx, page, func(e *domain.Entry) bool {
		return len(e.AddTags(clean...)) > 0
	})
}

// RemoveTag removes tag from the page's entry.
// The write and the push happen even when the tag was absent.
// A blank tag is ignored: nothing is written or pushed.
func (s *Service) RemoveTag(ctx context.Context, page domain.Page, tag string) (*MutationResult, error) {
	tag = strings.TrimSpace(tag)
	return s.mutate(ctx, page, func(e *domain.Entry) bool {
		if tag == "" {
			return false
		}
		e.RemoveTag(tag)
		return true
	})
}

func (s *Service) mutate(ctx context.Context, page domain.Page, apply func(e *domain.Entry) bool) (*MutationResult, error) {
	out, pending, err := s.mutateLocked(ctx, page, apply)
	if err != nil || pending == nil {
		return out, err
	}

	remote, err := pending.Wait(ctx)
	if err != nil {
		// the push keeps running on the dispatcher, only its outcome is lost
		remote = sink.Result{Detail: fmt.Sprintf("Push not awaited: %v", err)}
	}
	out.Remote = remote
	return out, nil
}

func (s *Service) mutateLocked(ctx context.Context, page domain.Page, apply func(e *domain.Entry) bool) (*MutationResult, *sink.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	res := domain.Resolve(page, coll, s.now(), s.newID)
	if !apply(res.Entry) {
		return &MutationResult{
			Entry:      res.Entry.Clone(),
			Collection: res.Collection.Clone(),
		}, nil, nil
	}

	if err := s.store.Save(ctx, res.Collection); err != nil {
		s.logger.Error("failed to save entries",
			logger.String("url", page.URL),
			logger.Error(err))
		return nil, nil, err
	}

	pending := s.dispatcher.Enqueue(res.Entry.URL, res.Entry.Tags)
	return &MutationResult{
		Entry:      res.Entry.Clone(),
		Collection: res.Collection.Clone(),
		Pushed:     true,
	}, pending, nil
}

// resolveLocked loads the collection and resolves page, persisting only when the resolution changed something.
func (s *Service) resolveLocked(ctx context.Context, page domain.Page) (domain.Resolution, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return domain.Resolution{}, err
	}

	res := domain.Resolve(page, coll, s.now(), s.newID)
	if res.NeedsWrite() {
		if err := s.store.Save(ctx, res.Collection); err != nil {
			return domain.Resolution{}, err
		}
		if res.Created {
			s.logger.Debug("entry created", logger.String("url", page.URL))
		}
	}
	return res, nil
}
