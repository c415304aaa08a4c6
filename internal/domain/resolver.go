package domain

import (
	"time"

	"github.com/google/uuid"
)

// Page describes the page a caller is looking at.
type Page struct {
	URL   string // Exact URL, used as identity key
	Title string // Default title for a freshly created entry
}

// Resolution is the outcome of resolving a page against a collection.
type Resolution struct {
	Entry      *Entry     // Canonical entry for the page (points into Collection)
	Collection Collection // Full collection, possibly with the new entry appended
	Created    bool       // Entry was appended by this resolution
	Backfilled bool       // At least one missing field was defaulted
}

// NeedsWrite reports whether the resolution changed the collection and must be persisted.
func (r Resolution) NeedsWrite() bool {
	return r.Created || r.Backfilled
}

// IDFunc generates entry identifiers.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Resolve finds the canonical entry for page in coll, appending a new one on first sight.
// Examples:
//   - empty collection, "https://x.test/a" -> new entry, Created=true
//   - same call on the returned collection -> same entry, Created=false
//
// Resolve never persists; the caller decides based on NeedsWrite.
func Resolve(page Page, coll Collection, now time.Time, newID IDFunc) Resolution {
	if newID == nil {
		newID = NewID
	}

	res := Resolution{Collection: coll}

	entry, ok := coll.Find(page.URL)
	if !ok {
		entry = &Entry{
			ID:        newID(),
			URL:       page.URL,
			Timestamp: now,
			Title:     page.Title,
			Notes:     "",
			Tags:      []string{},
		}
		res.Collection = append(coll, entry)
		res.Created = true
	}

	res.Backfilled = backfill(entry, page, now, newID)
	res.Entry = entry
	return res
}

// backfill defaults every missing field and reports whether anything changed.
func backfill(e *Entry, page Page, now time.Time, newID IDFunc) bool {
	changed := false
	if e.ID == "" {
		e.ID = newID()
		changed = true
	}
	if e.URL == "" {
		e.URL = page.URL
		changed = true
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
		changed = true
	}
	if e.Tags == nil {
		e.Tags = []string{}
		changed = true
	}
	if e.Title == "" && page.Title != "" {
		e.Title = page.Title
		changed = true
	}
	return changed
}
