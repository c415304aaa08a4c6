package domain

import (
	"slices"
	"time"
)

// Entry is the tagging record of a single page.
//
// It is NOT tied to Redis, SQLite or the ArchiveBox sink.
// The JSON layout matches what the browser extension keeps in synced storage,
// so collections written by either side stay readable by the other.
//
// An Entry is uniquely identified by its URL.
type Entry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque identifier assigned once at creation.
	ID string `json:"id"`

	// URL is the identity key. Never overwritten once set.
	// Example: https://x.test/a
	URL string `json:"url"`

	// Timestamp is the creation time.
	Timestamp time.Time `json:"timestamp"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	// Title defaults to the page title at creation.
	Title string `json:"title"`

	// Notes is free text, empty by default.
	Notes string `json:"notes"`

	// ─────────────────────────────
	// Tagging
	// ─────────────────────────────

	// Tags keeps insertion order and never holds the same value twice.
	Tags []string `json:"tags"`
}

// HasTag reports whether tag is already attached to the entry.
func (e *Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// AddTags appends every tag not already present and returns the ones actually added.
func (e *Entry) AddTags(tags ...string) []string {
	var added []string
	for _, tag := range tags {
		if tag == "" || e.HasTag(tag) {
			continue
		}
		e.Tags = append(e.Tags, tag)
		added = append(added, tag)
	}
	return added
}

// RemoveTag drops tag from the entry. Removing an absent tag is a no-op.
func (e *Entry) RemoveTag(tag string) bool {
	before := len(e.Tags)
	e.Tags = slices.DeleteFunc(e.Tags, func(t string) bool { return t == tag })
	return len(e.Tags) != before
}

// Clone returns a deep copy so callers can hand entries out without sharing tag slices.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	c.Tags = slices.Clone(e.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}
