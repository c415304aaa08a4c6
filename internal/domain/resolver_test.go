package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestResolveCreatesEntry(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	res := Resolve(Page{URL: "https://x.test/a", Title: "A"}, nil, now, sequentialIDs())

	if !res.Created {
		t.Fatal("Resolve() Created = false, want true")
	}
	if len(res.Collection) != 1 {
		t.Fatalf("Resolve() collection length = %d, want 1", len(res.Collection))
	}

	want := &Entry{
		ID:        "id-1",
		URL:       "https://x.test/a",
		Timestamp: now,
		Title:     "A",
		Notes:     "",
		Tags:      []string{},
	}
	if diff := cmp.Diff(want, res.Entry); diff != "" {
		t.Errorf("Resolve() entry mismatch (-want +got):\n%s", diff)
	}
	if res.Collection[0] != res.Entry {
		t.Error("Resolve() entry should point into the returned collection")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	ids := sequentialIDs()
	page := Page{URL: "https://x.test/a", Title: "A"}

	first := Resolve(page, nil, time.Now(), ids)
	second := Resolve(page, first.Collection, time.Now(), ids)

	if second.Created {
		t.Error("second Resolve() should not create an entry")
	}
	if second.NeedsWrite() {
		t.Error("second Resolve() should not need a write")
	}
	if first.Entry.ID != second.Entry.ID {
		t.Errorf("Resolve() ID = %v, want %v", second.Entry.ID, first.Entry.ID)
	}
	if len(second.Collection) != 1 {
		t.Errorf("Resolve() collection length = %d, want 1", len(second.Collection))
	}
}

func TestResolveExactURLMatch(t *testing.T) {
	coll := Collection{
		{ID: "a", URL: "https://x.test/a", Timestamp: time.Now(), Tags: []string{}},
	}

	res := Resolve(Page{URL: "https://x.test/a/"}, coll, time.Now(), sequentialIDs())
	if !res.Created {
		t.Error("Resolve() with trailing slash should create a distinct entry")
	}
	if len(res.Collection) != 2 {
		t.Errorf("Resolve() collection length = %d, want 2", len(res.Collection))
	}
}

func TestResolveBackfill(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		entry          *Entry
		wantBackfilled bool
	}{
		{
			name:           "complete entry",
			entry:          &Entry{ID: "x", URL: "u", Timestamp: now, Title: "T", Tags: []string{"a"}},
			wantBackfilled: false,
		},
		{
			name:           "missing id",
			entry:          &Entry{URL: "u", Timestamp: now, Title: "T", Tags: []string{}},
			wantBackfilled: true,
		},
		{
			name:           "missing tags",
			entry:          &Entry{ID: "x", URL: "u", Timestamp: now, Title: "T"},
			wantBackfilled: true,
		},
		{
			name:           "missing timestamp",
			entry:          &Entry{ID: "x", URL: "u", Title: "T", Tags: []string{}},
			wantBackfilled: true,
		},
		{
			name:           "missing title",
			entry:          &Entry{ID: "x", URL: "u", Timestamp: now, Tags: []string{}},
			wantBackfilled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(Page{URL: "u", Title: "Page"}, Collection{tt.entry}, now, sequentialIDs())

			if res.Created {
				t.Fatal("Resolve() should reuse the existing entry")
			}
			if res.Backfilled != tt.wantBackfilled {
				t.Errorf("Resolve() Backfilled = %v, want %v", res.Backfilled, tt.wantBackfilled)
			}
			e := res.Entry
			if e.ID == "" || e.URL == "" || e.Timestamp.IsZero() || e.Tags == nil || e.Title == "" {
				t.Errorf("Resolve() left a field undefined: %+v", e)
			}
		})
	}
}

func TestEntryTags(t *testing.T) {
	e := &Entry{Tags: []string{}}

	added := e.AddTags("news", "go", "news", "")
	if diff := cmp.Diff([]string{"news", "go"}, added); diff != "" {
		t.Errorf("AddTags() added mismatch (-want +got):\n%s", diff)
	}

	e.AddTags("go", "tech")
	if diff := cmp.Diff([]string{"news", "go", "tech"}, e.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}

	if e.RemoveTag("absent") {
		t.Error("RemoveTag() of absent tag should report false")
	}
	if !e.RemoveTag("go") {
		t.Error("RemoveTag() of present tag should report true")
	}
	if diff := cmp.Diff([]string{"news", "tech"}, e.Tags); diff != "" {
		t.Errorf("Tags after remove mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionCloneIsDeep(t *testing.T) {
	coll := Collection{{ID: "a", URL: "u", Tags: []string{"x"}}}
	clone := coll.Clone()

	clone[0].Tags[0] = "changed"
	clone[0].Title = "changed"

	if coll[0].Tags[0] != "x" || coll[0].Title != "" {
		t.Error("Clone() should not share state with the original")
	}
}
