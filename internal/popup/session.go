package popup

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/archivetag/internal/autocomplete"
	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

// Key is a keyboard key name as reported by the presentation layer
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// ActionKind says what the presentation layer must do after an event
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMoveCursor
	ActionAddSelected
	ActionAddFreeText
	ActionDismissDropdown
	ActionClose
)

func (k ActionKind) String() string {
	switch k {
	case ActionMoveCursor:
		return "move"
	case ActionAddSelected:
		return "add-selected"
	case ActionAddFreeText:
		return "add-free-text"
	case ActionDismissDropdown:
		return "dismiss"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// Action is the outcome of a key or click. Tags is set for the add actions.
type Action struct {
	Kind ActionKind
	Tags []string
}

// Session is the state of one open tagging popup.
// It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	page    domain.Page
	current []string
	input   string
	cursor  *autocomplete.Cursor
	limit   int
	closed  bool
}

// NewSession opens a popup for page. current holds the entry's tags.
func NewSession(page domain.Page, current []string, limit int) *Session {
	if limit == 0 {
		limit = autocomplete.DefaultLimit
	}
	return &Session{
		page:    page,
		current: current,
		cursor:  autocomplete.NewCursor(),
		limit:   limit,
	}
}

// Page returns the page the popup was opened for
func (s *Session) Page() domain.Page { return s.page }

// Input returns the text typed so far
func (s *Session) Input() string { return s.input }

// Matches returns the dropdown content
func (s *Session) Matches() []string { return s.cursor.Matches() }

// Selected returns the highlighted dropdown row
func (s *Session) Selected() (string, bool) { return s.cursor.Selected() }

// Closed reports whether the popup was dismissed
func (s *Session) Closed() bool { return s.closed }

// SetCurrentTags refreshes the entry's tags after a mutation
func (s *Session) SetCurrentTags(tags []string) {
	s.current = tags
}

// SetInput replaces the typed text and recomputes the dropdown from allTags.
func (s *Session) SetInput(text string, allTags []string) {
	s.input = text
	s.cursor.SetMatches(autocomplete.Match(text, allTags, s.limit))
}

// OnKey maps a key press to an action and updates the session.
func (s *Session) OnKey(k Key) Action {
	if s.closed {
		return Action{Kind: ActionNone}
	}

	switch k {
	case KeyArrowDown:
		if len(s.cursor.Matches()) == 0 {
			return Action{Kind: ActionNone}
		}
		s.cursor.Down()
		return Action{Kind: ActionMoveCursor}

	case KeyArrowUp:
		if len(s.cursor.Matches()) == 0 {
			return Action{Kind: ActionNone}
		}
		s.cursor.Up()
		return Action{Kind: ActionMoveCursor}

	case KeyEnter:
		return s.onEnter()

	case KeyEscape:
		s.cursor.Reset()
		s.closed = true
		return Action{Kind: ActionClose}
	}

	return Action{Kind: ActionNone}
}

// OnOutsideClick hides the dropdown without touching the typed text.
func (s *Session) OnOutsideClick() Action {
	if s.closed {
		return Action{Kind: ActionNone}
	}
	s.cursor.Reset()
	return Action{Kind: ActionDismissDropdown}
}

func (s *Session) onEnter() Action {
	if tag, ok := s.cursor.Selected(); ok {
		s.clearInput()
		return Action{Kind: ActionAddSelected, Tags: []string{tag}}
	}

	if tags := autocomplete.ParseFreeText(s.input, s.current); len(tags) > 0 {
		s.clearInput()
		return Action{Kind: ActionAddFreeText, Tags: tags}
	}

	if strings.TrimSpace(s.input) == "" {
		s.cursor.Reset()
		s.closed = true
		return Action{Kind: ActionClose}
	}

	// every typed tag is already attached; keep the text so the user sees it
	return Action{Kind: ActionNone}
}

func (s *Session) clearInput() {
	s.input = ""
	s.cursor.Reset()
}

// Mutator is the subset of the tagging service a popup drives
type Mutator interface {
	AddTags(ctx context.Context, page domain.Page, tags []string) (*tagging.MutationResult, error)
}

// Apply runs the mutation an action asks for. It returns nil for actions that mutate nothing.
func (s *Session) Apply(ctx context.Context, m Mutator, a Action) (*tagging.MutationResult, error) {
	if a.Kind != ActionAddSelected && a.Kind != ActionAddFreeText {
		return nil, nil
	}

	res, err := m.AddTags(ctx, s.page, a.Tags)
	if err != nil {
		return nil, err
	}
	s.SetCurrentTags(res.Entry.Tags)
	return res, nil
}
