package autocomplete

// NoSelection is the cursor value when nothing in the dropdown is highlighted.
const NoSelection = -1

// Cursor tracks the dropdown matches and the highlighted row.
// The zero value is not ready for use; call NewCursor.
type Cursor struct {
	matches []string
	index   int
}

// NewCursor returns an empty cursor with no selection.
func NewCursor() *Cursor {
	return &Cursor{index: NoSelection}
}

// SetMatches replaces the dropdown content. The selection is clamped to the new list.
func (c *Cursor) SetMatches(matches []string) {
	c.matches = matches
	c.clamp()
}

// Matches returns the current dropdown content.
func (c *Cursor) Matches() []string {
	return c.matches
}

// Index returns the highlighted row, NoSelection when none.
func (c *Cursor) Index() int {
	return c.index
}

// Down moves the highlight one row down, stopping at the last match.
func (c *Cursor) Down() {
	c.index = min(c.index+1, len(c.matches)-1)
}

// Up moves the highlight one row up, stopping at NoSelection.
func (c *Cursor) Up() {
	c.index = max(c.index-1, NoSelection)
}

// Selected returns the highlighted tag.
func (c *Cursor) Selected() (string, bool) {
	if c.index < 0 || c.index >= len(c.matches) {
		return "", false
	}
	return c.matches[c.index], true
}

// Reset clears the dropdown and the selection.
func (c *Cursor) Reset() {
	c.matches = nil
	c.index = NoSelection
}

func (c *Cursor) clamp() {
	if c.index > len(c.matches)-1 {
		c.index = len(c.matches) - 1
	}
	if c.index < NoSelection {
		c.index = NoSelection
	}
}
