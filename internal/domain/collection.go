package domain

// Collection is every known entry in creation order.
// It is persisted as a single value: reads and writes always cover the whole slice.
type Collection []*Entry

// Find returns the entry whose URL equals url exactly.
func (c Collection) Find(url string) (*Entry, bool) {
	for _, e := range c {
		if e != nil && e.URL == url {
			return e, true
		}
	}
	return nil, false
}

// Clone deep-copies the collection.
func (c Collection) Clone() Collection {
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if e == nil {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

