package components

// List is a simple scrollable list with a cursor.
type List struct {
	Items    []string
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list showing pageSize items at a time.
func NewList(pageSize int) *List {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &List{PageSize: pageSize}
}

// SetItems replaces items, clamping the cursor so a removal near the end
// does not leave the cursor past the last item.
func (l *List) SetItems(items []string) {
	l.Items = items
	if l.Cursor >= len(items) {
		l.Cursor = len(items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Offset > l.Cursor {
		l.Offset = l.Cursor
	}
}

// Down moves the cursor down, scrolling when it leaves the page.
func (l *List) Down() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

// Up moves the cursor up, scrolling when it leaves the page.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Visible returns the items on the current page.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := l.Offset + l.PageSize
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.Offset:end]
}

// Selected returns the cursor index.
func (l *List) Selected() int {
	return l.Cursor
}

// SelectedItem returns the item under the cursor, false when empty.
func (l *List) SelectedItem() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return "", false
	}
	return l.Items[l.Cursor], true
}

// IsSelected reports whether the given absolute index is under the cursor.
func (l *List) IsSelected(absIdx int) bool {
	return absIdx == l.Cursor
}

// RelToAbs converts a visible-page index to an absolute index.
func (l *List) RelToAbs(relIdx int) int {
	return l.Offset + relIdx
}
