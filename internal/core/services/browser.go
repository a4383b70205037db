package services

import (
	"sync"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// Browser holds one caller's browsing session over a library: the active
// filter, a window per collection and the memoised filtered result.
//
// Windows only grow through LoadMore and reset to the page size when the
// filter changes. Growing one window never re-filters any collection.
type Browser struct {
	mu       sync.Mutex
	lib      *domain.Library
	viewer   domain.Viewer
	filter   domain.LibraryFilter
	pageSize int
	windows  domain.PageWindows
	filtered *domain.FilteredLibrary
}

// NewBrowser creates a session with every window at pageSize.
func NewBrowser(lib *domain.Library, viewer domain.Viewer, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	b := &Browser{
		lib:      lib,
		viewer:   viewer,
		filter:   domain.DefaultFilter(),
		pageSize: pageSize,
	}
	b.resetWindows()
	return b
}

// Filter returns the active filter.
func (b *Browser) Filter() domain.LibraryFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.LibraryFilter{
		Scope:      b.filter.Scope,
		Facets:     b.filter.Facets.Clone(),
		Combinator: b.filter.Combinator,
	}
}

// SetFilter replaces the active filter. Windows reset only when the new
// filter selects differently from the old one. Returns true if it did.
func (b *Browser) SetFilter(filter domain.LibraryFilter) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.filter.Equal(filter) {
		return false
	}
	b.filter = domain.LibraryFilter{
		Scope:      filter.Scope,
		Facets:     filter.Facets.Clone(),
		Combinator: filter.Combinator,
	}
	b.filtered = nil
	b.resetWindows()
	return true
}

// SetViewer switches the principal. The filtered result is recomputed but
// windows are kept.
func (b *Browser) SetViewer(viewer domain.Viewer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewer = viewer
	b.filtered = nil
}

// SetLibrary swaps in reloaded data. The filtered result is recomputed but
// windows are kept.
func (b *Browser) SetLibrary(lib *domain.Library) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lib = lib
	b.filtered = nil
}

// LoadMore grows one collection's window by one page and returns the new
// window size. Unknown kinds are ignored.
func (b *Browser) LoadMore(kind domain.EntityKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !kind.IsValid() {
		return 0
	}
	b.windows[kind] += b.pageSize
	return b.windows[kind]
}

// Window returns the current window size of a collection.
func (b *Browser) Window(kind domain.EntityKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windows[kind]
}

// View returns the windowed five-collection view.
func (b *Browser) View() *domain.LibraryView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return WindowLibrary(b.result(), b.windows, b.pageSize)
}

// Filtered returns the memoised unwindowed result. Callers must not modify
// it.
func (b *Browser) Filtered() *domain.FilteredLibrary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result()
}

// result must be called with mu held.
func (b *Browser) result() *domain.FilteredLibrary {
	if b.filtered == nil {
		b.filtered = FilterLibrary(b.lib, b.viewer, b.filter)
	}
	return b.filtered
}

func (b *Browser) resetWindows() {
	b.windows = make(domain.PageWindows, len(domain.EntityKinds))
	for _, kind := range domain.EntityKinds {
		b.windows[kind] = b.pageSize
	}
}
