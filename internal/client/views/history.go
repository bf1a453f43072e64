package views

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/attendance/internal/client/models"
)

const (
	DefaultHistoryPageSize = 20
	// NearBottomThreshold is how close to the end of the list, in pixels,
	// counts as "reached the bottom".
	NearBottomThreshold = 20.0
)

// NearBottom reports whether a scroll position is close enough to the end
// of the content to load the next page.
func NearBottom(viewportHeight, offset, contentHeight float64) bool {
	return viewportHeight+offset >= contentHeight-NearBottomThreshold
}

type RecordsSource interface {
	Records(ctx context.Context, page, perPage int) (*models.RecordsPage, error)
}

// History is the paginated list state. Records keep server order; pages
// are appended as returned, so duplicates are possible if the server's
// ordering shifts between fetches.
type History struct {
	src      RecordsSource
	pageSize int

	mu      sync.Mutex
	records []models.AttendanceRecord
	page    int
	hasMore bool
	loading bool
	loaded  bool
}

func NewHistory(src RecordsSource, pageSize int) *History {
	if pageSize <= 0 {
		pageSize = DefaultHistoryPageSize
	}
	return &History{src: src, pageSize: pageSize}
}

// acquire takes the loading flag.
func (h *History) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loading {
		return false
	}
	h.loading = true
	return true
}

func (h *History) release() {
	h.mu.Lock()
	h.loading = false
	h.mu.Unlock()
}

// Load fetches page 1 and replaces the list. It serves both the initial
// load and refresh. On failure the previous list is kept.
func (h *History) Load(ctx context.Context) error {
	if !h.acquire() {
		return ErrBusy
	}
	defer h.release()

	resp, err := h.src.Records(ctx, 1, h.pageSize)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = slices.Clone(resp.Records)
	h.page = 1
	h.hasMore = resp.Pagination.HasNext
	h.loaded = true
	return nil
}

// Refresh resets to page 1.
func (h *History) Refresh(ctx context.Context) error {
	return h.Load(ctx)
}

// LoadMore appends the next page. It returns false without fetching when
// the server reported no next page. A call overlapping another load gets
// ErrBusy.
func (h *History) LoadMore(ctx context.Context) (bool, error) {
	h.mu.Lock()
	if !h.loaded || !h.hasMore {
		h.mu.Unlock()
		return false, nil
	}
	if h.loading {
		h.mu.Unlock()
		return false, ErrBusy
	}
	h.loading = true
	next := h.page + 1
	h.mu.Unlock()
	defer h.release()

	resp, err := h.src.Records(ctx, next, h.pageSize)
	if err != nil {
		return false, fmt.Errorf("load page %d: %w", next, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, resp.Records...)
	h.page = next
	h.hasMore = resp.Pagination.HasNext
	return true, nil
}

// Records returns a copy of the accumulated list.
func (h *History) Records() []models.AttendanceRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.records)
}

func (h *History) Page() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.page
}

func (h *History) HasMore() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasMore
}

func (h *History) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

// Header is the "N record(s)" line.
func (h *History) Header() string {
	return CountLabel(len(h.Records()))
}

func CountLabel(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}
