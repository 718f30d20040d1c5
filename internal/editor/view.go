package editor

// View window sizes. The assumption table is paged; the outcome lists show
// a short preview until expanded.
const (
	PageSize    = 5
	PreviewSize = 3
)

// Window is the visible slice of a paged collection. Pages are 1-based.
type Window struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`

	// Start and End bound the visible records: collection[Start:End]
	Start int `json:"start"`
	End   int `json:"end"`
}

// Paginate derives the visible window for a collection of count records.
// The requested page is clamped into [1, TotalPages]; a collection shrunk
// below the current page therefore pulls the cursor back with it.
func Paginate(count, page int) Window {
	totalPages := (count + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}
	return Window{Page: page, TotalPages: totalPages, Start: start, End: end}
}

// Preview is the visible prefix of an expandable list.
type Preview struct {
	// Visible is the number of records shown
	Visible int `json:"visible"`

	// Expanded reports the current toggle state
	Expanded bool `json:"expanded"`

	// HasMore is true when the list is long enough for the toggle control
	HasMore bool `json:"has_more"`
}

// PreviewOf derives the visible prefix for a list of count records. When
// collapsed only the first PreviewSize records show; the toggle is offered
// only when the list is longer than that.
func PreviewOf(count int, expanded bool) Preview {
	p := Preview{Expanded: expanded, HasMore: count > PreviewSize}
	if expanded || count <= PreviewSize {
		p.Visible = count
	} else {
		p.Visible = PreviewSize
	}
	return p
}
