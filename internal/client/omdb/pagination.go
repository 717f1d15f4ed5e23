package omdb

// PageSize is the fixed number of results the provider returns per page.
const PageSize = 10

// TotalPages is ceil(totalResults / PageSize).
func TotalPages(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	return (totalResults + PageSize - 1) / PageSize
}

// PageWindow returns up to width consecutive page numbers around current,
// clamped to [1, total]. The window is centred on current where possible
// and slides at either end, so current is always included.
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return nil
	}
	if width > total {
		width = total
	}
	current = max(1, min(current, total))

	start := current - width/2
	start = max(1, min(start, total-width+1))

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
