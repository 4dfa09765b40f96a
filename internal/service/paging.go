package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageBounds converts zero-based page and size into limit and offset.
func pageBounds(page, size int) (limit, offset int) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}
