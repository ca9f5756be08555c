package function

// Page is one page of listed items plus the token fetching the next page.
// An empty NextPageToken marks the last page.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}
