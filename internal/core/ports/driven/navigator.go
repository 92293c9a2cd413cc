package driven

import "context"

// Navigator performs the side-effecting navigation to a selected
// result's route. Implementations resolve site-relative routes
// themselves; the core treats the URL as opaque.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}
