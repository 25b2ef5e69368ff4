package admin

import "github.com/tokogitar/tokogitar/internal/provider"

// Handler serves the back office APIs.
type Handler struct {
	*provider.Container
}

// New creates the back office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
