// Package window manages secondary rendering surfaces. A surface is owned by
// its Manager; everything else holds a weak Handle that must be upgraded at
// the moment of use and may fail to upgrade once the surface is gone.
package window

import (
	"context"
	"errors"
)

var (
	// ErrSurfaceGone reports a handle whose surface no longer exists.
	ErrSurfaceGone = errors.New("surface is gone")
	// ErrUnsupported is returned by managers that cannot perform an operation.
	ErrUnsupported = errors.New("operation not supported by window manager")
)

// Root describes the root view a new surface renders.
type Root struct {
	Name    string
	Command []string
	Env     map[string]string
	// IDEnv names an environment variable set to the new surface id so the
	// root view can identify itself to the host.
	IDEnv string
	Size  string
}

func (r Root) envWithID(id string) map[string]string {
	env := make(map[string]string, len(r.Env)+1)
	for k, v := range r.Env {
		env[k] = v
	}
	if r.IDEnv != "" {
		env[r.IDEnv] = id
	}
	return env
}

// Surface is a strong reference to a live surface.
type Surface interface {
	ID() string
	Target() string
}

// Resolver upgrades surface ids to live surfaces.
type Resolver interface {
	Resolve(id string) (Surface, bool)
}

// Handle is a weak reference to a surface.
type Handle struct {
	id       string
	resolver Resolver
}

// NewHandle builds a weak handle resolved through r.
func NewHandle(id string, r Resolver) Handle {
	return Handle{id: id, resolver: r}
}

// ID returns the surface id the handle refers to.
func (h Handle) ID() string {
	return h.id
}

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool {
	return h.id == ""
}

// Equal compares handles by surface identity.
func (h Handle) Equal(other Handle) bool {
	return h.id == other.id
}

// Upgrade resolves the handle to a live surface.
func (h Handle) Upgrade() (Surface, bool) {
	if h.id == "" || h.resolver == nil {
		return nil, false
	}
	return h.resolver.Resolve(h.id)
}

// Manager creates and tears down surfaces.
type Manager interface {
	Resolver
	Create(ctx context.Context, root Root) (Surface, error)
	Downgrade(s Surface) Handle
	Close(ctx context.Context, h Handle) error
	ToggleFullscreen(ctx context.Context, target string) error
	OpenShell(ctx context.Context, dir string) error
}
