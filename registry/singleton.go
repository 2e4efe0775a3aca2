package registry

import "sync"

// Global registry instance and initialization guard.
var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the singleton registry instance.
// Creates a default registry on first call if not already initialized.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = New(nil)
	})
	return globalRegistry
}

// InitGlobal installs r as the global registry.
// Must be called before any call to Global() to take effect, which in
// practice means before the first constant is created.
// Reports whether r was installed.
func InitGlobal(r *Registry) bool {
	installed := false
	globalOnce.Do(func() {
		globalRegistry = r
		installed = true
	})
	return installed
}
