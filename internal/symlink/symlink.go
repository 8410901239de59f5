// Package symlink abstracts symlink creation and inspection behind a
// small capability, with one implementation per platform. Not every
// platform lets arbitrary users create symlinks.
package symlink

// Linker creates and reads symbolic links.
type Linker interface {
	// Create makes a symlink at linkPath whose literal target is target.
	Create(target, linkPath string) error
	// ReadTarget returns the literal target text of the link at
	// linkPath, without resolving it.
	ReadTarget(linkPath string) (string, error)
}

// New returns the linker for the current platform.
func New() Linker {
	return platformLinker{}
}
