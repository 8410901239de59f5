package model

// StateKind classifies what currently sits at a workspace's output path.
// Computed fresh on every run, never persisted.
type StateKind string

const (
	// StateAbsent means nothing exists at the output path.
	StateAbsent StateKind = "absent"
	// StatePlainDirectory means the output path is an ordinary directory.
	StatePlainDirectory StateKind = "plain-directory"
	// StateManagedLink means the output path is a symlink of the exact
	// managed shape <store>/<identifier>/target.
	StateManagedLink StateKind = "managed-link"
	// StateForeign covers everything targo will not touch: non-targo
	// symlinks, relative-target symlinks, regular files, fifos.
	StateForeign StateKind = "foreign"
)

// RedirectionState is the classified state of one workspace output path.
type RedirectionState struct {
	Kind       StateKind
	Workspace  string
	OutputPath string
	// Identifier is the entry identifier extracted from the symlink
	// target. Only set for StateManagedLink.
	Identifier string
}

// ManagedEntry is the live handle for an actualized redirection.
type ManagedEntry struct {
	// SourceLink is the workspace-side symlink path.
	SourceLink string `json:"source-link"`
	// EntryDir is the entry directory inside the store.
	EntryDir string `json:"entry-dir"`
	// TargetDir is the real output directory, EntryDir/target.
	TargetDir string `json:"target-dir"`
}
