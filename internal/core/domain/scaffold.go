package domain

// ScaffoldFile is a rendered file of a new project or generated component.
type ScaffoldFile struct {
	// Path is relative to the target root, with forward slashes.
	Path    string
	Content []byte
}

// WriteReport lists the outcome of writing scaffolded files.
type WriteReport struct {
	Written []string
	Skipped []string
}

// ProjectOptions control project scaffolding.
type ProjectOptions struct {
	Template string
	SkipGit  bool
}

// DefaultProjectTemplate is used when no template is requested.
const DefaultProjectTemplate = "default"
