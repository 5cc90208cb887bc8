package ports

import "go.trai.ch/expressx/internal/core/domain"

// Scaffolder renders project and component templates and writes them to disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=scaffolder.go -destination=mocks/mock_scaffolder.go -package=mocks
type Scaffolder interface {
	// Component renders a component of the given kind into dir, a
	// root-relative directory.
	Component(kind, name, dir string) (domain.ScaffoldFile, error)
	// Project renders every file of a new project.
	Project(name string, opts domain.ProjectOptions) ([]domain.ScaffoldFile, error)
	// Write stores files below root. Existing files are skipped unless force is set.
	Write(root string, files []domain.ScaffoldFile, force bool) (domain.WriteReport, error)
}
