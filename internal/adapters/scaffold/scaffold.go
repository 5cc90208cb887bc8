// Package scaffold renders new projects and framework components from
// embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed templates
var templateFS embed.FS

const (
	templateExt  = ".tmpl"
	componentDir = "templates/component"
	projectDir   = "templates/project"
	commonDir    = "common"
)

// ComponentKinds lists the component types that can be generated.
var ComponentKinds = []string{"controller", "service", "middleware", "interceptor", "application", "guard"}

// ProjectTemplates lists the project templates that can be scaffolded.
var ProjectTemplates = []string{"default", "api", "full"}

// renamed maps template names that cannot be embedded under their real name.
var renamed = map[string]string{
	"gitignore": ".gitignore",
}

var _ ports.Scaffolder = (*Scaffolder)(nil)

// Scaffolder implements ports.Scaffolder.
type Scaffolder struct {
	templates *template.Template
}

type componentData struct {
	ClassName string
	Route     string
}

type projectData struct {
	Name        string
	PackageName string
	ClassName   string
	Template    string
}

// NewScaffolder parses the embedded templates.
func NewScaffolder() (*Scaffolder, error) {
	t := template.New("scaffold").Option("missingkey=error")
	err := iofs.WalkDir(templateFS, "templates", func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, templateExt) {
			return err
		}
		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		_, err = t.New(p).Parse(string(content))
		return err
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse scaffold templates")
	}
	return &Scaffolder{templates: t}, nil
}

// Component renders a component named after name into dir. The class name is
// PascalCase with the kind as suffix; the file name is kebab-case followed by
// the kind.
func (s *Scaffolder) Component(kind, name, dir string) (domain.ScaffoldFile, error) {
	if !slices.Contains(ComponentKinds, kind) {
		return domain.ScaffoldFile{}, zerr.With(
			zerr.Wrap(domain.ErrUnknownComponentType, kind),
			"available", strings.Join(ComponentKinds, ", "),
		)
	}

	words := trimKind(Words(name), kind)
	if len(words) == 0 {
		return domain.ScaffoldFile{}, zerr.With(zerr.Wrap(domain.ErrInvalidName, "component name"), "name", name)
	}

	base := KebabCase(words)
	data := componentData{
		ClassName: PascalCase(words) + PascalCase([]string{kind}),
		Route:     base,
	}

	content, err := s.render(path.Join(componentDir, kind+".ts"+templateExt), data)
	if err != nil {
		return domain.ScaffoldFile{}, err
	}

	return domain.ScaffoldFile{
		Path:    path.Join(filepath.ToSlash(dir), base+"."+kind+domain.SourceExtension),
		Content: content,
	}, nil
}

// Project renders the shared project files and those of the chosen
// template, sorted by path.
func (s *Scaffolder) Project(name string, opts domain.ProjectOptions) ([]domain.ScaffoldFile, error) {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = domain.DefaultProjectTemplate
	}
	if !slices.Contains(ProjectTemplates, tmpl) {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrUnknownTemplate, tmpl),
			"available", strings.Join(ProjectTemplates, ", "),
		)
	}
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}

	words := Words(name)
	data := projectData{
		Name:        name,
		PackageName: KebabCase(words),
		ClassName:   PascalCase(trimKind(words, "app")) + "App",
		Template:    tmpl,
	}

	var files []domain.ScaffoldFile
	for _, dir := range []string{commonDir, tmpl} {
		root := path.Join(projectDir, dir)
		err := iofs.WalkDir(templateFS, root, func(p string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), templateExt)
			if to, ok := renamed[path.Base(rel)]; ok {
				rel = path.Join(path.Dir(rel), to)
			}
			if opts.SkipGit && path.Base(rel) == ".gitignore" {
				return nil
			}

			content, err := s.render(p, data)
			if err != nil {
				return err
			}
			files = append(files, domain.ScaffoldFile{Path: rel, Content: content})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.SortFunc(files, func(a, b domain.ScaffoldFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// ValidateProjectName checks that name can be used as a directory and
// package name.
func ValidateProjectName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || len(Words(name)) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidName, "project name"), "name", name)
	}
	return nil
}

// Write stores files below root, creating directories as needed. Existing
// files are skipped unless force is set.
func (s *Scaffolder) Write(root string, files []domain.ScaffoldFile, force bool) (domain.WriteReport, error) {
	var report domain.WriteReport
	for _, f := range files {
		abs := filepath.Join(root, filepath.FromSlash(f.Path))

		if !force {
			if _, err := os.Stat(abs); err == nil {
				report.Skipped = append(report.Skipped, f.Path)
				continue
			} else if !errors.Is(err, iofs.ErrNotExist) {
				return report, zerr.With(zerr.Wrap(err, domain.ErrScaffoldWriteFailed.Error()), "path", abs)
			}
		}

		if err := os.MkdirAll(filepath.Dir(abs), domain.DirPerm); err != nil {
			return report, zerr.With(zerr.Wrap(err, domain.ErrScaffoldWriteFailed.Error()), "path", abs)
		}
		if err := os.WriteFile(abs, f.Content, domain.FilePerm); err != nil {
			return report, zerr.With(zerr.Wrap(err, domain.ErrScaffoldWriteFailed.Error()), "path", abs)
		}
		report.Written = append(report.Written, f.Path)
	}
	return report, nil
}

func (s *Scaffolder) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to render template"), "template", name)
	}
	return buf.Bytes(), nil
}
