package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/ui/output"
	"go.trai.ch/expressx/internal/ui/style"
	"go.trai.ch/zerr"
)

// NewOptions configuration for the NewProject method.
type NewOptions struct {
	Template    string
	SkipInstall bool
	SkipGit     bool
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	Kind string
	Name string
	// Path is a directory relative to the working directory. Empty means
	// the project's source directory.
	Path   string
	DryRun bool
	Force  bool
}

// NewProject scaffolds a project named name in the working directory, then
// initializes a git repository and installs dependencies unless skipped.
// Failures of git or npm are reported but do not fail the command.
func (a *App) NewProject(ctx context.Context, name string, opts NewOptions) error {
	cwd, err := a.cwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	files, err := a.scaffolder.Project(name, domain.ProjectOptions{Template: opts.Template, SkipGit: opts.SkipGit})
	if err != nil {
		return err
	}

	target := filepath.Join(cwd, name)
	if _, err := os.Stat(target); err == nil {
		return zerr.Wrap(domain.ErrProjectExists, name)
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrScaffoldWriteFailed.Error()), "path", target)
	}

	a.logger.Info("Creating new ExpressX project: " + name)
	report, err := a.scaffolder.Write(target, files, false)
	if err != nil {
		return err
	}
	for _, p := range report.Written {
		a.logger.Info("Created " + filepath.ToSlash(filepath.Join(name, filepath.FromSlash(p))))
	}

	if !opts.SkipGit {
		if err := a.runner.Run(ctx, target, "git", []string{"init"}); err != nil {
			a.logger.Warn("git init failed, initialize the repository manually")
		}
	}
	if !opts.SkipInstall {
		a.logger.Info("Installing dependencies...")
		if err := a.runner.Run(ctx, target, "npm", []string{"install"}); err != nil {
			a.logger.Warn("npm install failed, run it manually")
		}
	}

	out := output.New(a.out)
	_, _ = fmt.Fprintf(out, "%s Project created successfully\n\n", style.Success.Render(style.Check))
	_, _ = fmt.Fprintln(out, style.Title.Render("Next steps:"))
	_, _ = fmt.Fprintf(out, "  cd %s\n", name)
	if opts.SkipInstall {
		_, _ = fmt.Fprintln(out, "  npm install")
	}
	_, _ = fmt.Fprintln(out, "  npm run dev")
	return nil
}

// Generate renders a component into the project. Existing files are kept
// unless Force is set; DryRun prints the file instead of writing it.
func (a *App) Generate(_ context.Context, opts GenerateOptions) error {
	cfg, err := a.loadProject()
	if err != nil {
		return err
	}
	if err := cfg.VerifyFramework(); err != nil {
		return err
	}

	root, dir := cfg.Root, cfg.SourceDir
	if opts.Path != "" {
		if root, err = a.cwd(); err != nil {
			return zerr.Wrap(err, "failed to determine working directory")
		}
		dir = opts.Path
	}

	file, err := a.scaffolder.Component(opts.Kind, opts.Name, dir)
	if err != nil {
		return err
	}

	if opts.DryRun {
		out := output.New(a.out)
		_, _ = fmt.Fprintf(out, "%s Dry run, no files will be created\n\n", style.Muted.Render(style.Dot))
		_, _ = fmt.Fprintln(out, style.Title.Render(file.Path))
		_, _ = out.Write(file.Content)
		return nil
	}

	report, err := a.scaffolder.Write(root, []domain.ScaffoldFile{file}, opts.Force)
	if err != nil {
		return err
	}
	if len(report.Skipped) > 0 {
		a.logger.Warn(fmt.Sprintf("File already exists: %s, use --force to overwrite", file.Path))
		return nil
	}
	a.logger.Info(fmt.Sprintf("Created %s: %s", opts.Kind, file.Path))
	return nil
}
