// Package cli implements the horae command tree. Commands load the
// schedule through an editor.Controller wired to whichever artifact
// store the configuration selects.
package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/horae/internal/artifact"
	"github.com/alexanderramin/horae/internal/config"
	"github.com/alexanderramin/horae/internal/editor"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands need: the resolved configuration,
// the artifact store, and the project bounds derived from it.
type App struct {
	Config config.Config
	Store  artifact.Store
	Bounds *editor.Bounds

	// IsInteractive reports whether stdin is a terminal; forms and the
	// editing TUI are only offered when it returns true.
	IsInteractive func() bool

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// loadController builds a controller for the configured schedule key
// and loads the current document.
func (a *App) loadController(ctx context.Context) (*editor.Controller, error) {
	c := editor.NewController(a.Store, a.Config.ScheduleKey, a.Bounds)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewRootCmd creates the top-level "horae" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "horae",
		Short: "Interactive schedule and gantt editor",
	}

	root.AddCommand(
		newShowCmd(app),
		newEditCmd(app),
		newItemCmd(app),
		newPhaseCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
