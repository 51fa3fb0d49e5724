package main

import (
	"context"
	"os"

	"github.com/agbru/l3p/internal/app"
	apperrors "github.com/agbru/l3p/internal/errors"
	"github.com/agbru/l3p/internal/ui"
)

func main() {
	ui.InitTheme(app.HasNoColorFlag(os.Args[1:]))

	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		app.PrintError(os.Stderr, err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	if err := application.Run(context.Background()); err != nil {
		app.PrintError(os.Stderr, err)
		os.Exit(apperrors.ExitCodeFor(err))
	}
}
