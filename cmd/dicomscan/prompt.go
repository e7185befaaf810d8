package main

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/mrsinham/dicomscan/internal/config"
)

// promptScanOptions asks for whatever --interactive runs need: the
// collection directory (when not already given) and whether to save the
// CSV.
func promptScanOptions(cfg *config.Config) error {
	groups := make([]*huh.Group, 0, 2)

	if cfg.InputDir == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Collection directory").
				Description("Path to the directory containing .dcm files").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("directory is required")
					}
					return nil
				}).
				Value(&cfg.InputDir),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Save the table as CSV?").
			Value(&cfg.Save),
	))

	return huh.NewForm(groups...).Run()
}
