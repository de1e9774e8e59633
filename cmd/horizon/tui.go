package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/config"
	"github.com/horizonfin/horizon/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [profile-file]",
		Short: "Explore a projection interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, opts, err := config.NewInputParser().LoadProfileFromFile(args[0])
			if err != nil {
				return err
			}

			model := tui.New(calculation.NewEngine(), profile, opts)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
