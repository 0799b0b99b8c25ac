package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle]",
	Short:     "Show or toggle the stored display theme",
	Long:      "Show or toggle the dark/light preference stored in the per-user theme file (or THEME_FILE).",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Theme.File
	if path == "" {
		if path, err = theme.DefaultFilePath(); err != nil {
			return err
		}
	}
	ctx := theme.NewContext(&theme.FilePersistence{Path: path})

	if len(args) == 0 || args[0] == "show" {
		fmt.Fprintln(cmd.OutOrStdout(), ctx.Mode())
		return nil
	}

	mode, err := ctx.Toggle()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mode)
	return nil
}
