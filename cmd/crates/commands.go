package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randombyte-developer/crates-generator/internal/app"
	"github.com/randombyte-developer/crates-generator/internal/args"
	"github.com/randombyte-developer/crates-generator/internal/config"
)

const unknownCommand = "Unknown command! Use 'generate' or 'clear'."

func newRootCmd(cfg config.Config, log *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "crates",
		Short: "Export music folders as crate playlists and clear Mixxx crates.",
		// Anything that is not a subcommand lands here.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), unknownCommand)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	// "help" is not a command either; a nameless hidden command keeps cobra
	// from registering its default one.
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.AddCommand(newGenerateCmd(cfg, log), newClearCmd(cfg, log))
	return root
}

func newGenerateCmd(cfg config.Config, log *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "generate -tracks-top-level-folders <dir>... -crate-files-destination <dir> [-priority-top-level-folders <dir>...] [-excluded-crates <name>...]",
		Short: "Write one .m3u playlist per folder below the given top-level folders",
		// Options take any number of values, which pflag cannot express.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, tokens []string) error {
			set, err := args.ParseAndValidate(tokens)
			if err != nil {
				return err
			}
			_, err = app.Generate(cfg, app.OptionsFromArgs(set), cmd.OutOrStdout(), log)
			return err
		},
	}
}

func newClearCmd(cfg config.Config, log *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all crates from the local Mixxx database",
		// Trailing arguments are ignored.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, n, err := app.Clear(cmd.Context(), cfg, runtime.GOOS, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d crate(s) from '%s'.\n", n, path)
			return nil
		},
	}
}
