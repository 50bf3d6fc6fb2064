package cmd

import (
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repositorySlug is the GitHub repository releases are published from
const repositorySlug = "vbr-tools/mcp-vbr"

// newSelfUpdateCmd creates the selfupdate subcommand
func newSelfUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "selfupdate",
		Short: "Update mcp-vbr to the latest released version",
		Long: `Checks GitHub releases for a newer version of mcp-vbr and replaces the
current binary with it. Use --check to only report whether an update is
available without installing it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfUpdate(cmd, checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for a newer version, do not install it")

	return cmd
}

func runSelfUpdate(cmd *cobra.Command, checkOnly bool) error {
	ctx := cmd.Context()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	if latest.LessOrEqual(version) {
		fmt.Printf("Current version %s is already the latest\n", version)
		return nil
	}

	fmt.Printf("Found newer version: %s (current: %s)\n", latest.Version(), version)

	if checkOnly {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("Successfully updated to version %s\n", latest.Version())
	return nil
}
