package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/version"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// NewRootCommand builds archivetagctl. Every subcommand opens its own Env through open.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "archivetagctl",
		Short:         "Inspect and edit archivetag entries from the command line",
		Long:          `archivetagctl talks to the same store as the archivetag server. Tag changes are pushed to ArchiveBox exactly like the popup does.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEntryCmd(open),
		newSuggestCmd(open),
		newAddCmd(open),
		newRemoveCmd(open),
		newCompleteCmd(open),
		newTagsCmd(open),
		newImportCmd(open),
		newSettingsCmd(open),
		newPopupCmd(open),
		newVersionCmd(),
		newCompletionCmd(root),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for archivetagctl.

  Bash:
    $ source <(archivetagctl completion bash)

  Zsh:
    $ archivetagctl completion zsh > "${fpath[1]}/_archivetagctl"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletion(out)
			}
		},
	}
}

// withEnv opens an Env for the duration of fn
func withEnv(cmd *cobra.Command, open Opener, fn func(env *Env) error) error {
	env, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func pageFlag(cmd *cobra.Command, url string) domain.Page {
	title, _ := cmd.Flags().GetString("title")
	return domain.Page{URL: strings.TrimSpace(url), Title: title}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
