package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/archivetag/internal/autocomplete"
)

func newEntryCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry [url]",
		Short: "Show the entry of a page, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				entry, _, err := env.Tagging.ResolveCurrentEntry(cmd.Context(), pageFlag(cmd, args[0]))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entry)
			})
		},
	}
	cmd.Flags().String("title", "", "page title used when the entry is created")
	return cmd
}

func newSuggestCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [url]",
		Short: "List recently used tags the page does not carry yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				tags, err := env.Tagging.SuggestedTags(cmd.Context(), pageFlag(cmd, args[0]))
				if err != nil {
					return err
				}
				return printLines(cmd.OutOrStdout(), tags)
			})
		},
	}
	cmd.Flags().String("title", "", "page title used when the entry is created")
	return cmd
}

func newAddCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [url] [tag...]",
		Short: "Add tags to a page and push it to ArchiveBox",
		Long:  `Each argument is one tag. --input takes comma separated text the way the popup does.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")

			tags := args[1:]
			if input != "" {
				tags = append(tags, autocomplete.ParseFreeText(input, nil)...)
			}
			if len(tags) == 0 {
				return errors.New("at least one tag or --input is required")
			}

			return withEnv(cmd, open, func(env *Env) error {
				res, err := env.Tagging.AddTags(cmd.Context(), pageFlag(cmd, args[0]), tags)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().String("title", "", "page title used when the entry is created")
	cmd.Flags().String("input", "", "comma separated tags")
	return cmd
}

func newRemoveCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [url] [tag]",
		Short: "Remove a tag from a page and push it to ArchiveBox",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				res, err := env.Tagging.RemoveTag(cmd.Context(), pageFlag(cmd, args[0]), args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().String("title", "", "page title used when the entry is created")
	return cmd
}
