package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newCompleteCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [query]",
		Short: "Show the autocomplete dropdown for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				tags, err := env.Tagging.MatchAutocomplete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printLines(cmd.OutOrStdout(), tags)
			})
		},
	}
}

func newTagsCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, _ := cmd.Flags().GetBool("stats")

			return withEnv(cmd, open, func(env *Env) error {
				if !stats {
					tags, err := env.Tagging.AllTags(cmd.Context())
					if err != nil {
						return err
					}
					return printLines(cmd.OutOrStdout(), tags)
				}

				st, err := env.Tagging.TagStats(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "TAG\tCOUNT\tLAST USED")
				for _, s := range st {
					_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Tag, s.Count, s.LastUsed.Format(time.DateOnly))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().Bool("stats", false, "show usage count and recency")
	return cmd
}
