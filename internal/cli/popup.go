package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/popup"
)

// line commands standing in for the popup's key and mouse events
var popupCommands = map[string]popup.Key{
	":down": popup.KeyArrowDown,
	":up":   popup.KeyArrowUp,
	":esc":  popup.KeyEscape,
}

const popupClick = ":click"

func newPopupCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popup [url]",
		Short: "Tag a page interactively",
		Long: `Reads one line at a time. Text updates the dropdown, an empty line is Enter.
:down and :up move the cursor, :click dismisses the dropdown, :esc closes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withEnv(cmd, open, func(env *Env) error {
				return runPopup(cmd.Context(), env, pageFlag(cmd, args[0]), limit, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().String("title", "", "page title used when the entry is created")
	cmd.Flags().Int("limit", 5, "dropdown size")
	return cmd
}

func runPopup(ctx context.Context, env *Env, page domain.Page, limit int, in io.Reader, out io.Writer) error {
	entry, _, err := env.Tagging.ResolveCurrentEntry(ctx, page)
	if err != nil {
		return err
	}
	suggested, err := env.Tagging.SuggestedTags(ctx, page)
	if err != nil {
		return err
	}

	s := popup.NewSession(page, entry.Tags, limit)
	fmt.Fprintf(out, "tags: %s\n", strings.Join(entry.Tags, ", "))
	fmt.Fprintf(out, "suggested: %s\n", strings.Join(suggested, ", "))

	scanner := bufio.NewScanner(in)
	for !s.Closed() && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var action popup.Action
		switch key, isKey := popupCommands[line]; {
		case isKey:
			action = s.OnKey(key)
		case line == popupClick:
			action = s.OnOutsideClick()
		case line == "":
			action = s.OnKey(popup.KeyEnter)
		default:
			all, err := env.Tagging.AllTags(ctx)
			if err != nil {
				return err
			}
			s.SetInput(line, all)
			printDropdown(out, s)
			continue
		}

		res, err := s.Apply(ctx, env.Tagging, action)
		if err != nil {
			return err
		}
		switch {
		case res != nil:
			fmt.Fprintf(out, "tags: %s\n", strings.Join(res.Entry.Tags, ", "))
			fmt.Fprintf(out, "archivebox: %s\n", res.Remote.Detail)
		case action.Kind == popup.ActionMoveCursor:
			printDropdown(out, s)
		case action.Kind != popup.ActionNone:
			fmt.Fprintf(out, "[%s]\n", action.Kind)
		}
	}
	return scanner.Err()
}

func printDropdown(out io.Writer, s *popup.Session) {
	selected, _ := s.Selected()
	for _, m := range s.Matches() {
		marker := " "
		if m == selected {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %s\n", marker, m)
	}
}
