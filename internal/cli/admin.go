package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/sources/homepage"
)

func newImportCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import [bookmarks.yaml]",
		Short: "Import a Homepage bookmarks or services file",
		Long:  `Entries are created for new links. Existing entries only gain the category tag. Nothing is pushed to ArchiveBox.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := homepage.NewLoader(args[0]).Load()
			if err != nil {
				return err
			}

			return withEnv(cmd, open, func(env *Env) error {
				stats, err := env.Tagging.ImportEntries(cmd.Context(), seeds)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d seeds: %d created, %d updated\n",
					len(seeds), stats.Created, stats.Updated)
				return err
			})
		},
	}
}

type settingsView struct {
	ServerURL  string `json:"archivebox_server_url"`
	HasAPIKey  bool   `json:"archivebox_api_key_set"`
	Configured bool   `json:"configured"`
}

func newSettingsCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the ArchiveBox settings",
		Long:  `Without flags the current settings are shown. The API key is never printed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				if cmd.Flags().Changed("url") || cmd.Flags().Changed("api-key") {
					current, err := env.Settings.Remote(cmd.Context())
					if err != nil {
						return err
					}
					if cmd.Flags().Changed("url") {
						current.ServerURL, _ = cmd.Flags().GetString("url")
					}
					if cmd.Flags().Changed("api-key") {
						current.APIKey, _ = cmd.Flags().GetString("api-key")
					}
					if err := env.Settings.SetRemote(cmd.Context(), current); err != nil {
						return err
					}
				}

				r, err := env.Settings.Remote(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), toSettingsView(r))
			})
		},
	}
	cmd.Flags().String("url", "", "ArchiveBox server address")
	cmd.Flags().String("api-key", "", "ArchiveBox API key")
	return cmd
}

func toSettingsView(r settings.Remote) settingsView {
	return settingsView{ServerURL: r.ServerURL, HasAPIKey: r.APIKey != "", Configured: r.Configured()}
}
