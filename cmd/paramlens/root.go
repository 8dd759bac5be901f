package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/paramlens/internal/app"
	"github.com/five82/paramlens/internal/ui"
)

// newRootCmd builds the command tree. The root command runs the TUI.
func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "paramlens",
		Short: "Inspect and edit base64 query parameters of a browser tab",
		Long: `paramlens finds query parameters whose values look like base64, shows
them decoded (JSON pretty-printed) and writes edits back into the URL.

By default it reads the active tab of a browser started with
--remote-debugging-port. Use --url to work on a URL directly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			navigated, err := app.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range navigated {
				fmt.Fprintln(out, u)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/paramlens/config.toml)")
	flags.StringVar(&opts.CDPURL, "cdp", "", "DevTools endpoint, e.g. http://127.0.0.1:9222")
	flags.StringVar(&opts.Filter, "filter", "", "only consider tabs whose URL contains this text")

	root.Flags().StringVar(&opts.URL, "url", "", "inspect this URL instead of the active browser tab")
	root.Flags().StringVar(&opts.Theme, "theme", "", fmt.Sprintf("color theme (%s)", strings.Join(ui.ThemeNames(), ", ")))
	root.Flags().BoolVar(&opts.NoOpen, "no-open", false, "with --url: print updated URLs instead of opening them")

	root.AddCommand(
		newListCmd(&opts),
		newDecodeCmd(),
		newEncodeCmd(),
		newSetCmd(),
	)
	return root
}
