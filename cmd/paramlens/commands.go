package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/five82/paramlens/internal/app"
	"github.com/five82/paramlens/internal/codec"
	"github.com/five82/paramlens/internal/logging"
	"github.com/five82/paramlens/internal/query"
	"github.com/five82/paramlens/internal/tabs"
)

const (
	previewRunes   = 60
	activeTabLimit = 10 * time.Second
)

func newListCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [URL]",
		Short: "List the base64 query parameters of a URL or the active tab",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := ""
			if len(args) == 1 {
				rawURL = args[0]
			} else {
				tab, err := activeTab(cmd.Context(), *opts)
				if err != nil {
					return err
				}
				rawURL = tab.URL
			}

			target, err := query.Parse(rawURL)
			if err != nil {
				return err
			}
			params := query.Classify(target.Params)

			out := cmd.OutOrStdout()
			if len(params) == 0 {
				fmt.Fprint(out, pterm.Info.Sprintln("No base64-encoded query parameters found."))
				return nil
			}

			rows := pterm.TableData{{"Key", "Type", "Decoded"}}
			for _, p := range params {
				kind, text := describe(p.Value)
				rows = append(rows, []string{p.Key, kind, text})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
			if err != nil {
				return fmt.Errorf("render table: %w", err)
			}
			fmt.Fprintf(out, "Found %d base64-encoded parameter(s):\n", len(params))
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	var canonical bool
	cmd := &cobra.Command{
		Use:   "decode VALUE",
		Short: "Decode a base64 value, pretty-printing JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if canonical {
				value, err := codec.Reencode(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			result, err := codec.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the padded standard encoding instead of the decoded text")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "encode TEXT",
		Short: "Encode text as padded standard base64",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(args[0], asJSON))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "compact the text first when it is valid JSON")
	return cmd
}

func newSetCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "set URL KEY TEXT",
		Short: "Print URL with parameter KEY set to the encoding of TEXT",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := query.Parse(args[0])
			if err != nil {
				return err
			}
			updated, err := query.ApplyUpdate(args[0], args[1], codec.Encode(args[2], asJSON))
			if err != nil {
				return err
			}
			if _, ok := target.Lookup(args[1]); !ok {
				fmt.Fprint(cmd.ErrOrStderr(), pterm.Info.Sprintf("Parameter %q was not present; appended.\n", args[1]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "compact the text first when it is valid JSON")
	return cmd
}

// activeTab reads the active tab from the configured DevTools endpoint.
func activeTab(ctx context.Context, opts app.Options) (tabs.Tab, error) {
	cfg, err := app.LoadConfig(opts)
	if err != nil {
		return tabs.Tab{}, err
	}
	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return tabs.Tab{}, fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	client, err := tabs.NewClient(tabs.ClientOptions{
		CDPURL:          cfg.CDPURL,
		Filter:          cfg.TabFilter,
		NavigateTimeout: cfg.NavigateTimeout,
	})
	if err != nil {
		return tabs.Tab{}, fmt.Errorf("init tab client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, activeTabLimit)
	defer cancel()
	return client.ActiveTab(ctx)
}

// describe returns the payload kind and a one-line preview of a classified
// value.
func describe(value string) (string, string) {
	result, err := codec.Decode(value)
	switch {
	case err != nil:
		return "error", codec.DecodePlaceholder
	case result.Binary:
		return "binary", fmt.Sprintf("(%d bytes)", utf8.RuneCountInString(result.Text))
	case result.IsJSON:
		return "json", preview(result.Text)
	default:
		return "text", preview(result.Text)
	}
}

func preview(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= previewRunes {
		return flat
	}
	return string(runes[:previewRunes-1]) + "…"
}
