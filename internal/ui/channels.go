package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/bangumi/internal/epg"
)

const channelNameWidth = 24

func (a *App) channelsCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List stored channels",
		Long: `List stored channels grouped by broadcast type, with the number of
programs stored for each.`,
		Example: `  bangumi channels
  bangumi channels --type=BS`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			typ := epg.ParseType(typeFlag)
			if typ != "" && !typ.IsValid() {
				return fmt.Errorf("unknown broadcast type %q", typeFlag)
			}
			channels, err := a.repo.ListChannels(ctx, typ)
			if err != nil {
				return err
			}
			counts, err := a.repo.CountPrograms(ctx)
			if err != nil {
				return err
			}
			printChannels(cmd.OutOrStdout(), channels, counts)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Broadcast type (GR, BS, CS, BS4K, SKY)")

	return cmd
}

// printChannels writes channels grouped by type, in the order given.
func printChannels(w io.Writer, channels []epg.Channel, counts map[string]int) {
	if len(channels) == 0 {
		fmt.Fprintln(w, "No channels. Import a guide with: bangumi import <file.json>")
		return
	}

	var current epg.BroadcastType
	for i, ch := range channels {
		if i == 0 || ch.Type != current {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, formatHeader(ch.Type.Label()))
			current = ch.Type
		}
		name := runewidth.FillRight(runewidth.Truncate(ch.Name, channelNameWidth, "…"), channelNameWidth)
		fmt.Fprintf(w, "  %-5s %s %s\n", ch.Number, name,
			formatMuted(fmt.Sprintf("%s, %d programs", ch.ID, counts[ch.ID])))
	}
}
