package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshcazalas/youtube-audio-bot/title"
)

func newParseTitleCommand() *cobra.Command {
	var meta title.Metadata
	var ext string

	cmd := &cobra.Command{
		Use:   "parse-title <title>",
		Short: "Show how a video title would be split and named",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			match := title.Parse(raw, meta)
			artist, track, name := title.Filename(match, ext)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artist:     %s\n", match.Artist)
			fmt.Fprintf(out, "Track:      %s\n", match.Track)
			fmt.Fprintf(out, "Matched by: %s", match.Source)
			if match.Source == title.SourceSeparator {
				fmt.Fprintf(out, " %q", match.Separator)
				if match.Shifted {
					fmt.Fprint(out, " (label skipped)")
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Performer:  %s\n", artist)
			fmt.Fprintf(out, "Title:      %s\n", track)
			fmt.Fprintf(out, "Filename:   %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&meta.Artist, "artist", "", "Artist metadata reported by the extractor")
	cmd.Flags().StringVar(&meta.Creator, "creator", "", "Creator metadata reported by the extractor")
	cmd.Flags().StringVar(&meta.Uploader, "uploader", "", "Uploader metadata reported by the extractor")
	cmd.Flags().StringVar(&ext, "ext", ".mp3", "Extension of the produced file")
	return cmd
}
