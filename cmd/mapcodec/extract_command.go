package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file> [dir]",
		Short: "Write embedded media to files",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMap(args[0])
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 2 {
				dir = args[1]
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			wrote := 0
			for _, media := range []struct {
				suffix string
				data   []byte
			}{
				{audioSuffix(m.AudioExt), m.Audio},
				{"cover.png", m.Cover},
				{"video.mp4", m.Video},
			} {
				if len(media.data) == 0 {
					continue
				}
				path := filepath.Join(dir, base+"."+media.suffix)
				if err := os.WriteFile(path, media.data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(media.data))
				wrote++
			}
			if wrote == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no embedded media")
			}
			return nil
		},
	}
}

// audioSuffix keeps the source audio extension when the container
// records one. SSPM carries none, so its audio goes out under a
// neutral name the caller can rename.
func audioSuffix(ext string) string {
	if ext == "" {
		return "audio"
	}
	return "audio." + ext
}
