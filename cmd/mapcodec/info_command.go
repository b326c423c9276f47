package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Decode a map and print its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMap(args[0])
			if err != nil {
				return err
			}

			rows := [][2]string{
				{"Format", m.Format.String()},
				{"ID", m.ID},
				{"Title", m.Title},
				{"Song", m.Song},
				{"Artists", strings.Join(m.Artists, ", ")},
				{"Mappers", strings.Join(m.Mappers, ", ")},
				{"Difficulty", difficultyLabel(m.Difficulty, m.DifficultyName)},
				{"Duration", formatDuration(m.Length)},
				{"Notes", strconv.Itoa(len(m.Notes))},
				{"Other records", strconv.Itoa(len(m.Objects))},
				{"Audio", sizeLabel(len(m.Audio))},
				{"Cover", sizeLabel(len(m.Cover))},
				{"Video", sizeLabel(len(m.Video))},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKV(args[0], rows))

			if len(m.Custom) > 0 {
				names := make([]string, 0, len(m.Custom))
				for name := range m.Custom {
					names = append(names, name)
				}
				sort.Strings(names)
				custom := make([][2]string, 0, len(names))
				for _, name := range names {
					custom = append(custom, [2]string{name, m.Custom[name].String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderKV("custom data", custom))
			}
			return nil
		},
	}
}

func difficultyLabel(tier uint8, name string) string {
	if name == "" {
		return strconv.Itoa(int(tier))
	}
	return fmt.Sprintf("%d (%s)", tier, name)
}

func formatDuration(ms uint32) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

func sizeLabel(n int) string {
	if n == 0 {
		return "none"
	}
	return fmt.Sprintf("%d bytes", n)
}
