package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Neumenon/mapcodec/mapfile"
	"github.com/Neumenon/mapcodec/phxm"
	"github.com/Neumenon/mapcodec/sspm"
)

func newRootCommand() *cobra.Command {
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:           "mapcodec",
		Short:         "SSPM/PHXM map container tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verboseFlag {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newExtractCommand())

	return rootCmd
}

// openMap decodes a map file, picking the codec by file extension.
func openMap(path string) (*mapfile.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".sspm":
		slog.Debug("decoding SSPM container", "path", path)
		return sspm.Decode(f)
	case ".phxm":
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		slog.Debug("decoding PHXM archive", "path", path, "size", st.Size())
		return phxm.Decode(f, st.Size())
	default:
		return nil, fmt.Errorf("unrecognized map extension %q (want .sspm or .phxm)", filepath.Ext(path))
	}
}
