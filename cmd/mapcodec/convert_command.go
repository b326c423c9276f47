package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Neumenon/mapcodec/sspm"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out.sspm>",
		Short: "Re-encode a map as SSPM",
		Long: `Decode a map in either container format and encode it as SSPM.
Only note records survive conversion; generic records and PHXM video are
dropped, matching what the SSPM exporter emits.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if strings.ToLower(filepath.Ext(dst)) != ".sspm" {
				return fmt.Errorf("only SSPM output is supported (got %q)", filepath.Ext(dst))
			}

			m, err := openMap(src)
			if err != nil {
				return err
			}
			if m.ID == "" {
				m.ID = uuid.NewString()
				slog.Debug("assigned fresh map id", "id", m.ID)
			}

			out, err := os.Create(dst)
			if err != nil {
				return err
			}
			if err := sspm.Encode(m, out); err != nil {
				out.Close()
				os.Remove(dst)
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			slog.Info("encoded map", "path", dst, "notes", len(m.Notes))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d notes)\n", dst, len(m.Notes))
			return nil
		},
	}
}
