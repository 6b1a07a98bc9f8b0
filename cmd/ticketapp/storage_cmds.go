package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/ticketapp/internal/storage"
)

func newStorageCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Export or import the raw key space",
	}
	cmd.AddCommand(newStorageExportCmd(opts), newStorageImportCmd(opts))
	return cmd
}

func newStorageExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every key as one JSON object",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			dump, err := storage.Export(cmd.Context(), a.store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}
			return writeJSON(out, dump)
		}),
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newStorageImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Load keys from a JSON object, e.g. a browser localStorage dump",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, args []string, a *app) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			var dump map[string]json.RawMessage
			if err := json.NewDecoder(in).Decode(&dump); err != nil {
				return fmt.Errorf("failed to decode dump: %w", err)
			}
			if err := storage.Import(cmd.Context(), a.store, dump); err != nil {
				return err
			}
			a.logger.Info("Storage imported", "keys", len(dump))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys\n", len(dump))
			return nil
		}),
	}
}
