package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/infrastructure/sqlite"
	"github.com/nroehner/libSBOL/internal/presentation"
	"github.com/nroehner/libSBOL/internal/sbolio"
)

func (c *cli) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep named documents in the sqlite triple store",
		Long: `Save, load, list and delete named documents in the triple store configured by
store.path (default ~/.config/libsbol/store.db).`,
	}
	cmd.AddCommand(c.storeSaveCmd(), c.storeLoadCmd(), c.storeListCmd(), c.storeRemoveCmd())
	return cmd
}

func (c *cli) openStore() (*sqlite.DB, error) {
	return sqlite.NewDB(c.cfg.Store.Path)
}

func (c *cli) storeSaveCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Read FILE and save it under --name (default: the file name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			format := sbolio.FormatForPath(path, c.cfg.FileFormat)
			doc, err := c.readDocument(ctx, path)
			if err != nil {
				return err
			}
			defer doc.Close()

			db, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			triples := doc.Triples()
			if err := db.Triples().Save(ctx, name, format, triples); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d triples)\n", name, len(triples))
			return err
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "name to store the document under")
	return cmd
}

func (c *cli) storeLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME OUT",
		Short: "Write the stored document NAME to OUT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			triples, err := db.Triples().Load(ctx, args[0])
			if err != nil {
				return err
			}

			doc := c.newDocument()
			defer doc.Close()
			if err := doc.Load(triples); err != nil {
				return err
			}
			if err := c.serializer.Write(ctx, doc, args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s\n", args[0], args[1])
			return err
		},
	}
}

func (c *cli) storeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			infos, err := db.Triples().List(cmd.Context())
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).FormatStoredDocuments(presentation.FromStoredDocuments(infos))
		},
	}
}

func (c *cli) storeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := db.Triples().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
