// Package cmd is the sbol command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/config"
	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/sbolio"
	"github.com/nroehner/libSBOL/internal/tracing"
)

var version = "dev"

// cli carries the state shared by one invocation's commands.
type cli struct {
	cfgFile    string
	v          *viper.Viper
	cfg        config.Config
	provider   *tracing.Provider
	serializer *sbolio.Serializer
	logCleanup func()
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "sbol",
		Short: "Inspect, assemble and convert SBOL documents",
		Long: `sbol reads SBOL documents stored as N-Quads, RDF/JSON or a sqlite triple store,
composes hierarchical sequences, assembles definitions from ordered parts and converts
between formats.

Configuration is read from --config, ./.libsbol/config.yaml or ~/.config/libsbol/config.yaml,
with SBOL_* environment variables and the flags below taking precedence.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "",
		"config file (default: ~/.config/libsbol/config.yaml)")
	pf.String("homespace", "", "namespace prefix for minted identities")
	pf.Bool("compliant", false, "derive compliant identities")
	pf.Bool("typed", false, "include the type segment in compliant identities")
	pf.String("format", "", "default file format: json, nquads or sqlite")
	pf.Bool("debug", false, "write debug logging to stderr")

	_ = c.v.BindPFlag("homespace", pf.Lookup("homespace"))
	_ = c.v.BindPFlag("sbol_compliant_uris", pf.Lookup("compliant"))
	_ = c.v.BindPFlag("sbol_typed_uris", pf.Lookup("typed"))
	_ = c.v.BindPFlag("file_format", pf.Lookup("format"))
	_ = c.v.BindPFlag("log.debug", pf.Lookup("debug"))

	root.AddCommand(
		c.sequenceCmd(),
		c.orderCmd(),
		c.assembleCmd(),
		c.convertCmd(),
		c.diffCmd(),
		c.watchCmd(),
		c.initCmd(),
		c.storeCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	switch {
	case cfg.Log.Path != "":
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return err
		}
		c.logCleanup = cleanup
		if !cfg.Log.Debug {
			log.SetMinLevel(log.LevelInfo)
		}
	case cfg.Log.Debug:
		log.InitWriter(cmd.ErrOrStderr(), log.LevelDebug)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	c.provider = provider
	c.serializer = sbolio.NewSerializer(sbolio.WithTracer(provider.Tracer()))

	log.Debug(log.CatCLI, "command started", "command", cmd.CommandPath())
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, _ []string) error {
	var err error
	if c.provider != nil {
		err = c.provider.Shutdown(context.WithoutCancel(cmd.Context()))
	}
	if c.logCleanup != nil {
		c.logCleanup()
	}
	log.Reset()
	return err
}

func (c *cli) documentConfig() sbol.Config {
	return sbol.Config{
		Settings:       c.cfg.Settings(),
		SilentFailures: !c.cfg.Exceptions,
		FileFormat:     c.cfg.FileFormat,
	}
}

func (c *cli) newDocument() *sbol.Document {
	return sbol.NewDocument(c.documentConfig())
}

func (c *cli) readDocument(ctx context.Context, path string) (*sbol.Document, error) {
	doc := c.newDocument()
	if err := c.serializer.Read(ctx, doc, path); err != nil {
		doc.Close()
		return nil, err
	}
	return doc, nil
}

// tracer returns nil before setup, which tracing.Run treats as untraced.
func (c *cli) tracer() trace.Tracer {
	if c.provider == nil {
		return nil
	}
	return c.provider.Tracer()
}

var rootCmd = newRootCmd()

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
