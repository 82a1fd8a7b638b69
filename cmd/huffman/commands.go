package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chronos-tachyon/huffmantree/internal/api"
	"github.com/chronos-tachyon/huffmantree/internal/config"
	"github.com/chronos-tachyon/huffmantree/internal/driver"
	"github.com/chronos-tachyon/huffmantree/internal/logging"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "huffman",
		Short:         "Build Huffman trees and encode or decode text with them",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a configuration file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("log-pretty", true, "human-readable logs instead of JSON")
	pf.String("tree", config.SourceStandard, "tree source (standard, test, text, file)")
	pf.String("tree-text", "", "text file to build the tree from, for --tree=text")
	pf.String("tree-bits", "", "saved tree to load, for --tree=file")
	pf.Bool("fill-gaps", true, "add the common English characters to trees built from text")
	pf.String("format", config.FormatText, "bit file format (text, packed, zstd)")
	pf.Bool("all-bits", true, "repeat the full path of bits on every line of the tree drawing")
	pf.Int("display-limit", 1000, "longest output echoed to the terminal")

	root.AddCommand(
		newRunCommand(a),
		newBuildCommand(a),
		newEncodeCommand(a),
		newDecodeCommand(a),
		newShowCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) driver(cmd *cobra.Command) (*driver.Driver, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return driver.New(a.cfg, cmd.OutOrStdout(), a.logger)
}

func addOutputFlags(fs *pflag.FlagSet) {
	fs.Bool("save-tree", true, "save the tree's bit representation")
	fs.String("tree-output", "treeBitRep.txt", "where to save the tree")
}

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Make the tree, then run the configured encode and decode stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.driver(cmd)
			if err != nil {
				return err
			}
			_, err = d.Run(cmd.Context())
			return err
		},
	}
	fs := cmd.Flags()
	addOutputFlags(fs)
	fs.String("encode-input", "", "text file to encode")
	fs.String("encode-output", "encoded.txt", "where to write the encoded bits")
	fs.String("decode-input", "", "bit file to decode")
	fs.String("decode-output", "decoded.txt", "where to write the decoded text")
	return cmd
}

func newBuildCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <text-file>",
		Short: "Build a tree from the character counts of a text file and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Tree.Source = config.SourceText
			a.cfg.Tree.TextPath = args[0]
			d, err := a.driver(cmd)
			if err != nil {
				return err
			}
			tree, err := d.MakeTree()
			if err != nil {
				return err
			}
			if err := d.Show(tree); err != nil {
				return err
			}
			return d.SaveTree(tree)
		},
	}
	addOutputFlags(cmd.Flags())
	return cmd
}

func newEncodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <text-file>",
		Short: "Encode a text file with the configured tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Encode.Input = args[0]
			d, err := a.driver(cmd)
			if err != nil {
				return err
			}
			tree, err := d.MakeTree()
			if err != nil {
				return err
			}
			_, _, err = d.Encode(tree)
			return err
		},
	}
	cmd.Flags().StringP("encode-output", "o", "encoded.txt", "where to write the encoded bits")
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <bit-file>",
		Short: "Decode a bit file with the configured tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Decode.Input = args[0]
			d, err := a.driver(cmd)
			if err != nil {
				return err
			}
			tree, err := d.MakeTree()
			if err != nil {
				return err
			}
			_, _, err = d.Decode(tree)
			return err
		},
	}
	cmd.Flags().StringP("decode-output", "o", "decoded.txt", "where to write the decoded text")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Draw the configured tree and print its code table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.driver(cmd)
			if err != nil {
				return err
			}
			tree, err := d.MakeTree()
			if err != nil {
				return err
			}
			return d.Show(tree)
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			server := api.NewServer(a.cfg.Server.Addr, a.cfg.Server.ShutdownTimeout, a.logger)
			return server.Start(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "address to listen on")
	cmd.Flags().Duration("shutdown-timeout", 0, "how long to wait for requests to finish on shutdown")
	return cmd
}
