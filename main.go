package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"onionkeys/pkg/identity"
	"onionkeys/pkg/onion"
)

// https://github.com/torproject/torspec/blob/main/rend-spec-v3.txt

var appVersion = "0.0.0"

func main() {
	cfg, err := loadSettings()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := newApp(cfg).Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp(cfg settings) *cli.App {
	return &cli.App{
		Name:    "onionkeys",
		Usage:   "Create, inspect and convert Tor v3 onion service identities",
		Version: appVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "verbosity",
				Aliases: []string{"vv"},
				Usage:   "Minimum verbosity level for logging. Available in ascending order: debug, info, warning, error, critical).",
				Value:   cfg.Verbosity,
			},
		},
		Before: func(c *cli.Context) error {
			logrus.SetLevel(logLevel(c.String("verbosity")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "generate a new identity file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Identity file to write (format from extension)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Format used when --out is not given: toml, json, yaml",
						Value:   cfg.Format,
					},
				},
				Action: func(c *cli.Context) error { return generateAction(c, cfg) },
			},
			{
				Name:      "inspect",
				Aliases:   []string{"i"},
				Usage:     "validate an identity file and print its address",
				ArgsUsage: "FILE",
				Action:    inspectAction,
			},
			{
				Name:      "import-tor",
				Usage:     "convert a tor HiddenServiceDir into an identity file",
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Identity file to write (format from extension)",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error { return importTorAction(c, cfg) },
			},
			{
				Name:      "export-tor",
				Usage:     "write an identity file as a tor HiddenServiceDir",
				ArgsUsage: "FILE DIR",
				Action:    exportTorAction,
			},
			{
				Name:      "convert",
				Usage:     "re-encode an identity file in another format",
				ArgsUsage: "IN OUT",
				Action:    func(c *cli.Context) error { return convertAction(c, cfg) },
			},
		},
	}
}

var errUsage = errors.New("wrong number of arguments")

func generateAction(c *cli.Context, cfg settings) error {
	mode, err := cfg.fileMode()
	if err != nil {
		return err
	}
	id, err := identity.Generate(nil)
	if err != nil {
		return err
	}
	defer id.Wipe()

	out := c.String("out")
	if out == "" {
		format, err := identity.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}
		out = id.Address.ShortForm() + format.Ext()
	}
	out, _ = filepath.Abs(out)
	if err := identity.Save(out, id, mode); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, id.Address)
	return nil
}

func inspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("inspect: %w", errUsage)
	}
	id, err := identity.Load(c.Args().First())
	if err != nil {
		return err
	}
	defer id.Wipe()
	fmt.Fprintf(c.App.Writer, "address:    %s\n", id.Address)
	fmt.Fprintf(c.App.Writer, "public key: %s\n", onion.EncodePublicKey(id.PublicKey))
	return nil
}

func importTorAction(c *cli.Context, cfg settings) error {
	if c.NArg() != 1 {
		return fmt.Errorf("import-tor: %w", errUsage)
	}
	mode, err := cfg.fileMode()
	if err != nil {
		return err
	}
	id, err := identity.ImportTorDir(c.Args().First())
	if err != nil {
		return err
	}
	defer id.Wipe()
	if err := identity.Save(c.String("out"), id, mode); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, id.Address)
	return nil
}

func exportTorAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("export-tor: %w", errUsage)
	}
	id, err := identity.Load(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer id.Wipe()
	return identity.ExportTorDir(c.Args().Get(1), id)
}

func convertAction(c *cli.Context, cfg settings) error {
	if c.NArg() != 2 {
		return fmt.Errorf("convert: %w", errUsage)
	}
	mode, err := cfg.fileMode()
	if err != nil {
		return err
	}
	id, err := identity.Load(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer id.Wipe()
	return identity.Save(c.Args().Get(1), id, mode)
}
