// Copyright © 2021 Io FinNet Group, Inc.

package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/iofinnet/dhlab/common"
	"github.com/iofinnet/dhlab/config"
	"github.com/iofinnet/dhlab/dh"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagListen   = "listen"
	flagLanguage = "language"
	flagTable    = "table"
	flagBits     = "bits"
)

type bootContext struct {
	cfg *config.Config
}

// global before handler
func (ctx *bootContext) initialize(c *cli.Context) error {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return err
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if err = common.SetLogLevel(cfg.LogLevel); err != nil {
		return errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	ctx.cfg = cfg
	return nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	ctx := &bootContext{}
	return &cli.App{
		Name:      "dhlab",
		Usage:     "Diffie-Hellman key exchange, step by step",
		Writer:    stdout,
		ErrWriter: stderr,
		Before:    ctx.initialize,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load settings from an .ini or .yaml `FILE`",
				EnvVars: []string{"DHLAB_CONFIG"},
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "debug, info, warn or error; overrides the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the JSON API until interrupted",
				Action: ctx.serveCommandHandler,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagListen, Usage: "listen on `ADDR`, overrides the config file"},
					&cli.StringFlag{Name: flagLanguage, Usage: "fallback language for error messages (en, de)"},
				},
			},
			{
				Name:      "params",
				Usage:     "validate a modulus and generator and show the generator's order",
				ArgsUsage: "P G",
				Action:    ctx.paramsCommandHandler,
			},
			{
				Name:      "public",
				Usage:     "derive the public value G^SECRET mod P",
				ArgsUsage: "P G SECRET",
				Action:    ctx.publicCommandHandler,
			},
			{
				Name:      "shared",
				Usage:     "derive the shared secret PUBLIC^SECRET mod P",
				ArgsUsage: "P SECRET PUBLIC",
				Action:    ctx.sharedCommandHandler,
			},
			{
				Name:      "exp",
				Usage:     "compute BASE^EXP mod MOD",
				ArgsUsage: "BASE EXP MOD",
				Action:    ctx.expCommandHandler,
			},
			{
				Name:      "log",
				Usage:     "find the smallest x with BASE^x mod MOD = RESULT by brute force",
				ArgsUsage: "BASE RESULT MOD",
				Action:    ctx.logCommandHandler,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagTable, Usage: "print every power tried"},
				},
			},
			{
				Name:      "exchange",
				Usage:     "walk through a complete exchange between Alice and Bob",
				ArgsUsage: "P G SECRET_A SECRET_B",
				Action:    ctx.exchangeCommandHandler,
			},
			{
				Name:   "suggest",
				Usage:  "draw a safe prime, a primitive root and two secrets",
				Action: ctx.suggestCommandHandler,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagBits, Value: dh.DefaultSuggestBits, Usage: "bit length of the modulus"},
				},
			},
			{
				Name:      "mix",
				Usage:     "mix two #RRGGBB colors",
				ArgsUsage: "COLOR1 COLOR2",
				Action:    ctx.mixCommandHandler,
			},
			{
				Name:      "final",
				Usage:     "mix both secret colors into the public base color",
				ArgsUsage: "BASE ALICE BOB",
				Action:    ctx.finalCommandHandler,
			},
			{
				Name:      "primes",
				Usage:     "list the primes up to MAX",
				ArgsUsage: "MAX",
				Action:    ctx.primesCommandHandler,
			},
		},
	}
}

// args returns the positional arguments when there are exactly n of them.
func args(c *cli.Context, n int) ([]string, error) {
	if c.Args().Len() != n {
		return nil, errors.Errorf("%s expects %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	return c.Args().Slice(), nil
}
