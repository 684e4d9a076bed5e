// Copyright © 2021 Io FinNet Group, Inc.

package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/iofinnet/dhlab/color"
	"github.com/iofinnet/dhlab/common"
	"github.com/iofinnet/dhlab/dh"
	"github.com/iofinnet/dhlab/server"
)

const primesPerRow = 10

// ./dhlab serve [--listen ADDR] [--language en|de]
func (ctx *bootContext) serveCommandHandler(c *cli.Context) error {
	if c.Args().Len() > 0 {
		return errors.Errorf("serve takes no arguments")
	}
	cfg := *ctx.cfg
	if c.IsSet(flagListen) {
		cfg.Listen = c.String(flagListen)
	}
	if c.IsSet(flagLanguage) {
		cfg.Language = c.String(flagLanguage)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	runCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(&cfg).Run(runCtx)
}

// ./dhlab params P G
func (ctx *bootContext) paramsCommandHandler(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	params, err := dh.NewParameters(a[0], a[1])
	if err != nil {
		return err
	}
	order := params.GeneratorOrder()
	table := newTable(c.App.Writer, "", "value")
	table.Append([]string{"p", params.Modulus().String()})
	table.Append([]string{"g", params.Generator().String()})
	table.Append([]string{"group size p-1", new(big.Int).Sub(params.Modulus(), big.NewInt(1)).String()})
	table.Append([]string{"order of g", strconv.FormatUint(order, 10)})
	table.Append([]string{"primitive root", yesNo(params.IsPrimitiveRoot())})
	table.Render()
	return nil
}

// ./dhlab public P G SECRET
func (ctx *bootContext) publicCommandHandler(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	public, err := dh.PublicValue(a[0], a[1], a[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, public)
	return nil
}

// ./dhlab shared P SECRET PUBLIC
func (ctx *bootContext) sharedCommandHandler(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	shared, err := dh.SharedValue(a[0], a[1], a[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, shared)
	return nil
}

// ./dhlab exp BASE EXP MOD
func (ctx *bootContext) expCommandHandler(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	result, err := dh.DiscreteExp(a[0], a[1], a[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, result)
	return nil
}

// ./dhlab log [--table] BASE RESULT MOD
func (ctx *bootContext) logCommandHandler(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	x, err := dh.DiscreteLog(a[0], a[1], a[2])
	if c.Bool(flagTable) && (err == nil || dh.IsKind(err, dh.KindNoSolutionFound)) {
		limit := -1
		if x != nil {
			limit = int(x.Int64()) + 1
		}
		if terr := printPowerTable(c.App.Writer, a[0], a[1], a[2], limit); terr != nil {
			return terr
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, x)
	return nil
}

func printPowerTable(w io.Writer, baseRaw, resultRaw, modulusRaw string, limit int) error {
	base, err := dh.ParsePositiveInt(dh.FieldBase, baseRaw)
	if err != nil {
		return err
	}
	result, err := dh.ParsePositiveInt(dh.FieldResult, resultRaw)
	if err != nil {
		return err
	}
	modulus, err := dh.ParsePositiveInt(dh.FieldModulus, modulusRaw)
	if err != nil {
		return err
	}
	rows, err := dh.PowerTable(base, modulus, limit)
	if err != nil {
		return err
	}
	table := newTable(w, "x", fmt.Sprintf("%s^x mod %s", baseRaw, modulusRaw), "")
	for _, row := range rows {
		mark := ""
		if result.IsUint64() && row.Value == result.Uint64() {
			mark = "<-"
		}
		table.Append([]string{strconv.FormatUint(row.Exponent, 10), strconv.FormatUint(row.Value, 10), mark})
	}
	table.Render()
	return nil
}

// ./dhlab exchange P G SECRET_A SECRET_B
func (ctx *bootContext) exchangeCommandHandler(c *cli.Context) error {
	a, err := args(c, 4)
	if err != nil {
		return err
	}
	params, err := dh.NewParameters(a[0], a[1])
	if err != nil {
		return err
	}
	secretA, err := dh.ParsePositiveInt("secret_a", a[2])
	if err != nil {
		return err
	}
	secretB, err := dh.ParsePositiveInt("secret_b", a[3])
	if err != nil {
		return err
	}
	return printExchange(c.App.Writer, params, secretA, secretB)
}

func printExchange(w io.Writer, params *dh.Parameters, secretA, secretB *big.Int) error {
	alice, err := params.NewKeyPair(secretA)
	if err != nil {
		return err
	}
	bob, err := params.NewKeyPair(secretB)
	if err != nil {
		return err
	}
	modulus := params.Modulus()
	sharedA, err := alice.SharedSecret(modulus, bob.Public)
	if err != nil {
		return err
	}
	sharedB, err := bob.SharedSecret(modulus, alice.Public)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "public parameters: %s\n", params)
	table := newTable(w, "step", "Alice", "Bob")
	table.Append([]string{"secret", alice.Secret.String(), bob.Secret.String()})
	table.Append([]string{"public = g^secret mod p", alice.Public.String(), bob.Public.String()})
	table.Append([]string{"received", bob.Public.String(), alice.Public.String()})
	table.Append([]string{"shared = received^secret mod p", sharedA.String(), sharedB.String()})
	table.Render()

	if sharedA.Cmp(sharedB) != 0 {
		return errors.Errorf("shared secrets differ: %s != %s", sharedA, sharedB)
	}
	fmt.Fprintf(w, "both parties hold %s\n", sharedA)
	return nil
}

// ./dhlab suggest [--bits N]
func (ctx *bootContext) suggestCommandHandler(c *cli.Context) error {
	s, err := dh.SuggestParameters(c.Int(flagBits))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "order of g: %d (primitive root)\n", s.Params.GeneratorOrder())
	return printExchange(c.App.Writer, s.Params, s.SecretA, s.SecretB)
}

// ./dhlab mix COLOR1 COLOR2
func (ctx *bootContext) mixCommandHandler(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	res, err := color.Mix(a[0], a[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, res.Mixed.Hex())
	return nil
}

// ./dhlab final BASE ALICE BOB
func (ctx *bootContext) finalCommandHandler(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	res, err := color.Final(a[0], a[1], a[2])
	if err != nil {
		return err
	}
	table := newTable(c.App.Writer, "", "color")
	table.Append([]string{"base", a[0]})
	table.Append([]string{"mix(alice, bob)", res.Intermediate.Hex()})
	table.Append([]string{"mix(base, mix(alice, bob))", res.Final.Hex()})
	table.Render()
	return nil
}

// ./dhlab primes MAX
func (ctx *bootContext) primesCommandHandler(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	limit, err := dh.ParsePositiveInt("max", a[0])
	if err != nil {
		return err
	}
	if limit.Cmp(big.NewInt(dh.SafetyCeiling)) > 0 {
		return dh.NewError(dh.KindTooLarge, "max", a[0], errors.Errorf("must not exceed %d", dh.SafetyCeiling))
	}
	primes := common.GetPrimesUpTo(int(limit.Int64()))
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	row := make([]string, 0, primesPerRow)
	for _, p := range primes {
		row = append(row, strconv.FormatUint(uint64(p), 10))
		if len(row) == primesPerRow {
			table.Append(row)
			row = make([]string, 0, primesPerRow)
		}
	}
	if len(row) > 0 {
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(c.App.Writer, "%d primes up to %s\n", len(primes), limit)
	common.Logger.Debugf("listed %d primes up to %s", len(primes), common.FormatBigInt(limit))
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
