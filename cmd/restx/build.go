package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/tx"
)

var commandCallFunction = &cli.Command{
	Name:      "call-function",
	Usage:     "compose a program calling a blueprint function",
	ArgsUsage: "<package> <blueprint> <function> [arg...]",
	Flags: []cli.Flag{
		ledgerFlag, configFlag, accountFlag, signerFlag, outFlag, dropRefsFlag, depositFlag,
	},
	Action: callFunction,
}

var commandCallMethod = &cli.Command{
	Name:      "call-method",
	Usage:     "compose a program calling a component method",
	ArgsUsage: "<component> <method> [arg...]",
	Flags: []cli.Flag{
		ledgerFlag, configFlag, accountFlag, signerFlag, outFlag, dropRefsFlag, depositFlag,
	},
	Action: callMethod,
}

var commandNewAccount = &cli.Command{
	Name:      "new-account",
	Usage:     "compose a program creating an account guarded by a public key",
	ArgsUsage: "<public key>",
	Flags:     []cli.Flag{ledgerFlag, configFlag, signerFlag, outFlag},
	Action:    newAccount,
}

func callFunction(c *cli.Context) error {
	if c.NArg() < 3 {
		return fmt.Errorf("expected <package> <blueprint> <function> [arg...], got %d arguments", c.NArg())
	}
	pkg, err := common.ParseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return compose(c, func(b *tx.Builder, account *common.Address) {
		b.CallFunction(pkg, c.Args().Get(1), c.Args().Get(2), c.Args().Slice()[3:], account)
	})
}

func callMethod(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("expected <component> <method> [arg...], got %d arguments", c.NArg())
	}
	component, err := common.ParseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return compose(c, func(b *tx.Builder, account *common.Address) {
		b.CallMethod(component, c.Args().Get(1), c.Args().Slice()[2:], account)
	})
}

func newAccount(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected <public key>, got %d arguments", c.NArg())
	}
	key, err := common.ParseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return compose(c, func(b *tx.Builder, _ *common.Address) {
		b.NewAccount(key)
	})
}

// compose runs one builder step plus the flag-selected epilogue and writes the
// encoded program.
func compose(c *cli.Context, step func(*tx.Builder, *common.Address)) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	var account *common.Address
	if raw := c.String(accountFlag.Name); raw != "" {
		addr, err := common.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("invalid account: %w", err)
		}
		account = &addr
	}

	builder := tx.NewBuilderWithConfig(store, cfg)
	step(builder, account)

	if c.Bool(dropRefsFlag.Name) {
		builder.DropAllBucketRefs()
	}
	if raw := c.String(depositFlag.Name); raw != "" {
		deposit, err := common.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("invalid deposit account: %w", err)
		}
		builder.DepositAllBuckets(deposit)
	}

	signers := make([]common.Address, 0, len(c.StringSlice(signerFlag.Name)))
	for _, raw := range c.StringSlice(signerFlag.Name) {
		signer, err := common.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("invalid signer: %w", err)
		}
		signers = append(signers, signer)
	}

	txn, err := builder.Build(signers)
	if err != nil {
		return err
	}
	slog.Debug("program composed", "instructions", len(txn.Instructions), "signers", len(signers))
	encoded, err := tx.EncodeTransaction(txn)
	if err != nil {
		return err
	}
	if path := c.String(outFlag.Name); path != "" {
		return os.WriteFile(path, encoded, 0644)
	}
	fmt.Println(string(encoded))
	return nil
}
