// restx composes and inspects resource transaction programs against a local
// interface registry.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var app *cli.App

// Commonly used command line flags.
var (
	ledgerFlag = &cli.StringFlag{
		Name:  "ledger",
		Usage: "path of the interface registry database",
		Value: "restx.ledger",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML file overriding the fixed-address regime",
	}
	accountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "account to withdraw resource arguments from (defaults to the transaction context)",
	}
	signerFlag = &cli.StringSliceFlag{
		Name:  "signer",
		Usage: "public key address signing the transaction (repeatable)",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "write the encoded program to this file instead of stdout",
	}
	dropRefsFlag = &cli.BoolFlag{
		Name:  "drop-all-bucket-refs",
		Usage: "append a DROP_ALL_BUCKET_REFS instruction after the call",
	}
	depositFlag = &cli.StringFlag{
		Name:  "deposit-all-buckets",
		Usage: "append a DEPOSIT_ALL_BUCKETS instruction targeting this account",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "dump the decoded program structure",
	}
)

func init() {
	app = &cli.App{
		Name:  "restx",
		Usage: "compose and inspect resource transaction programs",
		Commands: []*cli.Command{
			commandRegister,
			commandRegisterComponent,
			commandCallFunction,
			commandCallMethod,
			commandNewAccount,
			commandShow,
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
