package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/ores-network/gores/tx"
)

var commandShow = &cli.Command{
	Name:      "show",
	Usage:     "decode an encoded program and print its instructions",
	ArgsUsage: "<program.json>",
	Flags:     []cli.Flag{verboseFlag},
	Action:    show,
}

func show(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected <program.json>, got %d arguments", c.NArg())
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	txn, err := tx.DecodeTransaction(data)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Op", "Details"})
	for i, inst := range txn.Instructions {
		table.Append([]string{strconv.Itoa(i), string(inst.Op()), describe(inst)})
	}
	table.Render()

	if c.Bool(verboseFlag.Name) {
		spew.Dump(txn)
	}
	return nil
}

func describe(inst tx.Instruction) string {
	switch v := inst.(type) {
	case tx.TakeFromContext:
		return fmt.Sprintf("%s of %s -> bucket %d", v.Amount, v.ResourceAddress, v.To)
	case tx.BorrowFromContext:
		return fmt.Sprintf("%s of %s -> bucket ref %d", v.Amount, v.ResourceAddress, v.To)
	case tx.CallFunction:
		return fmt.Sprintf("%s %s.%s(%s)", v.PackageAddress, v.BlueprintName, v.Function, describeArgs(v.Args))
	case tx.CallMethod:
		return fmt.Sprintf("%s.%s(%s)", v.ComponentAddress, v.Method, describeArgs(v.Args))
	case tx.DepositAllBuckets:
		return v.Account.String()
	case tx.End:
		signers := make([]string, len(v.Signers))
		for i, s := range v.Signers {
			signers[i] = s.String()
		}
		return strings.Join(signers, " ")
	default:
		return ""
	}
}

func describeArgs(args []tx.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, ", ")
}
