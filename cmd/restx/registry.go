package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/ores-network/gores/abi"
	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/ledger"
)

var commandRegister = &cli.Command{
	Name:      "register",
	Usage:     "register a blueprint descriptor under a package address",
	ArgsUsage: "<package> <blueprint.json>",
	Flags:     []cli.Flag{ledgerFlag},
	Action:    register,
}

var commandRegisterComponent = &cli.Command{
	Name:      "register-component",
	Usage:     "bind a component address to a registered blueprint",
	ArgsUsage: "<component> <package> <blueprint name>",
	Flags:     []cli.Flag{ledgerFlag},
	Action:    registerComponent,
}

func openStore(c *cli.Context) (*ledger.Store, error) {
	return ledger.Open(c.String(ledgerFlag.Name))
}

func register(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected <package> <blueprint.json>, got %d arguments", c.NArg())
	}
	pkg, err := common.ParseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Args().Get(1))
	if err != nil {
		return err
	}
	var bp abi.Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return fmt.Errorf("invalid blueprint descriptor: %w", err)
	}
	if bp.Name == "" {
		return fmt.Errorf("blueprint descriptor has no name")
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutBlueprint(pkg, &bp); err != nil {
		return err
	}
	color.Green("Registered blueprint %q under %s", bp.Name, pkg)
	return nil
}

func registerComponent(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("expected <component> <package> <blueprint name>, got %d arguments", c.NArg())
	}
	component, err := common.ParseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	pkg, err := common.ParseAddress(c.Args().Get(1))
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutComponent(component, pkg, c.Args().Get(2)); err != nil {
		return err
	}
	color.Green("Registered component %s -> %s %q", component, pkg, c.Args().Get(2))
	return nil
}
