// ABOUTME: System configuration commands and controller restart
// ABOUTME: Edits go through the reconciliation editor so only diffs are sent

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ryunnet/rfrp-sub001/internal/settings"
)

// cmdConfig dispatches config subcommands.
func cmdConfig(a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdConfigList(a)
	case "get":
		return cmdConfigGet(a, args)
	case "set":
		return cmdConfigSet(a, args)
	default:
		return fmt.Errorf("unknown config subcommand: %s (use list, get, set)", subcmd)
	}
}

func cmdConfigList(a *app) error {
	editor := settings.NewEditor(a.client)
	if err := editor.Load(context.Background()); err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  System Configuration")
	cyan.Println("  --------------------")

	items := editor.Items()
	if len(items) == 0 {
		fmt.Println("  (no configuration items)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  KEY\tVALUE\tTYPE\tDESCRIPTION")
	fmt.Fprintln(w, "  ---\t-----\t----\t-----------")
	for _, item := range items {
		fmt.Fprintf(w, "  %s\t%v\t%s\t%s\n",
			item.Key, item.Value, item.ValueType, truncate(item.Description, 48))
	}
	w.Flush()
	fmt.Println()

	return nil
}

func cmdConfigGet(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: config get <key>")
	}

	editor := settings.NewEditor(a.client)
	if err := editor.Load(context.Background()); err != nil {
		return err
	}

	value, ok := editor.Value(args[0])
	if !ok {
		return fmt.Errorf("unknown config key %q", args[0])
	}
	fmt.Printf("%v\n", value)
	return nil
}

// cmdConfigSet loads the config set, applies one or more key/value edits,
// and saves only the keys that actually changed. Setting a key to its
// current value is a successful no-op with no write.
func cmdConfigSet(a *app, args []string) error {
	if len(args) < 2 || len(args)%2 != 0 {
		return fmt.Errorf("usage: config set <key> <value> [<key> <value> ...]")
	}

	editor := settings.NewEditor(a.client)
	if err := editor.Load(context.Background()); err != nil {
		return err
	}

	for i := 0; i < len(args); i += 2 {
		if err := editor.SetValue(args[i], args[i+1]); err != nil {
			return err
		}
	}

	diff := editor.Diff()
	if len(diff) == 0 {
		fmt.Println("No changes (values already match).")
		return nil
	}

	if err := editor.Save(context.Background()); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Saved %d config change(s)\n", len(diff))
	for _, update := range diff {
		// Show the post-save server value, which is authoritative
		value, _ := editor.Value(update.Key)
		fmt.Printf("  %s = %v\n", update.Key, value)
	}
	return nil
}

// cmdRestart asks the controller to restart itself.
func cmdRestart(a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	if !hasFlag(args, "--yes") && !confirm("Restart the controller? Active tunnels will reconnect.") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.client.RestartSystem(context.Background()); err != nil {
		return fmt.Errorf("RestartSystem: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Println("✓ Restart requested")
	return nil
}
