// ABOUTME: Node (rfrp client) management commands
// ABOUTME: Create prints the connect secret once; it is not shown again

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ryunnet/rfrp-sub001/internal/api"
)

// cmdNodes dispatches clients/nodes subcommands.
func cmdNodes(a *app, args []string) error {
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
		return cmdNodesList(a)
	case "get", "show":
		return cmdNodesGet(a, args)
	case "create", "add":
		return cmdNodesCreate(a, args)
	case "update":
		return cmdNodesUpdate(a, args)
	case "delete", "rm", "remove":
		return cmdNodesDelete(a, args)
	default:
		return fmt.Errorf("unknown clients subcommand: %s (use list, get, create, update, delete)", subcmd)
	}
}

func cmdNodesList(a *app) error {
	nodes, err := a.client.ListNodes(context.Background())
	if err != nil {
		return fmt.Errorf("ListNodes: %w", err)
	}
	printNodeTable("Nodes", nodes)
	return nil
}

func cmdNodesGet(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clients get <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	node, err := a.client.GetNode(context.Background(), id)
	if err != nil {
		return fmt.Errorf("GetNode: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Node %d\n", node.ID)
	cyan.Println("  -------")
	fmt.Printf("  Name:       %s\n", node.Name)
	fmt.Printf("  Status:     %s\n", node.Status)
	fmt.Printf("  Version:    %s\n", node.Version)
	if node.Remark != "" {
		fmt.Printf("  Remark:     %s\n", node.Remark)
	}
	if node.LastSeenAt != "" {
		fmt.Printf("  Last seen:  %s\n", formatTime(node.LastSeenAt))
	}
	fmt.Println()

	proxies, err := a.client.ListNodeProxies(context.Background(), id)
	if err != nil {
		return fmt.Errorf("ListNodeProxies: %w", err)
	}
	printProxyTable(fmt.Sprintf("Proxies on node %d", id), proxies)
	return nil
}

func cmdNodesCreate(a *app, args []string) error {
	var req api.CreateNodeRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				req.Name = args[i+1]
				i++
			}
		case "--remark":
			if i+1 < len(args) {
				req.Remark = args[i+1]
				i++
			}
		}
	}
	if req.Name == "" {
		return fmt.Errorf("usage: clients create --name <name> [--remark <text>]")
	}

	node, err := a.client.CreateNode(context.Background(), req)
	if err != nil {
		return fmt.Errorf("CreateNode: %w", err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	green.Printf("✓ Created node %s (id %d)\n", node.Name, node.ID)
	if node.Secret != "" {
		yellow.Println("  Connect secret (shown once):")
		fmt.Printf("  %s\n", node.Secret)
	}
	return nil
}

func cmdNodesUpdate(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clients update <id> [--name <name>] [--remark <text>]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	var req api.UpdateNodeRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				req.Name = &args[i+1]
				i++
			}
		case "--remark":
			if i+1 < len(args) {
				req.Remark = &args[i+1]
				i++
			}
		}
	}
	if req.Name == nil && req.Remark == nil {
		return fmt.Errorf("nothing to update (use --name or --remark)")
	}

	node, err := a.client.UpdateNode(context.Background(), id, req)
	if err != nil {
		return fmt.Errorf("UpdateNode: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Updated node %s\n", node.Name)
	return nil
}

func cmdNodesDelete(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clients delete <id> [--yes]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !hasFlag(args, "--yes") && !confirm(fmt.Sprintf("Delete node %d and all its proxies?", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.client.DeleteNode(context.Background(), id); err != nil {
		return fmt.Errorf("DeleteNode: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted node %d\n", id)
	return nil
}

// printNodeTable renders a node list with a section heading.
func printNodeTable(title string, nodes []api.Node) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  %s\n", title)
	cyan.Printf("  %s\n", dashes(len(title)))

	if len(nodes) == 0 {
		fmt.Println("  (no nodes)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tSTATUS\tVERSION\tLAST SEEN")
	fmt.Fprintln(w, "  --\t----\t------\t-------\t---------")
	for _, n := range nodes {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
			n.ID, truncate(n.Name, 24), n.Status, n.Version, formatTime(n.LastSeenAt))
	}
	w.Flush()
	fmt.Println()
}

// dashes returns a dashed underline of the given width.
func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
