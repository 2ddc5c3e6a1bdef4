// ABOUTME: Proxy (forwarded port) management commands
// ABOUTME: Standard CRUD over /proxies with per-node filtering on list

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ryunnet/rfrp-sub001/internal/api"
)

// cmdProxies dispatches proxies subcommands.
func cmdProxies(a *app, args []string) error {
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
		return cmdProxiesList(a, args)
	case "create", "add":
		return cmdProxiesCreate(a, args)
	case "update":
		return cmdProxiesUpdate(a, args)
	case "delete", "rm", "remove":
		return cmdProxiesDelete(a, args)
	default:
		return fmt.Errorf("unknown proxies subcommand: %s (use list, create, update, delete)", subcmd)
	}
}

func cmdProxiesList(a *app, args []string) error {
	var nodeID int64
	for i := 0; i < len(args); i++ {
		if args[i] == "--client" || args[i] == "--node" {
			if i+1 < len(args) {
				id, err := parseID(args[i+1])
				if err != nil {
					return err
				}
				nodeID = id
				i++
			}
		}
	}

	var proxies []api.Proxy
	var err error
	if nodeID > 0 {
		proxies, err = a.client.ListNodeProxies(context.Background(), nodeID)
	} else {
		proxies, err = a.client.ListProxies(context.Background())
	}
	if err != nil {
		return fmt.Errorf("ListProxies: %w", err)
	}

	printProxyTable("Proxies", proxies)
	return nil
}

func cmdProxiesCreate(a *app, args []string) error {
	req := api.CreateProxyRequest{LocalIP: "127.0.0.1", Type: "tcp"}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--client", "--node":
			if i+1 < len(args) {
				id, err := parseID(args[i+1])
				if err != nil {
					return err
				}
				req.ClientID = id
				i++
			}
		case "--name", "-n":
			if i+1 < len(args) {
				req.Name = args[i+1]
				i++
			}
		case "--type", "-t":
			if i+1 < len(args) {
				req.Type = args[i+1]
				i++
			}
		case "--local-ip":
			if i+1 < len(args) {
				req.LocalIP = args[i+1]
				i++
			}
		case "--local-port":
			if i+1 < len(args) {
				port, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid --local-port %q", args[i+1])
				}
				req.LocalPort = port
				i++
			}
		case "--remote-port":
			if i+1 < len(args) {
				port, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid --remote-port %q", args[i+1])
				}
				req.RemotePort = port
				i++
			}
		case "--domain":
			if i+1 < len(args) {
				req.Domain = args[i+1]
				i++
			}
		}
	}
	if req.ClientID == 0 || req.Name == "" || req.LocalPort == 0 {
		return fmt.Errorf("usage: proxies create --client <id> --name <name> --local-port <port> [--remote-port <port>] [--type tcp|udp|http|https] [--local-ip <ip>] [--domain <host>]")
	}

	proxy, err := a.client.CreateProxy(context.Background(), req)
	if err != nil {
		return fmt.Errorf("CreateProxy: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Created proxy %s (id %d)\n", proxy.Name, proxy.ID)
	fmt.Printf("  %s %s:%d -> remote :%d\n", proxy.Type, proxy.LocalIP, proxy.LocalPort, proxy.RemotePort)
	return nil
}

func cmdProxiesUpdate(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: proxies update <id> [--name <name>] [--local-port <port>] [--remote-port <port>] [--enabled true|false]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	var req api.UpdateProxyRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				req.Name = &args[i+1]
				i++
			}
		case "--local-ip":
			if i+1 < len(args) {
				req.LocalIP = &args[i+1]
				i++
			}
		case "--local-port":
			if i+1 < len(args) {
				port, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid --local-port %q", args[i+1])
				}
				req.LocalPort = &port
				i++
			}
		case "--remote-port":
			if i+1 < len(args) {
				port, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid --remote-port %q", args[i+1])
				}
				req.RemotePort = &port
				i++
			}
		case "--domain":
			if i+1 < len(args) {
				req.Domain = &args[i+1]
				i++
			}
		case "--enabled":
			if i+1 < len(args) {
				enabled := args[i+1] == "true"
				req.Enabled = &enabled
				i++
			}
		}
	}

	proxy, err := a.client.UpdateProxy(context.Background(), id, req)
	if err != nil {
		return fmt.Errorf("UpdateProxy: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Updated proxy %s\n", proxy.Name)
	return nil
}

func cmdProxiesDelete(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: proxies delete <id> [--yes]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !hasFlag(args, "--yes") && !confirm(fmt.Sprintf("Delete proxy %d?", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.client.DeleteProxy(context.Background(), id); err != nil {
		return fmt.Errorf("DeleteProxy: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted proxy %d\n", id)
	return nil
}

// printProxyTable renders a proxy list with a section heading.
func printProxyTable(title string, proxies []api.Proxy) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  %s\n", title)
	cyan.Printf("  %s\n", dashes(len(title)))

	if len(proxies) == 0 {
		fmt.Println("  (no proxies)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNODE\tNAME\tTYPE\tLOCAL\tREMOTE\tENABLED")
	fmt.Fprintln(w, "  --\t----\t----\t----\t-----\t------\t-------")
	for _, p := range proxies {
		local := fmt.Sprintf("%s:%d", p.LocalIP, p.LocalPort)
		remote := fmt.Sprintf(":%d", p.RemotePort)
		if p.Domain != "" {
			remote = p.Domain
		}
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\t%s\t%t\n",
			p.ID, p.ClientID, truncate(p.Name, 24), p.Type, local, remote, p.Enabled)
	}
	w.Flush()
	fmt.Println()
}
