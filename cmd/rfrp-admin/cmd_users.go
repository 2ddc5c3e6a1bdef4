// ABOUTME: User management commands: CRUD, node binding, quota adjustment
// ABOUTME: Quota changes are signed GB deltas applied additively

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

// cmdUsers dispatches users subcommands.
func cmdUsers(a *app, args []string) error {
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
		return cmdUsersList(a)
	case "create", "add":
		return cmdUsersCreate(a, args)
	case "update":
		return cmdUsersUpdate(a, args)
	case "delete", "rm", "remove":
		return cmdUsersDelete(a, args)
	case "clients", "nodes":
		return cmdUsersNodes(a, args)
	case "bind":
		return cmdUsersBind(a, args, true)
	case "unbind":
		return cmdUsersBind(a, args, false)
	case "quota":
		return cmdUsersQuota(a, args)
	default:
		return fmt.Errorf("unknown users subcommand: %s (use list, create, update, delete, clients, bind, unbind, quota)", subcmd)
	}
}

func cmdUsersList(a *app) error {
	users, err := a.client.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("ListUsers: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Users")
	cyan.Println("  -----")

	if len(users) == 0 {
		fmt.Println("  (no users)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tUSERNAME\tROLE\tUSED\tQUOTA\tCREATED")
	fmt.Fprintln(w, "  --\t--------\t----\t----\t-----\t-------")
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		quota := "unlimited"
		if u.TrafficQuota > 0 {
			quota = formatBytes(u.TrafficQuota)
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, truncate(u.Username, 24), role, formatBytes(u.TrafficUsed), quota, formatTime(u.CreatedAt))
	}
	w.Flush()
	fmt.Println()

	return nil
}

func cmdUsersCreate(a *app, args []string) error {
	var req api.CreateUserRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				req.Username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				req.Password = args[i+1]
				i++
			}
		case "--admin":
			req.IsAdmin = true
		case "--quota-gb":
			if i+1 < len(args) {
				gb, err := strconv.ParseInt(args[i+1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid --quota-gb %q", args[i+1])
				}
				req.TrafficQuota = gb * 1024 * 1024 * 1024
				i++
			}
		}
	}
	if req.Username == "" || req.Password == "" {
		return fmt.Errorf("usage: users create --username <name> --password <pw> [--admin] [--quota-gb <n>]")
	}

	user, err := a.client.CreateUser(context.Background(), req)
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func cmdUsersUpdate(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: users update <id> [--password <pw>] [--admin true|false]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	var req api.UpdateUserRequest
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--password", "-p":
			if i+1 < len(args) {
				req.Password = &args[i+1]
				i++
			}
		case "--admin":
			if i+1 < len(args) {
				isAdmin := args[i+1] == "true"
				req.IsAdmin = &isAdmin
				i++
			}
		}
	}
	if req.Password == nil && req.IsAdmin == nil {
		return fmt.Errorf("nothing to update (use --password or --admin)")
	}

	user, err := a.client.UpdateUser(context.Background(), id, req)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Updated user %s\n", user.Username)
	return nil
}

func cmdUsersDelete(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: users delete <id> [--yes]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !hasFlag(args, "--yes") && !confirm(fmt.Sprintf("Delete user %d and all its bindings?", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.client.DeleteUser(context.Background(), id); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted user %d\n", id)
	return nil
}

func cmdUsersNodes(a *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: users clients <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	nodes, err := a.client.ListUserNodes(context.Background(), id)
	if err != nil {
		return fmt.Errorf("ListUserNodes: %w", err)
	}

	printNodeTable(fmt.Sprintf("Nodes bound to user %d", id), nodes)
	return nil
}

func cmdUsersBind(a *app, args []string, bind bool) error {
	verb := "bind"
	if !bind {
		verb = "unbind"
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: users %s <user-id> <node-id>", verb)
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	nodeID, err := parseID(args[1])
	if err != nil {
		return err
	}

	if bind {
		err = a.client.BindUserNode(context.Background(), userID, nodeID)
	} else {
		err = a.client.UnbindUserNode(context.Background(), userID, nodeID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", verb, err)
	}

	green := color.New(color.FgGreen)
	if bind {
		green.Printf("✓ Bound node %d to user %d\n", nodeID, userID)
	} else {
		green.Printf("✓ Unbound node %d from user %d\n", nodeID, userID)
	}
	return nil
}

func cmdUsersQuota(a *app, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: users quota <id> <signed-gb-delta>  (e.g. +50 or -10)")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid GB delta %q", args[1])
	}
	if delta == 0 {
		return fmt.Errorf("delta must be non-zero")
	}

	user, err := a.client.AdjustUserTraffic(context.Background(), id, delta)
	if err != nil {
		return fmt.Errorf("AdjustUserTraffic: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Adjusted quota for %s by %+d GB (now %s)\n",
		user.Username, delta, formatBytes(user.TrafficQuota))
	return nil
}
