// ABOUTME: Traffic, history, and dashboard commands
// ABOUTME: --record stores overview snapshots in the local history database

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ryunnet/rfrp-sub001/internal/history"
)

// cmdTraffic shows traffic counters, controller-wide or for one user.
func cmdTraffic(a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	var userID int64
	record := false
	for _, arg := range args {
		if arg == "--record" {
			record = true
			continue
		}
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		userID = id
	}

	if userID > 0 {
		traffic, err := a.client.UserTrafficOverview(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("UserTrafficOverview: %w", err)
		}

		cyan := color.New(color.FgCyan)
		fmt.Println()
		cyan.Printf("  Traffic for %s\n", traffic.Username)
		cyan.Println("  ------------------")
		fmt.Printf("  In:     %s\n", formatBytes(traffic.TrafficIn))
		fmt.Printf("  Out:    %s\n", formatBytes(traffic.TrafficOut))
		if traffic.Quota > 0 {
			fmt.Printf("  Quota:  %s\n", formatBytes(traffic.Quota))
		} else {
			fmt.Println("  Quota:  unlimited")
		}
		fmt.Println()
		return nil
	}

	overview, err := a.client.TrafficOverviewAll(context.Background())
	if err != nil {
		return fmt.Errorf("TrafficOverview: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Traffic Overview")
	cyan.Println("  ----------------")
	fmt.Printf("  Total in:   %s\n", formatBytes(overview.TotalIn))
	fmt.Printf("  Total out:  %s\n", formatBytes(overview.TotalOut))

	if len(overview.Users) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  USER\tIN\tOUT\tQUOTA")
		fmt.Fprintln(w, "  ----\t--\t---\t-----")
		for _, u := range overview.Users {
			quota := "unlimited"
			if u.Quota > 0 {
				quota = formatBytes(u.Quota)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
				truncate(u.Username, 24), formatBytes(u.TrafficIn), formatBytes(u.TrafficOut), quota)
		}
		w.Flush()
	}
	fmt.Println()

	if record {
		store, err := history.Open(history.DefaultPath())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(context.Background(), overview.TotalIn, overview.TotalOut); err != nil {
			return err
		}
		green := color.New(color.FgGreen)
		green.Println("✓ Snapshot recorded")
	}

	return nil
}

// cmdHistory shows recorded traffic snapshots and the deltas between them.
func cmdHistory(a *app, args []string) error {
	limit := 20
	prune := -1
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--limit":
			if i+1 < len(args) {
				fmt.Sscanf(args[i+1], "%d", &limit)
				i++
			}
		case "--prune":
			if i+1 < len(args) {
				fmt.Sscanf(args[i+1], "%d", &prune)
				i++
			}
		}
	}

	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if prune >= 0 {
		if err := store.Prune(context.Background(), prune); err != nil {
			return err
		}
		green := color.New(color.FgGreen)
		green.Printf("✓ Pruned history to %d snapshot(s)\n", prune)
		return nil
	}

	snapshots, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Traffic History")
	cyan.Println("  ---------------")

	if len(snapshots) == 0 {
		fmt.Println("  (no snapshots - run 'rfrp-admin traffic --record')")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TAKEN\tIN\tOUT\tΔIN\tΔOUT")
	fmt.Fprintln(w, "  -----\t--\t---\t---\t----")
	// Newest first; the delta for each row is relative to the next (older) one.
	for i, snap := range snapshots {
		deltaIn, deltaOut := "-", "-"
		if i+1 < len(snapshots) {
			prev := snapshots[i+1]
			deltaIn = formatBytes(snap.TotalIn - prev.TotalIn)
			deltaOut = formatBytes(snap.TotalOut - prev.TotalOut)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			snap.TakenAt.Local().Format("Jan 02 15:04"),
			formatBytes(snap.TotalIn), formatBytes(snap.TotalOut), deltaIn, deltaOut)
	}
	w.Flush()
	fmt.Println()

	return nil
}

// cmdDashboard shows aggregate stats scoped to a user (self by default).
func cmdDashboard(a *app, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	var userID int64
	if len(args) > 0 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		userID = id
	} else if sess := a.sessions.Current(); sess != nil {
		userID = sess.User.ID
	}
	if userID == 0 {
		return fmt.Errorf("usage: dashboard <user-id>")
	}

	stats, err := a.client.Dashboard(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("Dashboard: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Dashboard")
	cyan.Println("  ---------")
	fmt.Printf("  Users:        %d\n", stats.UserCount)
	fmt.Printf("  Nodes:        %d (%d online)\n", stats.ClientCount, stats.OnlineCount)
	fmt.Printf("  Proxies:      %d\n", stats.ProxyCount)
	fmt.Printf("  Traffic in:   %s\n", formatBytes(stats.TrafficIn))
	fmt.Printf("  Traffic out:  %s\n", formatBytes(stats.TrafficOut))
	if stats.TrafficQuota > 0 {
		fmt.Printf("  Quota:        %s\n", formatBytes(stats.TrafficQuota))
	}
	fmt.Println()

	return nil
}
