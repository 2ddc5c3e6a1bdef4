// ABOUTME: Admin CLI for the RFRP reverse-proxy controller
// ABOUTME: Talks to the controller's REST API with bearer-token authentication

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ryunnet/rfrp-sub001/internal/api"
	"github.com/ryunnet/rfrp-sub001/internal/config"
	"github.com/ryunnet/rfrp-sub001/internal/session"
)

const banner = `
       __                           _           _
  _ __/ _|_ __ _ __         __ _ __| |_ __ ___ (_)_ __
 | '__| |_| '__| '_ \ _____ / _' / _' | '_ ' _ \| | '_ \
 | |  |  _| |  | |_) |_____| (_| (_| | | | | | | | | | |
 |_|  |_| |_|  | .__/       \__,_\__,_|_| |_| |_|_|_| |_|
               |_|
`

// app bundles the pieces every command needs.
type app struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
}

func main() {
	args := os.Args[1:]

	// --profile may precede the command
	var profileName string
	if len(args) >= 2 && (args[0] == "--profile" || args[0] == "-P") {
		profileName = args[1]
		args = args[2:]
	}
	if profileName == "" {
		profileName = os.Getenv("RFRP_PROFILE")
	}

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cmd := args[0]
	args = args[1:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	a, err := newApp(profileName)
	if err == nil {
		switch cmd {
		case "login":
			err = cmdLogin(a, args)
		case "logout":
			err = cmdLogout(a)
		case "register":
			err = cmdRegister(a, args)
		case "me":
			err = cmdMe(a)
		case "status":
			err = cmdStatus(a)
		case "users":
			err = cmdUsers(a, args)
		case "clients", "nodes":
			err = cmdNodes(a, args)
		case "proxies":
			err = cmdProxies(a, args)
		case "traffic":
			err = cmdTraffic(a, args)
		case "history":
			err = cmdHistory(a, args)
		case "dashboard":
			err = cmdDashboard(a, args)
		case "config":
			err = cmdConfig(a, args)
		case "restart":
			err = cmdRestart(a, args)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
			printUsage()
			os.Exit(1)
		}
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp loads config, restores the session, and wires the API client.
func newApp(profileName string) (*app, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	serverURL := cfg.Server.URL
	sessionPath := session.DefaultPath()
	if profileName != "" {
		p, err := config.Lookup(profileName)
		if err != nil {
			return nil, err
		}
		serverURL = p.URL
		if p.SessionFile != "" {
			sessionPath = p.SessionFile
		}
	}

	setupLogging(cfg.Logging)

	sessions := session.NewStore(sessionPath)
	if _, err := sessions.Load(); err != nil && !errors.Is(err, session.ErrNoSession) {
		return nil, err
	}

	client := api.New(serverURL,
		api.WithTokenSource(sessions),
		api.WithTimeout(cfg.Server.Timeout),
		api.WithAuthFailureHandler(func(reason string) {
			_ = sessions.Clear()
			color.Yellow("Session is no longer valid; run 'rfrp-admin login' again.")
		}),
	)

	return &app{cfg: cfg, sessions: sessions, client: client}, nil
}

// setupLogging configures the process-wide slog default from config.
func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// requireSession fails early when no token is available, instead of letting
// every request bounce off the server with a 401.
func (a *app) requireSession() error {
	if a.sessions.Token() == "" {
		return session.ErrNoSession
	}
	return nil
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: rfrp-admin [--profile <name>] <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login                     Log in and store the session")
	fmt.Println("  logout                    Clear the stored session")
	fmt.Println("  register                  Create an account (if registration is open)")
	fmt.Println("  me                        Show your identity")
	fmt.Println("  status                    Show controller status and your identity")
	fmt.Println("  users list                List users")
	fmt.Println("  users create              Create a user")
	fmt.Println("  users update <id>         Update a user")
	fmt.Println("  users delete <id>         Delete a user")
	fmt.Println("  users clients <id>        List the nodes bound to a user")
	fmt.Println("  users bind <id> <node>    Bind a node to a user")
	fmt.Println("  users unbind <id> <node>  Unbind a node from a user")
	fmt.Println("  users quota <id> <gb>     Adjust a user's quota by a signed GB delta")
	fmt.Println("  clients list|get|create|update|delete")
	fmt.Println("                            Manage nodes (rfrp clients)")
	fmt.Println("  proxies list|create|update|delete")
	fmt.Println("                            Manage forwarded ports")
	fmt.Println("  traffic [user-id]         Show traffic counters (--record to snapshot)")
	fmt.Println("  history                   Show recorded traffic snapshots")
	fmt.Println("  dashboard [user-id]       Show aggregate stats")
	fmt.Println("  config list               List system configuration")
	fmt.Println("  config set <key> <value>  Change system configuration (diffed batch save)")
	fmt.Println("  restart                   Restart the controller")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  RFRP_SERVER_URL           Controller API URL (default: " + api.DefaultBaseURL + ")")
	fmt.Println("  RFRP_TOKEN                Bearer token (overrides the stored session)")
	fmt.Println("  RFRP_PROFILE              Default profile from profiles.toml")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  rfrp-admin login -u admin")
	fmt.Println("  rfrp-admin users quota 3 +50")
	fmt.Println("  rfrp-admin config set web_port 8081")
	fmt.Println()
}
