// ABOUTME: Auth commands: login, logout, register, me, status
// ABOUTME: Login prompts for the password without echo and stores the session

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ryunnet/rfrp-sub001/internal/api"
	"github.com/ryunnet/rfrp-sub001/internal/session"
)

// cmdLogin authenticates and persists the session.
func cmdLogin(a *app, args []string) error {
	var username, password string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}

	if username == "" {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	result, err := a.client.Login(context.Background(), api.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	sess := &session.Session{
		Token: result.Token,
		User: session.User{
			ID:       result.User.ID,
			Username: result.User.Username,
			IsAdmin:  result.User.IsAdmin,
		},
	}
	if err := a.sessions.Save(sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Logged in as %s\n", result.User.Username)
	return nil
}

// cmdLogout clears the stored session. Purely local; no network round-trip.
func cmdLogout(a *app) error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	green := color.New(color.FgGreen)
	green.Println("✓ Logged out")
	return nil
}

// cmdRegister creates an account while registration is open.
func cmdRegister(a *app, args []string) error {
	var username, password string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--username", "-u":
			if i+1 < len(args) {
				username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}
	if username == "" {
		return fmt.Errorf("usage: register --username <name> [--password <pw>]")
	}

	status, err := a.client.RegistrationStatus(context.Background())
	if err != nil {
		return fmt.Errorf("checking registration status: %w", err)
	}
	if !status.Enabled {
		return fmt.Errorf("registration is closed on this controller")
	}

	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	user, err := a.client.Register(context.Background(), api.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Registered user %s (id %d)\n", user.Username, user.ID)
	return nil
}

// cmdMe shows the authenticated user's identity.
func cmdMe(a *app) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	user, err := a.client.Me(context.Background())
	if err != nil {
		return fmt.Errorf("me: %w", err)
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	fmt.Println()
	cyan.Println("  Identity")
	cyan.Println("  --------")
	fmt.Printf("  ID:        %d\n", user.ID)
	fmt.Printf("  Username:  %s\n", user.Username)
	if user.IsAdmin {
		green.Println("  Role:      admin")
	} else {
		fmt.Println("  Role:      user")
	}
	if user.TrafficQuota > 0 {
		fmt.Printf("  Quota:     %s used of %s\n", formatBytes(user.TrafficUsed), formatBytes(user.TrafficQuota))
	} else {
		fmt.Printf("  Quota:     %s used (unlimited)\n", formatBytes(user.TrafficUsed))
	}
	fmt.Println()

	return nil
}

// cmdStatus shows controller reachability and identity.
func cmdStatus(a *app) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	// Registration status is unauthenticated, so it doubles as a liveness probe
	status, err := a.client.RegistrationStatus(context.Background())
	if err != nil {
		yellow.Printf("  Controller:    ")
		color.Red("UNREACHABLE (%v)\n", err)
		return nil
	}

	green.Printf("  Controller:    ")
	fmt.Printf("%s\n", a.client.BaseURL())
	fmt.Printf("  Registration:  ")
	if status.Enabled {
		fmt.Println("open")
	} else {
		fmt.Println("closed")
	}

	if a.sessions.Token() != "" {
		user, err := a.client.Me(context.Background())
		if err != nil {
			yellow.Printf("  Identity:      ")
			color.Red("auth failed (%v)\n", err)
		} else {
			green.Printf("  Identity:      ")
			role := "user"
			if user.IsAdmin {
				role = "admin"
			}
			fmt.Printf("%s (%s)\n", user.Username, role)
		}
	} else {
		yellow.Printf("  Identity:      ")
		fmt.Println("(not logged in - run 'rfrp-admin login')")
	}

	fmt.Println()
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
