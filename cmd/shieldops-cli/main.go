// Command shieldops-cli logs in to the API and prints reports or the current
// identity as JSON.
//
//	shieldops-cli -u admin -p shieldops reports
//	shieldops-cli -u viewer -p shieldops me
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"shieldops/internal/client"
	"shieldops/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	baseURL := flag.String("api", cfg.APIBaseURL, "API base URL")
	username := flag.String("u", "admin", "username")
	password := flag.String("p", "", "password")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "reports"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, client.New(*baseURL), cmd, *username, *password); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd, username, password string) error {
	if cmd == "health" {
		if err := c.Health(ctx); err != nil {
			return err
		}
		return printJSON(map[string]string{"status": "ok"})
	}

	login, err := c.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	switch cmd {
	case "login":
		return printJSON(login)
	case "reports":
		reps, err := c.Reports(ctx)
		if err != nil {
			return fmt.Errorf("reports: %w", err)
		}
		return printJSON(reps)
	case "me":
		me, err := c.Me(ctx)
		if err != nil {
			return fmt.Errorf("me: %w", err)
		}
		return printJSON(me)
	}
	return fmt.Errorf("unknown command %q (want health, login, reports or me)", cmd)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
