// Package main is a developer tool that logs into the booking backend and
// prints the issued access token, for driving the API from curl or scripts
// without going through the roomdesk session flow.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"roomdesk/internal/backend"
	"roomdesk/internal/platform/config"
	"roomdesk/internal/session"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Usage     string `json:"usage"`
}

func main() {
	email := flag.String("email", os.Getenv("BOOKING_EMAIL"), "Account email (or BOOKING_EMAIL)")
	password := flag.String("password", os.Getenv("BOOKING_PASSWORD"), "Account password (or BOOKING_PASSWORD)")
	asJSON := flag.Bool("json", false, "Output as JSON")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -email <email> -password <password> [-json]")
		os.Exit(2)
	}

	cfg := config.FromEnv()
	sess := session.NewContext()
	client := backend.New(cfg.BackendBaseURL, sess, *timeout,
		backend.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := client.Login(ctx, *email, *password); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}
	user, err := client.Me(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "account lookup failed:", err)
		os.Exit(1)
	}

	token, _ := sess.Token()
	out := tokenOutput{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
		Usage: fmt.Sprintf(`curl -H "Authorization: Bearer %s" %s/bookings/my`, token, cfg.BackendBaseURL),
	}
	if exp, ok := sess.ExpiresAt(); ok {
		out.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}
	fmt.Println(out.Token)
	fmt.Fprintln(os.Stderr, "role:", out.Role)
	if out.ExpiresAt != "" {
		fmt.Fprintln(os.Stderr, "expires:", out.ExpiresAt)
	}
}
