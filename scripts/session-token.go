package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/socialchef/recipedesk/internal/middleware"
)

// Prints a recipedesk_session cookie value for poking the API with curl.
// The server only honours it for a session it already knows, so pass the id
// from an existing cookie or expect a fresh session to be issued.
func main() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: SESSION_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: SESSION_SECRET=secret go run scripts/session-token.go [session-id]")
		os.Exit(1)
	}

	sessionID := uuid.NewString()
	if len(os.Args) > 1 {
		sessionID = os.Args[1]
	}

	token, err := middleware.NewSessionToken(secret, sessionID, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s=%s\n", middleware.CookieName, token)
}
