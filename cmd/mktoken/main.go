package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"
)

// Mints a local access token for development and testing against a
// running instance. Production tokens come from the identity provider.
func main() {
	userID := flag.String("user", "dev", "user id to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	token, err := service.IssueToken(cfg.Auth.JWTSecret, *userID, *ttl)
	if err != nil {
		fmt.Printf("Failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
