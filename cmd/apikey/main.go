package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"lumina/internal/infra"
	"lumina/internal/infra/credentials"
	"lumina/internal/providers/genai"
)

func main() {
	var (
		keyFlag  string
		skipFlag bool
	)
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (fallbacks to GEMINI_API_KEY)")
	flag.BoolVar(&skipFlag, "skip-validation", false, "store the key without probing the API")
	flag.Parse()

	_ = godotenv.Load()

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Gemini API key is required via -key or GEMINI_API_KEY")
		os.Exit(1)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	logger := infra.NewLogger("cli").With().Str("cmd", "apikey").Logger()

	if !skipFlag {
		client, err := genai.NewClient(genai.Options{
			Credentials: genai.StaticCredential(key),
			Logger:      &logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build client: %v\n", err)
			os.Exit(1)
		}
		probeCtx, cancelProbe := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelProbe()
		if !client.ValidateKey(probeCtx, key) {
			fmt.Fprintln(os.Stderr, "key rejected by the generation service")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := credentials.NewStore(infra.NewSQLRunner(pool, logger), "")

	execCtx, cancelExec := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelExec()
	if err := store.SetAPIKey(execCtx, key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist api key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Gemini API key stored successfully")
}
