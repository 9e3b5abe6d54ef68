package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/lukasito25/momentum-vita-sub001/internal/config"
	"github.com/lukasito25/momentum-vita-sub001/internal/db"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/stats"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// finds users whose stats still point at a previous week and rolls them
// over through the service API, so the weekly block resets exactly the
// same way it does on a live request
func main() {
	fmt.Println("starting weekly stats rollover ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	endpoint := flag.String("endpoint", "http://localhost:8080", "base URL of the momentum service")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	appSecret := os.Getenv("MOMENTUM_APP_SECRET")
	if appSecret == "" {
		fmt.Println("MOMENTUM_APP_SECRET not set")
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("MOMENTUM_POSTGRES_PASSWORD"),
	})
	if err != nil {
		fmt.Printf("new db pool: %s\n", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	userIDs, err := staleWeekUsers(ctx, dbPool, stats.WeekStart(time.Now()))
	if err != nil {
		fmt.Printf("get stale week users: %s\n", err)
		os.Exit(1)
	}
	if len(userIDs) == 0 {
		fmt.Println("\nall weekly stats are current, nothing to do")
		return
	}
	fmt.Printf("%d users with a stale week\n", len(userIDs))

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	var failed int
	for _, userID := range userIDs {
		if err := resetUserWeek(ctx, httpClient, *endpoint, appSecret, userID); err != nil {
			fmt.Printf("reset week for %s: %s\n", userID, err)
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\nweekly rollover completed with %d failures\n", failed)
		os.Exit(1)
	}
	fmt.Printf("\nweekly rollover completed, %d users reset\n", len(userIDs))
}

func staleWeekUsers(ctx context.Context, dbPool *pgxpool.Pool, currentWeek time.Time) ([]string, error) {
	rows, err := dbPool.Query(ctx,
		`SELECT user_id FROM user_gamification_stats WHERE week_start < $1`,
		currentWeek,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

func resetUserWeek(ctx context.Context, client *http.Client, endpoint, appSecret, userID string) error {
	url := fmt.Sprintf("%s/users/%s/stats/weekly-reset", endpoint, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-MOMENTUM-TOKEN", appSecret)
	req.Header.Set("User-Agent", "momentum-tools/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}
