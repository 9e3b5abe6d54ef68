package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lukasito25/momentum-vita-sub001/internal/config"
	"github.com/lukasito25/momentum-vita-sub001/internal/db"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/achievements"
	"github.com/lukasito25/momentum-vita-sub001/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ddlStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id TEXT PRIMARY KEY,
		current_level INT NOT NULL DEFAULT 1,
		total_xp INT NOT NULL DEFAULT 0,
		current_streak INT NOT NULL DEFAULT 0,
		longest_streak INT NOT NULL DEFAULT 0,
		total_workouts_completed INT NOT NULL DEFAULT 0,
		achievements_unlocked TEXT[] NOT NULL DEFAULT '{}',
		current_program TEXT,
		current_week INT NOT NULL DEFAULT 1,
		completed_programs TEXT[] NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_gamification_stats (
		user_id TEXT PRIMARY KEY,
		current_streak INT NOT NULL DEFAULT 0,
		longest_streak INT NOT NULL DEFAULT 0,
		total_workouts INT NOT NULL DEFAULT 0,
		total_nutrition_goals_hit INT NOT NULL DEFAULT 0,
		last_workout_at TIMESTAMPTZ,
		week_start TIMESTAMPTZ NOT NULL,
		workouts_this_week INT NOT NULL DEFAULT 0,
		nutrition_goals_this_week INT NOT NULL DEFAULT 0,
		consistency_percentage INT NOT NULL DEFAULT 0,
		xp_earned_this_week INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS achievement_catalog (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		metric_type TEXT NOT NULL,
		target INT NOT NULL,
		xp_reward INT NOT NULL,
		rarity TEXT NOT NULL DEFAULT 'common',
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		program_id TEXT NOT NULL,
		week INT NOT NULL,
		day_name TEXT NOT NULL,
		phase TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		xp_earned INT NOT NULL DEFAULT 0,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		exercises JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS workout_sessions_user_status_idx
		ON workout_sessions (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS workout_sessions_user_started_idx
		ON workout_sessions (user_id, started_at DESC)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id TEXT PRIMARY KEY,
		timezone TEXT NOT NULL DEFAULT 'UTC',
		week_starts_monday BOOL NOT NULL DEFAULT TRUE,
		notifications_enabled BOOL NOT NULL DEFAULT TRUE,
		unit_system TEXT NOT NULL DEFAULT 'metric',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

var catalogSeed = []achievements.Achievement{
	{ID: "first-workout", Name: "First Step", Description: "Complete your first workout", Icon: "🏋️", MetricType: achievements.MetricWorkouts, Target: 1, XPReward: 50, Rarity: "common", SortOrder: 1},
	{ID: "workout-5", Name: "Getting Going", Description: "Complete 5 workouts", Icon: "💪", MetricType: achievements.MetricWorkouts, Target: 5, XPReward: 75, Rarity: "common", SortOrder: 2},
	{ID: "workout-20", Name: "Regular", Description: "Complete 20 workouts", Icon: "🎯", MetricType: achievements.MetricWorkouts, Target: 20, XPReward: 100, Rarity: "rare", SortOrder: 3},
	{ID: "workout-50", Name: "Dedicated", Description: "Complete 50 workouts", Icon: "🏆", MetricType: achievements.MetricWorkouts, Target: 50, XPReward: 200, Rarity: "epic", SortOrder: 4},
	{ID: "workout-100", Name: "Centurion", Description: "Complete 100 workouts", Icon: "👑", MetricType: achievements.MetricWorkouts, Target: 100, XPReward: 500, Rarity: "legendary", SortOrder: 5},
	{ID: "streak-3", Name: "Three in a Row", Description: "Train 3 days in a row", Icon: "🔥", MetricType: achievements.MetricStreak, Target: 3, XPReward: 75, Rarity: "common", SortOrder: 6},
	{ID: "streak-7", Name: "Full Week", Description: "Train 7 days in a row", Icon: "📅", MetricType: achievements.MetricStreak, Target: 7, XPReward: 150, Rarity: "rare", SortOrder: 7},
	{ID: "streak-14", Name: "Fortnight Fire", Description: "Train 14 days in a row", Icon: "⚡", MetricType: achievements.MetricStreak, Target: 14, XPReward: 250, Rarity: "epic", SortOrder: 8},
	{ID: "streak-30", Name: "Unstoppable", Description: "Train 30 days in a row", Icon: "🌟", MetricType: achievements.MetricStreak, Target: 30, XPReward: 500, Rarity: "legendary", SortOrder: 9},
	{ID: "nutrition-10", Name: "Mindful Eater", Description: "Hit 10 nutrition goals", Icon: "🥗", MetricType: achievements.MetricNutrition, Target: 10, XPReward: 75, Rarity: "common", SortOrder: 10},
	{ID: "nutrition-50", Name: "Fuel Master", Description: "Hit 50 nutrition goals", Icon: "🍎", MetricType: achievements.MetricNutrition, Target: 50, XPReward: 150, Rarity: "rare", SortOrder: 11},
	{ID: "nutrition-100", Name: "Nutrition Pro", Description: "Hit 100 nutrition goals", Icon: "🥇", MetricType: achievements.MetricNutrition, Target: 100, XPReward: 300, Rarity: "epic", SortOrder: 12},
	{ID: "consistency-80", Name: "Steady", Description: "Reach 80% weekly consistency", Icon: "📈", MetricType: achievements.MetricConsistency, Target: 80, XPReward: 100, Rarity: "rare", SortOrder: 13},
	{ID: "consistency-100", Name: "Perfect Week", Description: "Reach 100% weekly consistency", Icon: "💯", MetricType: achievements.MetricConsistency, Target: 100, XPReward: 200, Rarity: "epic", SortOrder: 14},
	{ID: "first-program", Name: "Graduate", Description: "Finish your first program", Icon: "🎓", MetricType: achievements.MetricProgramCompletion, Target: 1, XPReward: 300, Rarity: "rare", SortOrder: 15},
	{ID: "program-3", Name: "Program Collector", Description: "Finish 3 programs", Icon: "🏅", MetricType: achievements.MetricProgramCompletion, Target: 3, XPReward: 750, Rarity: "legendary", SortOrder: 16},
}

// creates the schema and seeds the achievement catalog
func main() {
	fmt.Println("starting db setup ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
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

	if err := createSchema(ctx, dbPool); err != nil {
		fmt.Printf("create schema failed: %s\n", err)
		os.Exit(1)
	}

	seeded, skipped, err := seedCatalog(ctx, dbPool)
	if err != nil {
		fmt.Printf("seed achievement catalog failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("\ndb setup completed, %d achievements seeded, %d already present\n", seeded, skipped)
}

func createSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	for _, stmt := range ddlStatements {
		if _, err := dbPool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, dbPool *pgxpool.Pool) (seeded, skipped int, err error) {
	for _, a := range catalogSeed {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO achievement_catalog
				(id, name, description, icon, metric_type, target, xp_reward, rarity, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.ID, a.Name, a.Description, a.Icon, a.MetricType, a.Target, a.XPReward, a.Rarity, a.SortOrder,
		)
		if err != nil {
			if pkg.IsUniqueViolationError(err) {
				skipped++
				continue
			}
			return seeded, skipped, err
		}
		seeded++
	}
	return seeded, skipped, nil
}
