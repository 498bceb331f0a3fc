package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/ECABBIKE/TheHUB-sub012/config"
	"github.com/ECABBIKE/TheHUB-sub012/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Club)(nil),
		(*models.Rider)(nil),
		(*models.Class)(nil),
		(*models.PointScale)(nil),
		(*models.PointScaleValue)(nil),
		(*models.QualificationPointTemplate)(nil),
		(*models.Series)(nil),
		(*models.Event)(nil),
		(*models.SeriesEvent)(nil),
		(*models.Result)(nil),
		(*models.EventPricingRule)(nil),
		(*models.PaymentRecipient)(nil),
		(*models.PromotorEvent)(nil),
		(*models.PromotorSeries)(nil),
		(*models.Order)(nil),
		(*models.OrderItem)(nil),
		(*models.SeriesRegistration)(nil),
		(*models.Receipt)(nil),
		(*models.ClubRiderPoints)(nil),
		(*models.ClubEventPoints)(nil),
		(*models.ClubStanding)(nil),
		(*models.SeriesResult)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'club_event_points_no_dupes') THEN ALTER TABLE club_event_points ADD CONSTRAINT club_event_points_no_dupes UNIQUE (club_id, event_id, series_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'club_standings_no_dupes') THEN ALTER TABLE club_standings_cache ADD CONSTRAINT club_standings_no_dupes UNIQUE (club_id, series_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'club_rider_points_no_dupes') THEN ALTER TABLE club_rider_points ADD CONSTRAINT club_rider_points_no_dupes UNIQUE (club_id, event_id, series_id, rider_id, class_id); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
