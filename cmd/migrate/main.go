// cmd/migrate/main.go
// Migrates data from the legacy MySQL installation into the local
// PostgreSQL database. The legacy system stored results, clubs, and
// orders in MySQL; derived tables are not copied – run a series
// recalculation after migrating.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/thehub?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/ECABBIKE/TheHUB-sub012/config"
	bundb "github.com/ECABBIKE/TheHUB-sub012/db"
	"github.com/ECABBIKE/TheHUB-sub012/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/thehub?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"clubs", func() (int, error) { return migrateClubs(ctx, myDB, pgDB) }},
		{"riders", func() (int, error) { return migrateRiders(ctx, myDB, pgDB) }},
		{"classes", func() (int, error) { return migrateClasses(ctx, myDB, pgDB) }},
		{"point_scales", func() (int, error) { return migrateScales(ctx, myDB, pgDB) }},
		{"series", func() (int, error) { return migrateSeries(ctx, myDB, pgDB) }},
		{"events", func() (int, error) { return migrateEvents(ctx, myDB, pgDB) }},
		{"series_events", func() (int, error) { return migrateSeriesEvents(ctx, myDB, pgDB) }},
		{"results", func() (int, error) { return migrateResults(ctx, myDB, pgDB) }},
	}

	for _, step := range steps {
		n, err := step.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", step.name, err)
		}
		log.Printf("migrated %d %s rows", n, step.name)
	}

	log.Println("done – run POST /api/recalc/series per series to rebuild derived tables")
}

func migrateClubs(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT id, name, city FROM clubs`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Club
	total := 0
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(&c.ClubID, &c.Name, &c.City); err != nil {
			return total, err
		}
		batch = append(batch, c)
		if len(batch) >= batchSize {
			n, err := flush(ctx, pg, &batch, "(club_id) DO NOTHING")
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	n, err := flush(ctx, pg, &batch, "(club_id) DO NOTHING")
	return total + n, errorsFirst(err, rows.Err())
}

func migrateRiders(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT id, name, club_id, birth_year, license_no FROM riders`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Rider
	total := 0
	for rows.Next() {
		var r models.Rider
		if err := rows.Scan(&r.RiderID, &r.Name, &r.ClubID, &r.BirthYear, &r.LicenseNo); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			n, err := flush(ctx, pg, &batch, "(rider_id) DO NOTHING")
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	n, err := flush(ctx, pg, &batch, "(rider_id) DO NOTHING")
	return total + n, errorsFirst(err, rows.Err())
}

func migrateClasses(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT id, name, series_eligible, awards_points FROM classes`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ClassID, &c.Name, &c.SeriesEligible, &c.AwardsPoints); err != nil {
			return 0, err
		}
		batch = append(batch, c)
	}
	n, err := flush(ctx, pg, &batch, "(class_id) DO NOTHING")
	return n, errorsFirst(err, rows.Err())
}

func migrateScales(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT id, name, is_default FROM point_scales`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var scales []models.PointScale
	for rows.Next() {
		var s models.PointScale
		if err := rows.Scan(&s.ScaleID, &s.Name, &s.IsDefault); err != nil {
			return 0, err
		}
		scales = append(scales, s)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	n, err := flush(ctx, pg, &scales, "(scale_id) DO NOTHING")
	if err != nil {
		return n, err
	}

	vrows, err := my.QueryContext(ctx, `SELECT scale_id, position, points FROM point_scale_values`)
	if err != nil {
		return n, err
	}
	defer vrows.Close()

	var values []models.PointScaleValue
	for vrows.Next() {
		var v models.PointScaleValue
		if err := vrows.Scan(&v.ScaleID, &v.Position, &v.Points); err != nil {
			return n, err
		}
		values = append(values, v)
	}
	vn, err := flush(ctx, pg, &values, "(scale_id, position) DO NOTHING")
	return n + vn, errorsFirst(err, vrows.Err())
}

func migrateSeries(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT id, name, year, template_id FROM series`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Series
	for rows.Next() {
		var s models.Series
		if err := rows.Scan(&s.SeriesID, &s.Name, &s.Year, &s.TemplateID); err != nil {
			return 0, err
		}
		batch = append(batch, s)
	}
	n, err := flush(ctx, pg, &batch, "(series_id) DO NOTHING")
	return n, errorsFirst(err, rows.Err())
}

func migrateEvents(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx,
		`SELECT id, name, DATE_FORMAT(date, '%Y-%m-%d'), location, series_id, scale_id, recipient_id FROM events`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.EventID, &e.Name, &e.Date, &e.Location, &e.SeriesID, &e.ScaleID, &e.RecipientID); err != nil {
			return 0, err
		}
		batch = append(batch, e)
	}
	n, err := flush(ctx, pg, &batch, "(event_id) DO NOTHING")
	return n, errorsFirst(err, rows.Err())
}

func migrateSeriesEvents(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx, `SELECT series_id, event_id, sort_order FROM series_events`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.SeriesEvent
	for rows.Next() {
		var se models.SeriesEvent
		if err := rows.Scan(&se.SeriesID, &se.EventID, &se.SortOrder); err != nil {
			return 0, err
		}
		batch = append(batch, se)
	}
	n, err := flush(ctx, pg, &batch, "(series_id, event_id) DO NOTHING")
	return n, errorsFirst(err, rows.Err())
}

func migrateResults(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	rows, err := my.QueryContext(ctx,
		`SELECT event_id, rider_id, class_id, position, status, points FROM results`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Result
	total := 0
	for rows.Next() {
		var r models.Result
		if err := rows.Scan(&r.EventID, &r.RiderID, &r.ClassID, &r.Position, &r.Status, &r.Points); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			n, err := flush(ctx, pg, &batch, "(event_id, rider_id, class_id) DO NOTHING")
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	n, err := flush(ctx, pg, &batch, "(event_id, rider_id, class_id) DO NOTHING")
	return total + n, errorsFirst(err, rows.Err())
}

// flush bulk-inserts the batch with the given ON CONFLICT clause and
// resets it. A nil/empty batch is a no-op.
func flush[T any](ctx context.Context, pg *bun.DB, batch *[]T, conflict string) (int, error) {
	if len(*batch) == 0 {
		return 0, nil
	}
	n := len(*batch)
	_, err := pg.NewInsert().Model(batch).On("CONFLICT " + conflict).Exec(ctx)
	*batch = (*batch)[:0]
	if err != nil {
		return 0, err
	}
	return n, nil
}

func errorsFirst(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
