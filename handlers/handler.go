package handlers

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ECABBIKE/TheHUB-sub012/economy"
	"github.com/ECABBIKE/TheHUB-sub012/points"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db       *bun.DB
	log      *zap.Logger
	JWTKey   []byte
	recalc   *points.Recalculator
	scales   *points.ScaleResolver
	splitter *economy.Splitter
	vatRate  float64
}

// New creates a Handler with the given database connection, JWT signing
// key, and economy settings.
func New(db *bun.DB, log *zap.Logger, jwtKey []byte, policy economy.SplitPolicy, vatRate float64) *Handler {
	return &Handler{
		db:       db,
		log:      log,
		JWTKey:   jwtKey,
		recalc:   points.NewRecalculator(db, log),
		scales:   points.NewScaleResolver(db, log),
		splitter: economy.NewSplitter(db, log, policy),
		vatRate:  vatRate,
	}
}
