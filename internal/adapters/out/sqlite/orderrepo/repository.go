// Package orderrepo persists production orders in an embedded SQLite file
// through the pure-Go modernc.org/sqlite driver.
package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/errs"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS production_orders (
    id               TEXT    PRIMARY KEY,
    title            TEXT    NOT NULL,
    author           TEXT    NOT NULL,
    page_count       INTEGER NOT NULL,
    cover_kind       TEXT    NOT NULL,
    finish_kind      TEXT    NOT NULL,
    quantity         INTEGER NOT NULL,
    estimated_cost   TEXT    NOT NULL,
    state            TEXT    NOT NULL,
    created_at       INTEGER NOT NULL,
    orchestrated_at  INTEGER,
    version          INTEGER NOT NULL,
    rejection_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_production_orders_state_created ON production_orders(state, created_at);
`

const selectColumns = `id, title, author, page_count, cover_kind, finish_kind, quantity,
       estimated_cost, state, created_at, orchestrated_at, version, rejection_reason`

// Repository implements ports.OrderRepository and ports.PendingOrderFinder.
// Timestamps are stored as Unix microseconds so range scans compare numerically.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := orderrepo.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.NewValueIsRequiredError("path")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	row := fromDomain(o)
	if !o.IsPersisted() {
		row.id = kernel.NewUUID().String()
		row.version = 1
		if err := r.insert(ctx, row); err != nil {
			return nil, errs.NewPersistenceErrorWithCause("insert order", err)
		}
		return row.restore()
	}

	row.version = o.Version() + 1
	res, err := r.db.ExecContext(ctx,
		`UPDATE production_orders
		    SET state = ?, orchestrated_at = ?, rejection_reason = ?, version = ?
		  WHERE id = ? AND version = ?`,
		row.state, row.orchestratedAt, row.rejectionReason, row.version,
		row.id, o.Version(),
	)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("update order", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("update order", err)
	}
	if affected == 0 {
		return nil, r.missedUpdate(ctx, o)
	}

	return row.restore()
}

func (r *Repository) insert(ctx context.Context, row orderRow) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO production_orders (`+selectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.id, row.title, row.author, row.pageCount, row.coverKind, row.finishKind, row.quantity,
		row.estimatedCost, row.state, row.createdAt, row.orchestratedAt, row.version, row.rejectionReason,
	)
	return err
}

func (r *Repository) missedUpdate(ctx context.Context, o *order.ProductionOrder) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM production_orders WHERE id = ?)`, o.ID().String(),
	).Scan(&exists)
	if err != nil {
		return errs.NewPersistenceErrorWithCause("update order", err)
	}
	if !exists {
		return errs.NewObjectNotFoundError("id", o.ID().String())
	}
	return errs.NewConcurrencyConflictError("order", o.ID().String(), o.Version())
}

func (r *Repository) FindByID(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	row, err := scanRow(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM production_orders WHERE id = ?`, id.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("id", id.String())
	}
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("find order", err)
	}

	return row.restore()
}

func (r *Repository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM production_orders WHERE id = ?`, id.String())
	if err != nil {
		return errs.NewPersistenceErrorWithCause("delete order", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errs.NewPersistenceErrorWithCause("delete order", err)
	}
	if affected == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}
	return nil
}

func (r *Repository) ListPendingCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.ProductionOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+`
		   FROM production_orders
		  WHERE state = ? AND created_at < ?
		  ORDER BY created_at
		  LIMIT ?`,
		order.Pending.String(), cutoff.UTC().UnixMicro(), limit,
	)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list pending orders", err)
	}
	defer rows.Close()

	orders := make([]*order.ProductionOrder, 0)
	for rows.Next() {
		row, scanErr := scanRow(rows)
		if scanErr != nil {
			return nil, errs.NewPersistenceErrorWithCause("list pending orders", scanErr)
		}
		o, restoreErr := row.restore()
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list pending orders", err)
	}

	return orders, nil
}

type orderRow struct {
	id              string
	title           string
	author          string
	pageCount       int
	coverKind       string
	finishKind      string
	quantity        int
	estimatedCost   decimal.Decimal
	state           string
	createdAt       int64
	orchestratedAt  sql.NullInt64
	version         int64
	rejectionReason sql.NullString
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (orderRow, error) {
	var row orderRow
	err := s.Scan(
		&row.id, &row.title, &row.author, &row.pageCount, &row.coverKind, &row.finishKind, &row.quantity,
		&row.estimatedCost, &row.state, &row.createdAt, &row.orchestratedAt, &row.version, &row.rejectionReason,
	)
	return row, err
}

func fromDomain(o *order.ProductionOrder) orderRow {
	spec := o.Specification()

	row := orderRow{
		id:            o.ID().String(),
		title:         spec.Title(),
		author:        spec.Author(),
		pageCount:     spec.PageCount(),
		coverKind:     spec.CoverKind().String(),
		finishKind:    spec.FinishKind().String(),
		quantity:      spec.Quantity(),
		estimatedCost: spec.EstimatedCost(),
		state:         o.State().String(),
		createdAt:     o.CreatedAt().UnixMicro(),
		version:       o.Version(),
	}
	if at, ok := o.OrchestratedAt(); ok {
		row.orchestratedAt = sql.NullInt64{Int64: at.UnixMicro(), Valid: true}
	}
	if reason, ok := o.RejectionReason(); ok {
		row.rejectionReason = sql.NullString{String: reason, Valid: true}
	}
	return row
}

func (row orderRow) restore() (*order.ProductionOrder, error) {
	o, err := row.toDomain()
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("restore order "+row.id, err)
	}
	return o, nil
}

func (row orderRow) toDomain() (*order.ProductionOrder, error) {
	id, err := kernel.ParseUUID(row.id)
	if err != nil {
		return nil, err
	}
	cover, err := order.ParseCoverKind(row.coverKind)
	if err != nil {
		return nil, err
	}
	finish, err := order.ParseFinishKind(row.finishKind)
	if err != nil {
		return nil, err
	}
	spec, err := order.RestoreBookSpecification(
		row.title, row.author, row.pageCount, cover, finish, row.quantity, row.estimatedCost,
	)
	if err != nil {
		return nil, err
	}
	state, err := order.ParseState(row.state)
	if err != nil {
		return nil, err
	}

	var orchestratedAt *time.Time
	if row.orchestratedAt.Valid {
		at := time.UnixMicro(row.orchestratedAt.Int64).UTC()
		orchestratedAt = &at
	}
	var reason *string
	if row.rejectionReason.Valid {
		reason = &row.rejectionReason.String
	}

	return order.RestoreProductionOrder(
		id, spec, state, time.UnixMicro(row.createdAt).UTC(), orchestratedAt, reason, row.version,
	)
}
