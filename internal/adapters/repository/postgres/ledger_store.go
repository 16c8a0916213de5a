package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
)

type ledgerStore struct {
	db *sql.DB
}

// NewLedgerStore returns a write-behind projection of the ledger on
// postgres. Each Commit lands one operation's effects in a single
// transaction; Load rebuilds the snapshot for boot-time replay.
func NewLedgerStore(db *sql.DB) ports.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

func (s *ledgerStore) Commit(ctx context.Context, cs ports.Changeset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if cs.Poll != nil {
		query := `
			INSERT INTO polls (id, image, title, description, director, starts_at, ends_at, created_at, vote_count, contestant_count, deleted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				image = EXCLUDED.image,
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				starts_at = EXCLUDED.starts_at,
				ends_at = EXCLUDED.ends_at,
				vote_count = EXCLUDED.vote_count,
				contestant_count = EXCLUDED.contestant_count,
				deleted = EXCLUDED.deleted
		`
		p := cs.Poll
		if _, err := tx.ExecContext(ctx, query, p.ID, p.Image, p.Title, p.Description, p.Director,
			p.StartsAt, p.EndsAt, p.CreatedAt, p.VoteCount, p.ContestantCount, p.Deleted); err != nil {
			return fmt.Errorf("failed to upsert poll: %w", err)
		}
	}

	if cs.Contestant != nil {
		query := `
			INSERT INTO contestants (poll_id, id, image, name, account, votes, removed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (poll_id, id) DO UPDATE SET
				image = EXCLUDED.image,
				name = EXCLUDED.name,
				votes = EXCLUDED.votes,
				removed = EXCLUDED.removed
		`
		c := cs.Contestant
		if _, err := tx.ExecContext(ctx, query, c.PollID, c.ID, c.Image, c.Name, c.Account, c.Votes, c.Removed); err != nil {
			return fmt.Errorf("failed to upsert contestant: %w", err)
		}
	}

	if cs.Receipt != nil {
		query := `
			INSERT INTO vote_receipts (poll_id, address, cast_at)
			VALUES ($1, $2, $3)
		`
		r := cs.Receipt
		if _, err := tx.ExecContext(ctx, query, r.PollID, r.Address, r.CastAt); err != nil {
			return fmt.Errorf("failed to insert vote receipt: %w", err)
		}
	}

	if cs.Event != nil {
		query := `
			INSERT INTO ledger_events (seq, id, kind, poll_id, contestant_id, account, image, name, emitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		ev := cs.Event
		if _, err := tx.ExecContext(ctx, query, ev.Seq, ev.ID, string(ev.Kind), ev.PollID,
			ev.ContestantID, ev.Account, ev.Image, ev.Name, ev.EmittedAt); err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *ledgerStore) Load(ctx context.Context) (*ports.Snapshot, error) {
	snap := &ports.Snapshot{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image, title, description, director, starts_at, ends_at, created_at, vote_count, contestant_count, deleted
		FROM polls ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load polls: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Poll
		if err := rows.Scan(&p.ID, &p.Image, &p.Title, &p.Description, &p.Director,
			&p.StartsAt, &p.EndsAt, &p.CreatedAt, &p.VoteCount, &p.ContestantCount, &p.Deleted); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		snap.Polls = append(snap.Polls, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, id, image, name, account, votes, removed
		FROM contestants ORDER BY poll_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load contestants: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var c domain.Contestant
		if err := crows.Scan(&c.PollID, &c.ID, &c.Image, &c.Name, &c.Account, &c.Votes, &c.Removed); err != nil {
			return nil, fmt.Errorf("failed to scan contestant: %w", err)
		}
		snap.Contestants = append(snap.Contestants, &c)
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contestants: %w", err)
	}

	rrows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, address, cast_at FROM vote_receipts ORDER BY poll_id, address
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load vote receipts: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var r domain.VoteReceipt
		if err := rrows.Scan(&r.PollID, &r.Address, &r.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote receipt: %w", err)
		}
		snap.Receipts = append(snap.Receipts, &r)
	}
	if err := rrows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote receipts: %w", err)
	}

	erows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, kind, poll_id, contestant_id, account, image, name, emitted_at
		FROM ledger_events ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer erows.Close()
	for erows.Next() {
		var ev domain.Event
		var kind string
		if err := erows.Scan(&ev.Seq, &ev.ID, &kind, &ev.PollID, &ev.ContestantID,
			&ev.Account, &ev.Image, &ev.Name, &ev.EmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Kind = domain.EventKind(kind)
		snap.Events = append(snap.Events, &ev)
	}
	if err := erows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return snap, nil
}
