package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS participants (
	id            INTEGER PRIMARY KEY,
	seq           INTEGER NOT NULL,
	handle        TEXT NOT NULL DEFAULT '',
	display_name  TEXT NOT NULL DEFAULT '',
	address       TEXT NOT NULL DEFAULT '',
	gift_proof    TEXT,
	recipient_id  INTEGER,
	santa_id      INTEGER,
	is_active     INTEGER NOT NULL DEFAULT 1,
	registered_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_participants_seq ON participants (seq);
CREATE INDEX IF NOT EXISTS idx_participants_recipient ON participants (recipient_id);
CREATE INDEX IF NOT EXISTS idx_participants_santa ON participants (santa_id);

CREATE TABLE IF NOT EXISTS draw_records (
	draw_id      TEXT NOT NULL,
	santa_id     INTEGER NOT NULL,
	recipient_id INTEGER NOT NULL,
	drawn_at     INTEGER NOT NULL,
	PRIMARY KEY (draw_id, santa_id, recipient_id)
);
`

const participantColumns = `id, handle, display_name, address, gift_proof, recipient_id, santa_id, is_active, registered_at`

// SQLiteParticipantRepository persists participants in a single SQLite file.
type SQLiteParticipantRepository struct {
	sqlDB *sql.DB
	clock clockwork.Clock
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens (and creates when missing) the store at path. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string, clock clockwork.Clock) (*SQLiteParticipantRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &SQLiteParticipantRepository{sqlDB: sqlDB, clock: clock}, nil
}

func (r *SQLiteParticipantRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

func (r *SQLiteParticipantRepository) Upsert(ctx context.Context, id int64, handle, displayName string, policy domain.RejoinPolicy) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reset := ""
	if policy == domain.RejoinReset {
		reset = `, address = '', gift_proof = NULL`
	}

	_, err := r.sqlDB.ExecContext(ctx, `
		INSERT INTO participants (id, seq, handle, display_name, is_active, registered_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM participants), ?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET
			handle = excluded.handle,
			display_name = excluded.display_name`+reset,
		id, handle, displayName, toMillis(r.clock.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert participant %d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteParticipantRepository) SetAddress(ctx context.Context, id int64, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.sqlDB.ExecContext(ctx, `UPDATE participants SET address = ? WHERE id = ?`, address, id); err != nil {
		return fmt.Errorf("set address of %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteParticipantRepository) SetGiftProof(ctx context.Context, id int64, proof domain.GiftProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(proof)
	if err != nil {
		return fmt.Errorf("encode gift proof: %w", err)
	}
	if _, err := r.sqlDB.ExecContext(ctx, `UPDATE participants SET gift_proof = ? WHERE id = ?`, string(raw), id); err != nil {
		return fmt.Errorf("set gift proof of %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := r.sqlDB.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = ?`, id)
	return scanParticipant(row)
}

func (r *SQLiteParticipantRepository) ListActive(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.sqlDB.QueryContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE is_active = 1 ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var result []*domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return result, nil
}

func (r *SQLiteParticipantRepository) GetRecipientOf(ctx context.Context, santaID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := r.sqlDB.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE santa_id = ?`, santaID)
	return scanParticipant(row)
}

func (r *SQLiteParticipantRepository) GetSantaOf(ctx context.Context, recipientID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row := r.sqlDB.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE recipient_id = ?`, recipientID)
	return scanParticipant(row)
}

func (r *SQLiteParticipantRepository) HasCompletedDraw(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var exists int
	if err := r.sqlDB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM draw_records)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check draw records: %w", err)
	}
	return exists == 1, nil
}

func (r *SQLiteParticipantRepository) ReplaceAssignments(ctx context.Context, records []domain.DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := r.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin draw commit: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback draw commit: %v", cause, rollbackErr)
		}
		return cause
	}

	if _, err := tx.ExecContext(ctx, `UPDATE participants SET recipient_id = NULL, santa_id = NULL`); err != nil {
		return rollbackWith(fmt.Errorf("clear assignments: %w", err))
	}

	for _, rec := range records {
		if err := updateOne(ctx, tx, `UPDATE participants SET recipient_id = ? WHERE id = ?`, rec.RecipientID, rec.SantaID); err != nil {
			return rollbackWith(err)
		}
		if err := updateOne(ctx, tx, `UPDATE participants SET santa_id = ? WHERE id = ?`, rec.SantaID, rec.RecipientID); err != nil {
			return rollbackWith(err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO draw_records (draw_id, santa_id, recipient_id, drawn_at) VALUES (?, ?, ?, ?)`,
			rec.DrawID.String(), rec.SantaID, rec.RecipientID, toMillis(rec.DrawnAt),
		)
		if err != nil {
			return rollbackWith(fmt.Errorf("append draw record: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draw: %w", err)
	}
	return nil
}

func (r *SQLiteParticipantRepository) ListDrawRecords(ctx context.Context) ([]domain.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.sqlDB.QueryContext(ctx, `SELECT draw_id, santa_id, recipient_id, drawn_at FROM draw_records ORDER BY drawn_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list draw records: %w", err)
	}
	defer rows.Close()

	var result []domain.DrawRecord
	for rows.Next() {
		var (
			rawID   string
			rec     domain.DrawRecord
			drawnAt int64
		)
		if err := rows.Scan(&rawID, &rec.SantaID, &rec.RecipientID, &drawnAt); err != nil {
			return nil, fmt.Errorf("scan draw record: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse draw id %q: %w", rawID, err)
		}
		rec.DrawID = id
		rec.DrawnAt = fromMillis(drawnAt)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate draw records: %w", err)
	}
	return result, nil
}

func updateOne(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write assignment: %w", err)
	}
	if n == 0 {
		return ErrInvalidAssignment
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*domain.Participant, error) {
	var (
		p            domain.Participant
		giftProof    sql.NullString
		recipientID  sql.NullInt64
		santaID      sql.NullInt64
		active       int
		registeredAt int64
	)
	err := row.Scan(&p.ID, &p.Handle, &p.DisplayName, &p.Address, &giftProof, &recipientID, &santaID, &active, &registeredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("scan participant: %w", err)
	}

	p.Active = active == 1
	p.RegisteredAt = fromMillis(registeredAt)
	if recipientID.Valid {
		id := recipientID.Int64
		p.RecipientID = &id
	}
	if santaID.Valid {
		id := santaID.Int64
		p.SantaID = &id
	}
	if giftProof.Valid && giftProof.String != "" {
		var proof domain.GiftProof
		if err := json.Unmarshal([]byte(giftProof.String), &proof); err != nil {
			return nil, fmt.Errorf("decode gift proof of %d: %w", p.ID, err)
		}
		p.GiftProof = &proof
	}
	return &p, nil
}
