package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"humanize-ai/api/internal/llm/types"
	"humanize-ai/api/internal/session"
)

const schema = `
create table if not exists web_sessions (
	id               text primary key,
	humanized_output text not null default '',
	detection_score  double precision,
	detection_label  text,
	updated_at       timestamptz not null default now()
)`

// SessionRepo is a session.Store backed by Postgres. One row per session;
// every Put overwrites the whole row.
type SessionRepo struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSessionRepo(db *sql.DB, ttl time.Duration) *SessionRepo {
	return &SessionRepo{DB: db, TTL: ttl}
}

func (r *SessionRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// Get returns the zero State for unknown rows and for rows idle longer than
// TTL. A live row has its idle clock reset.
func (r *SessionRepo) Get(ctx context.Context, id string) (session.State, error) {
	const q = `update web_sessions
	           set updated_at=now()
	           where id=$1 and updated_at >= $2
	           returning humanized_output, detection_score, detection_label`
	st, err := scanState(r.DB.QueryRowContext(ctx, q, id, r.cutoff()))
	if errors.Is(err, sql.ErrNoRows) {
		return session.State{}, nil
	}
	return st, err
}

func (r *SessionRepo) Put(ctx context.Context, id string, st session.State) error {
	return r.write(ctx, r.DB, id, st)
}

// Update runs fn against the row under a row lock, so two requests in the
// same session serialize instead of overwriting each other's slot.
func (r *SessionRepo) Update(ctx context.Context, id string, fn func(session.State) session.State) (session.State, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return session.State{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// make sure a row exists to lock
	if _, err := tx.ExecContext(ctx, `insert into web_sessions(id) values ($1) on conflict (id) do nothing`, id); err != nil {
		return session.State{}, err
	}
	const q = `select humanized_output, detection_score, detection_label, updated_at >= $2
	           from web_sessions
	           where id=$1
	           for update`
	var (
		out   string
		score sql.NullFloat64
		label sql.NullString
		live  bool
	)
	if err := tx.QueryRowContext(ctx, q, id, r.cutoff()).Scan(&out, &score, &label, &live); err != nil {
		return session.State{}, err
	}
	cur := session.State{}
	if live {
		cur = toState(out, score, label)
	}

	next := fn(cur)
	if err := r.write(ctx, tx, id, next); err != nil {
		return session.State{}, err
	}
	if err := tx.Commit(); err != nil {
		return session.State{}, err
	}
	return next, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SessionRepo) write(ctx context.Context, db execer, id string, st session.State) error {
	var (
		score sql.NullFloat64
		label sql.NullString
	)
	if st.Detection != nil {
		score = sql.NullFloat64{Float64: st.Detection.Score, Valid: true}
		label = sql.NullString{String: st.Detection.Label, Valid: true}
	}
	const q = `
insert into web_sessions(id, humanized_output, detection_score, detection_label, updated_at)
values ($1,$2,$3,$4,now())
on conflict (id)
do update set humanized_output=excluded.humanized_output,
              detection_score=excluded.detection_score,
              detection_label=excluded.detection_label,
              updated_at=now()`
	_, err := db.ExecContext(ctx, q, id, st.HumanizedOutput, score, label)
	return err
}

// cutoff is the oldest updated_at still considered live.
func (r *SessionRepo) cutoff() time.Time {
	if r.TTL <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-r.TTL)
}

func scanState(row *sql.Row) (session.State, error) {
	var (
		out   string
		score sql.NullFloat64
		label sql.NullString
	)
	if err := row.Scan(&out, &score, &label); err != nil {
		return session.State{}, err
	}
	return toState(out, score, label), nil
}

func toState(out string, score sql.NullFloat64, label sql.NullString) session.State {
	st := session.State{HumanizedOutput: out}
	if score.Valid && label.Valid {
		st = st.WithDetection(&types.DetectResult{Score: score.Float64, Label: label.String})
	}
	return st
}

// Sweep deletes rows idle longer than TTL.
func (r *SessionRepo) Sweep(ctx context.Context) (int, error) {
	if r.TTL <= 0 {
		return 0, nil
	}
	res, err := r.DB.ExecContext(ctx, `delete from web_sessions where updated_at < $1`, time.Now().Add(-r.TTL))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

var _ session.Store = (*SessionRepo)(nil)
