// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/bangumi/internal/epg"
)

// Errors returned by the store.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrInvalidProgram  = errors.New("program has no usable start and end time")
	ErrInvalidChannel  = errors.New("channel needs an id, a name and a known type")
)

// SQLite implements epg.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ epg.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps PRAGMA foreign_keys in effect for every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// UpsertChannel inserts or replaces a channel.
func (s *SQLite) UpsertChannel(ctx context.Context, ch epg.Channel) error {
	if ch.ID == "" || ch.Name == "" || !ch.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, ch.ID)
	}
	query := `
		INSERT INTO channels (id, display_id, number, type, name, logo_url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_id = excluded.display_id,
			number     = excluded.number,
			type       = excluded.type,
			name       = excluded.name,
			logo_url   = excluded.logo_url,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		ch.ID, ch.DisplayID, ch.Number, strings.ToUpper(string(ch.Type)), ch.Name, ch.LogoURL,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting channel %s: %w", ch.ID, err)
	}
	return nil
}

// UpsertPrograms inserts or replaces programs in one transaction. Every entry
// must have parseable times; otherwise nothing is written.
func (s *SQLite) UpsertPrograms(ctx context.Context, programs []epg.RawProgram) error {
	if len(programs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO programs (
			id, channel_id, title, description, detail, genres,
			start_time, end_time, duration, start_unix, end_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel_id  = excluded.channel_id,
			title       = excluded.title,
			description = excluded.description,
			detail      = excluded.detail,
			genres      = excluded.genres,
			start_time  = excluded.start_time,
			end_time    = excluded.end_time,
			duration    = excluded.duration,
			start_unix  = excluded.start_unix,
			end_unix    = excluded.end_unix
	`)
	if err != nil {
		return fmt.Errorf("preparing program insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, raw := range programs {
		p, ok := epg.Parse(raw)
		if !ok || raw.ID == "" || raw.ChannelID == "" {
			return fmt.Errorf("%w: %q", ErrInvalidProgram, raw.ID)
		}
		detail, err := json.Marshal(nonNilDetail(raw.Detail))
		if err != nil {
			return fmt.Errorf("encoding detail of %s: %w", raw.ID, err)
		}
		genres, err := json.Marshal(nonNilGenres(raw.Genres))
		if err != nil {
			return fmt.Errorf("encoding genres of %s: %w", raw.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			raw.ID, raw.ChannelID, raw.Title, raw.Description, string(detail), string(genres),
			raw.StartTime, raw.EndTime, raw.Duration, p.Start.Unix(), p.End.Unix(),
		); err != nil {
			return fmt.Errorf("upserting program %s: %w", raw.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListChannels returns channels of the given type ordered by channel number.
// An empty type lists every channel.
func (s *SQLite) ListChannels(ctx context.Context, typ epg.BroadcastType) ([]epg.Channel, error) {
	query := `SELECT id, display_id, number, type, name, logo_url FROM channels`
	var args []any
	if typ != "" {
		query += ` WHERE type = ?`
		args = append(args, strings.ToUpper(string(typ)))
	}
	query += ` ORDER BY type, number, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying channels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var channels []epg.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating channels: %w", err)
	}
	return channels, nil
}

// GetChannel returns a channel by id, or ErrChannelNotFound.
func (s *SQLite) GetChannel(ctx context.Context, id string) (*epg.Channel, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, display_id, number, type, name, logo_url FROM channels WHERE id = ?`, id)
	ch, err := scanChannel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListPrograms returns raw programs of a channel overlapping [start, end),
// ordered by start time.
func (s *SQLite) ListPrograms(ctx context.Context, channelID string, start, end time.Time) ([]epg.RawProgram, error) {
	query := programColumns + `
		FROM programs p
		WHERE p.channel_id = ? AND p.start_unix < ? AND p.end_unix > ?
		ORDER BY p.start_unix, p.id
	`
	rows, err := s.db.QueryContext(ctx, query, channelID, end.Unix(), start.Unix())
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var programs []epg.RawProgram
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}
	return programs, nil
}

// FetchGuide returns every channel of typ with its programs overlapping
// [start, end). Channels without programs are included with an empty list.
func (s *SQLite) FetchGuide(ctx context.Context, typ epg.BroadcastType, start, end time.Time) ([]epg.ChannelPrograms, error) {
	channels, err := s.ListChannels(ctx, typ)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, nil
	}

	query := programColumns + `
		FROM programs p
		JOIN channels c ON c.id = p.channel_id
		WHERE c.type = ? AND p.start_unix < ? AND p.end_unix > ?
		ORDER BY p.channel_id, p.start_unix, p.id
	`
	rows, err := s.db.QueryContext(ctx, query, strings.ToUpper(string(typ)), end.Unix(), start.Unix())
	if err != nil {
		return nil, fmt.Errorf("querying guide: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byChannel := make(map[string][]epg.RawProgram, len(channels))
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		byChannel[p.ChannelID] = append(byChannel[p.ChannelID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guide: %w", err)
	}

	guide := make([]epg.ChannelPrograms, len(channels))
	for i, ch := range channels {
		guide[i] = epg.ChannelPrograms{Channel: ch, Programs: byChannel[ch.ID]}
	}
	return guide, nil
}

// AvailableTypes returns the broadcast types that have at least one channel,
// in tab order.
func (s *SQLite) AvailableTypes(ctx context.Context) ([]epg.BroadcastType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT type FROM channels`)
	if err != nil {
		return nil, fmt.Errorf("querying types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	present := make(map[epg.BroadcastType]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning type: %w", err)
		}
		present[epg.BroadcastType(t)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating types: %w", err)
	}

	var types []epg.BroadcastType
	for _, t := range epg.AllTypes() {
		if present[t] {
			types = append(types, t)
		}
	}
	return types, nil
}

// DeleteProgramsBefore removes programs that ended at or before t and
// returns how many were removed.
func (s *SQLite) DeleteProgramsBefore(ctx context.Context, t time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE end_unix <= ?`, t.Unix())
	if err != nil {
		return 0, fmt.Errorf("deleting old programs: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// CountPrograms returns the number of stored programs per channel id.
func (s *SQLite) CountPrograms(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT channel_id, COUNT(*) FROM programs GROUP BY channel_id`)
	if err != nil {
		return nil, fmt.Errorf("counting programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

const programColumns = `
	SELECT p.id, p.channel_id, p.title, p.description, p.detail, p.genres,
	       p.start_time, p.end_time, p.duration`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChannel(row scanner) (epg.Channel, error) {
	var (
		ch  epg.Channel
		typ string
	)
	if err := row.Scan(&ch.ID, &ch.DisplayID, &ch.Number, &typ, &ch.Name, &ch.LogoURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ch, err
		}
		return ch, fmt.Errorf("scanning channel: %w", err)
	}
	ch.Type = epg.BroadcastType(typ)
	return ch, nil
}

func scanProgram(row scanner) (epg.RawProgram, error) {
	var (
		p              epg.RawProgram
		detail, genres string
	)
	if err := row.Scan(&p.ID, &p.ChannelID, &p.Title, &p.Description, &detail, &genres,
		&p.StartTime, &p.EndTime, &p.Duration); err != nil {
		return p, fmt.Errorf("scanning program: %w", err)
	}
	if err := json.Unmarshal([]byte(detail), &p.Detail); err != nil {
		return p, fmt.Errorf("decoding detail of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(genres), &p.Genres); err != nil {
		return p, fmt.Errorf("decoding genres of %s: %w", p.ID, err)
	}
	if len(p.Detail) == 0 {
		p.Detail = nil
	}
	if len(p.Genres) == 0 {
		p.Genres = nil
	}
	return p, nil
}

func nonNilDetail(d map[string]string) map[string]string {
	if d == nil {
		return map[string]string{}
	}
	return d
}

func nonNilGenres(g []epg.Genre) []epg.Genre {
	if g == nil {
		return []epg.Genre{}
	}
	return g
}
