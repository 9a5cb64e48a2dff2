package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/pmxbuilder/internal/builder"
	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, run_id, started_at, finished_at, inputs, channel_strips, loopers,
	group_buses, output_stages, links_created, links_skipped, links_failed, error`

func scanRun(scanner interface{ Scan(...any) error }) (*runModel, error) {
	var m runModel
	err := scanner.Scan(
		&m.ID, &m.RunID, &m.StartedAt, &m.FinishedAt, &m.Inputs, &m.ChannelStrips, &m.Loopers,
		&m.GroupBuses, &m.OutputStages, &m.LinksCreated, &m.LinksSkipped, &m.LinksFailed, &m.Error,
	)
	return &m, err
}

// Save stores the totals of report and, when withLinks is set, every link
// record. Everything is written in one transaction.
func (db *DB) Save(ctx context.Context, report *builder.Report, withLinks bool) error {
	m := toRunModel(report)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning journal transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
			run_id, started_at, finished_at, inputs, channel_strips, loopers,
			group_buses, output_stages, links_created, links_skipped, links_failed, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.StartedAt, m.FinishedAt, m.Inputs, m.ChannelStrips, m.Loopers,
		m.GroupBuses, m.OutputStages, m.LinksCreated, m.LinksSkipped, m.LinksFailed, m.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if withLinks {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_links (
				run_id, seq, stage, subject, output_node, output_port, input_node, input_port, outcome, reason
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing link insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range report.Links() {
			var reason *string
			if rec.Reason != "" {
				reason = &rec.Reason
			}
			_, err := stmt.ExecContext(ctx,
				m.RunID, i, string(rec.Stage), rec.Subject,
				rec.Link.OutputNode, rec.Link.OutputPort, rec.Link.InputNode, rec.Link.InputPort,
				string(rec.Outcome), reason,
			)
			if err != nil {
				return fmt.Errorf("failed to insert link %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing journal transaction: %w", err)
	}
	log.Debug(log.CatJournal, "Run saved", "run_id", m.RunID, "links", withLinks)
	return nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (db *DB) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, m.toRun())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by id.
func (db *DB) Get(ctx context.Context, runID string) (Run, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	m, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	return m.toRun(), nil
}

// Links returns the link records stored for a run in their original order.
func (db *DB) Links(ctx context.Context, runID string) ([]Link, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT seq, stage, subject, output_node, output_port, input_node, input_port, outcome, reason
		FROM run_links WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var (
			l       Link
			stage   string
			outcome string
			reason  sql.NullString
			link    pmx.Link
		)
		if err := rows.Scan(&l.Seq, &stage, &l.Subject, &link.OutputNode, &link.OutputPort,
			&link.InputNode, &link.InputPort, &outcome, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		l.Stage = builder.StageName(stage)
		l.Outcome = builder.Outcome(outcome)
		l.Link = link
		l.Reason = reason.String
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (db *DB) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}
