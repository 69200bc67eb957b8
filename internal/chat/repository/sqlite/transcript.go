package sqlite

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"groq-chatbot/internal/chat/repository"
)

func (r *implRepository) SaveTranscript(ctx context.Context, opt repository.SaveTranscriptOptions) (repository.Transcript, error) {
	now := time.Now()
	t := repository.Transcript{
		ID:           ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		SessionID:    opt.SessionID,
		Kind:         opt.Kind,
		Status:       opt.Status,
		Question:     opt.Question,
		DocumentName: opt.DocumentName,
		Temperature:  opt.Temperature,
		Model1:       opt.Model1,
		Response1:    opt.Response1,
		Error1:       opt.Error1,
		Model2:       opt.Model2,
		Response2:    opt.Response2,
		Error2:       opt.Error2,
		CreatedAt:    now,
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO transcripts(
		id, ts, session_id, kind, status, question, document_name, temperature,
		model_1, response_1, error_1, model_2, response_2, error_2)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, float64(now.UnixNano())/1e9, t.SessionID, t.Kind, t.Status, t.Question, t.DocumentName, t.Temperature,
		t.Model1, t.Response1, t.Error1, t.Model2, t.Response2, t.Error2)
	if err != nil {
		r.l.Errorf(ctx, "internal.chat.repository.sqlite.SaveTranscript: %v", err)
		return repository.Transcript{}, fmt.Errorf("%w: %w", repository.ErrFailedToInsert, err)
	}

	return t, nil
}

func (r *implRepository) ListTranscripts(ctx context.Context, opt repository.ListTranscriptsOptions) ([]repository.Transcript, error) {
	var (
		where []string
		args  []any
	)
	if opt.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opt.SessionID)
	}
	if opt.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opt.Status)
	}

	query := `SELECT id, ts, session_id, kind, status, question, document_name, temperature,
		model_1, response_1, error_1, model_2, response_2, error_2 FROM transcripts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if opt.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFailedToList, err)
	}
	defer rows.Close()

	var out []repository.Transcript
	for rows.Next() {
		var (
			t  repository.Transcript
			ts float64
		)
		if err := rows.Scan(&t.ID, &ts, &t.SessionID, &t.Kind, &t.Status, &t.Question, &t.DocumentName, &t.Temperature,
			&t.Model1, &t.Response1, &t.Error1, &t.Model2, &t.Response2, &t.Error2); err != nil {
			return nil, fmt.Errorf("%w: %w", repository.ErrFailedToList, err)
		}
		sec, frac := math.Modf(ts)
		t.CreatedAt = time.Unix(int64(sec), int64(frac*1e9))
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFailedToList, err)
	}

	return out, nil
}
