package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// magazineColumns must match the scan order in scanMagazine.
const magazineColumns = `seq, id, title, author, isbn, publish_date, issue, created_at, updated_at`

type magazineTable struct {
	s *Store
}

func scanMagazine(scanner interface{ Scan(dest ...any) error }) (*domain.Magazine, error) {
	var (
		m           domain.Magazine
		author      sql.NullString
		publishDate sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := scanner.Scan(&m.Seq, &m.ID, &m.Title, &author, &m.ISBN, &publishDate, &m.Issue, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := scanRecord(&m.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	m.Author = stringPtr(author)

	var err error
	if m.PublishDate, err = parseNullDate(publishDate); err != nil {
		return nil, fmt.Errorf("parse publish_date: %w", err)
	}
	return &m, nil
}

func (t *magazineTable) Create(ctx context.Context, m *domain.Magazine) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	if m.ID == "" {
		return store.Fail("create magazines", store.ErrMissingID)
	}

	res, err := t.s.db.ExecContext(ctx,
		`INSERT INTO magazines (id, title, author, isbn, publish_date, issue, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, nullableString(m.Author), m.ISBN, nullDate(m.PublishDate), m.Issue,
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		return store.Fail("create magazines", insertErr(err))
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return store.Fail("create magazines", err)
	}
	m.Seq = uint64(seq)
	return nil
}

func (t *magazineTable) List(ctx context.Context) ([]*domain.Magazine, error) {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	rows, err := t.s.db.QueryContext(ctx, `SELECT `+magazineColumns+` FROM magazines ORDER BY seq`)
	if err != nil {
		return nil, store.Fail("list magazines", err)
	}
	defer rows.Close()

	out := make([]*domain.Magazine, 0)
	for rows.Next() {
		m, err := scanMagazine(rows)
		if err != nil {
			return nil, store.Fail("list magazines", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Fail("list magazines", err)
	}
	return out, nil
}

func (t *magazineTable) Get(ctx context.Context, id string) (*domain.Magazine, error) {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	m, err := scanMagazine(t.s.db.QueryRowContext(ctx, `SELECT `+magazineColumns+` FROM magazines WHERE id = ?`, id))
	if noRows(err) {
		return nil, domainerrors.NotFoundf("magazines %s not found", id)
	}
	if err != nil {
		return nil, store.Fail("get magazines", err)
	}
	return m, nil
}

func (t *magazineTable) Replace(ctx context.Context, id string, m *domain.Magazine) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Fail("replace magazines", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	prev, err := scanMagazine(tx.QueryRowContext(ctx, `SELECT `+magazineColumns+` FROM magazines WHERE id = ?`, id))
	if noRows(err) {
		return domainerrors.NotFoundf("magazines %s not found", id)
	}
	if err != nil {
		return store.Fail("replace magazines", err)
	}
	m.Carry(&prev.Record)

	_, err = tx.ExecContext(ctx,
		`UPDATE magazines SET title = ?, author = ?, isbn = ?, publish_date = ?, issue = ?, updated_at = ? WHERE id = ?`,
		m.Title, nullableString(m.Author), m.ISBN, nullDate(m.PublishDate), m.Issue, formatTime(m.UpdatedAt), id,
	)
	if err != nil {
		return store.Fail("replace magazines", err)
	}
	return store.Fail("replace magazines", tx.Commit())
}

func (t *magazineTable) Delete(ctx context.Context, id string) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	_, err := t.s.db.ExecContext(ctx, `DELETE FROM magazines WHERE id = ?`, id)
	return store.Fail("delete magazines", err)
}
