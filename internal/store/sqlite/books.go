package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// bookColumns must match the scan order in scanBook.
const bookColumns = `seq, id, title, author, isbn, publish_date, created_at, updated_at`

type bookTable struct {
	s *Store
}

func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b           domain.Book
		author      sql.NullString
		publishDate sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := scanner.Scan(&b.Seq, &b.ID, &b.Title, &author, &b.ISBN, &publishDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := scanRecord(&b.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	b.Author = stringPtr(author)

	var err error
	if b.PublishDate, err = parseNullDate(publishDate); err != nil {
		return nil, fmt.Errorf("parse publish_date: %w", err)
	}
	return &b, nil
}

func (t *bookTable) Create(ctx context.Context, b *domain.Book) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	if b.ID == "" {
		return store.Fail("create books", store.ErrMissingID)
	}

	res, err := t.s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, isbn, publish_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, nullableString(b.Author), b.ISBN, nullDate(b.PublishDate),
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return store.Fail("create books", insertErr(err))
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return store.Fail("create books", err)
	}
	b.Seq = uint64(seq)
	return nil
}

func (t *bookTable) List(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	rows, err := t.s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY seq`)
	if err != nil {
		return nil, store.Fail("list books", err)
	}
	defer rows.Close()

	out := make([]*domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, store.Fail("list books", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Fail("list books", err)
	}
	return out, nil
}

func (t *bookTable) Get(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	b, err := scanBook(t.s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if noRows(err) {
		return nil, domainerrors.NotFoundf("books %s not found", id)
	}
	if err != nil {
		return nil, store.Fail("get books", err)
	}
	return b, nil
}

func (t *bookTable) Replace(ctx context.Context, id string, b *domain.Book) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Fail("replace books", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	prev, err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if noRows(err) {
		return domainerrors.NotFoundf("books %s not found", id)
	}
	if err != nil {
		return store.Fail("replace books", err)
	}
	b.Carry(&prev.Record)

	_, err = tx.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, isbn = ?, publish_date = ?, updated_at = ? WHERE id = ?`,
		b.Title, nullableString(b.Author), b.ISBN, nullDate(b.PublishDate), formatTime(b.UpdatedAt), id,
	)
	if err != nil {
		return store.Fail("replace books", err)
	}
	return store.Fail("replace books", tx.Commit())
}

func (t *bookTable) Delete(ctx context.Context, id string) error {
	ctx, cancel := t.s.bound(ctx)
	defer cancel()

	_, err := t.s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	return store.Fail("delete books", err)
}
