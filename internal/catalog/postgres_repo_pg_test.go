package catalog

import (
	"context"
	"testing"

	"libraryapi/internal/testutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, repo *PostgresRepo, db *pgxpool.Pool) (Author, Publisher) {
	t.Helper()
	ctx := context.Background()

	a := Author{Name: "Catalog Test Author"}
	require.NoError(t, repo.CreateAuthor(ctx, &a))
	p := Publisher{Name: "Catalog Test Publisher"}
	require.NoError(t, repo.CreatePublisher(ctx, &p))

	t.Cleanup(func() {
		_, _ = db.Exec(ctx, `DELETE FROM books WHERE author_id = $1`, a.ID)
		_, _ = db.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, p.ID)
		_, _ = db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, a.ID)
	})
	return a, p
}

func testISBN() string {
	// Unique per call so runs never collide.
	return "test-isbn-" + uuid.NewString()
}

func TestPostgresRepo_BookCRUD(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()
	a, p := seedCatalog(t, repo, db)

	b := Book{
		ISBN:            testISBN(),
		Title:           "Catalog Test Book",
		AuthorID:        a.ID,
		PublisherID:     p.ID,
		TotalCopies:     3,
		AvailableCopies: 3,
	}
	require.NoError(t, repo.CreateBook(ctx, &b))
	require.NotEmpty(t, b.ID)

	got, err := repo.GetBookByISBN(ctx, b.ISBN)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, 3, got.AvailableCopies)

	got.Title = "Renamed"
	require.NoError(t, repo.UpdateBook(ctx, &got))
	again, err := repo.GetBookByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Title)

	require.NoError(t, repo.DeleteBook(ctx, b.ID))
	_, err = repo.GetBookByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestPostgresRepo_DuplicateISBN(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()
	a, p := seedCatalog(t, repo, db)

	isbn := testISBN()
	first := Book{ISBN: isbn, Title: "First", AuthorID: a.ID, PublisherID: p.ID}
	require.NoError(t, repo.CreateBook(ctx, &first))

	second := Book{ISBN: isbn, Title: "Second", AuthorID: a.ID, PublisherID: p.ID}
	assert.ErrorIs(t, repo.CreateBook(ctx, &second), ErrDuplicateISBN)
}

func TestPostgresRepo_DeleteBookWithActiveLoan(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()
	a, p := seedCatalog(t, repo, db)

	b := Book{ISBN: testISBN(), Title: "On Loan", AuthorID: a.ID, PublisherID: p.ID, TotalCopies: 1, AvailableCopies: 1}
	require.NoError(t, repo.CreateBook(ctx, &b))

	var memberID, loanID string
	err := db.QueryRow(ctx, `
		INSERT INTO members (id, name, email)
		VALUES (gen_random_uuid(), 'Borrower', 'borrower-' || gen_random_uuid()::text || '@example.com')
		RETURNING id`).Scan(&memberID)
	require.NoError(t, err)
	err = db.QueryRow(ctx, `
		INSERT INTO loans (id, book_id, member_id, issue_date, due_date, status)
		VALUES (gen_random_uuid(), $1, $2, CURRENT_DATE, CURRENT_DATE + 14, 'ACTIVE')
		RETURNING id`, b.ID, memberID).Scan(&loanID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
		_, _ = db.Exec(ctx, `DELETE FROM members WHERE id = $1`, memberID)
	})

	assert.ErrorIs(t, repo.DeleteBook(ctx, b.ID), ErrReferentialConflict)
}

func TestPostgresRepo_DeleteReferencedAuthor(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()
	a, p := seedCatalog(t, repo, db)

	b := Book{ISBN: testISBN(), Title: "Keeps Author", AuthorID: a.ID, PublisherID: p.ID}
	require.NoError(t, repo.CreateBook(ctx, &b))

	assert.ErrorIs(t, repo.DeleteAuthor(ctx, a.ID), ErrReferentialConflict)
}

func TestPostgresRepo_ListBooks(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()
	a, p := seedCatalog(t, repo, db)

	titles := []string{"Zebra Atlas QQQ", "Zebra Botany QQQ", "Unrelated"}
	for _, title := range titles {
		b := Book{ISBN: testISBN(), Title: title, AuthorID: a.ID, PublisherID: p.ID}
		require.NoError(t, repo.CreateBook(ctx, &b))
	}

	books, total, err := repo.ListBooks(ctx, Query{Q: "Zebra", AuthorID: a.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, books, 2)

	// Pagination counts the full filtered set.
	books, total, err = repo.ListBooks(ctx, Query{AuthorID: a.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, books, 2)
}
