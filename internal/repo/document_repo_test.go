package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaims/riskprice/internal/model"
)

func insertDocument(t *testing.T, repo *DocumentRepo, ingestedAt int64) int64 {
	t.Helper()
	var id int64
	err := WithTx(context.Background(), repo.db, func(tx *sql.Tx) error {
		var err error
		id, err = repo.Insert(context.Background(), tx, &model.Document{
			DocType:    "TextReport",
			StorageKey: "doc.txt",
			IngestedAt: ingestedAt,
		})
		return err
	})
	require.NoError(t, err)
	return id
}

func TestDocumentRepo_ListOrderings(t *testing.T) {
	d := newTestDB(t)
	repo := NewDocumentRepo(d)
	ctx := context.Background()

	first := insertDocument(t, repo, 1000)
	second := insertDocument(t, repo, 2000)
	third := insertDocument(t, repo, 3000)

	asc, err := repo.List(ctx, OrderAscending, 0)
	require.NoError(t, err)
	require.Equal(t, []int64{first, second, third}, documentIDs(asc))

	desc, err := repo.List(ctx, OrderDescending, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{third, second}, documentIDs(desc))
}

func TestDocumentRepo_ListEmpty(t *testing.T) {
	d := newTestDB(t)
	repo := NewDocumentRepo(d)

	docs, err := repo.List(context.Background(), OrderAscending, 0)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestDocumentRepo_InsertAssignsSequentialIDs(t *testing.T) {
	d := newTestDB(t)
	repo := NewDocumentRepo(d)

	require.Equal(t, int64(1), insertDocument(t, repo, 100))
	require.Equal(t, int64(2), insertDocument(t, repo, 200))
}

func TestDocumentRepo_Link(t *testing.T) {
	d := newTestDB(t)
	repo := NewDocumentRepo(d)
	ctx := context.Background()

	err := WithTx(ctx, d, func(tx *sql.Tx) error {
		id, err := repo.Insert(ctx, tx, &model.Document{DocType: "TextReport", StorageKey: "a.txt", IngestedAt: 1})
		if err != nil {
			return err
		}
		return repo.Link(ctx, tx, &model.DocumentLink{DocID: id, EntityType: "Customer", EntityID: 1})
	})
	require.NoError(t, err)
}

func documentIDs(docs []model.Document) []int64 {
	ids := make([]int64, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids
}
