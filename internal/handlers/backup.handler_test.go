package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackupService struct {
	list      []model.Transaction
	imported  []model.Transaction
	importErr error
}

func (f *fakeBackupService) Export() []model.Transaction { return f.list }

func (f *fakeBackupService) Import(list []model.Transaction) error {
	if f.importErr != nil {
		return f.importErr
	}
	f.imported = list
	return nil
}

func TestBackupExport(t *testing.T) {
	svc := &fakeBackupService{list: []model.Transaction{{ID: "t1"}, {ID: "t2"}}}
	h := NewBackupHandler(svc)

	ctx := newCtx("GET", "/api/v1/backup", nil)
	h.Export(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "kassa_backup_")

	var got []model.Transaction
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	assert.Len(t, got, 2)
}

func TestBackupImport(t *testing.T) {
	t.Run("replaces the collection and reports the count", func(t *testing.T) {
		svc := &fakeBackupService{}
		h := NewBackupHandler(svc)

		ctx := newCtx("POST", "/api/v1/restore", []byte(`[{"id":"t1"},{"id":"t2"},{"id":"t3"}]`))
		h.Import(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Len(t, svc.imported, 3)
		assert.Contains(t, string(ctx.Response.Body()), `"imported":3`)
	})

	t.Run("broken JSON answers 400", func(t *testing.T) {
		h := NewBackupHandler(&fakeBackupService{})

		ctx := newCtx("POST", "/api/v1/restore", []byte("not json"))
		h.Import(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("persistence failure answers 500", func(t *testing.T) {
		h := NewBackupHandler(&fakeBackupService{importErr: errors.New("disk full")})

		ctx := newCtx("POST", "/api/v1/restore", []byte(`[]`))
		h.Import(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
	})
}
