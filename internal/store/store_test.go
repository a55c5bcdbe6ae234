package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func sampleRecord(id string) Record {
	return Record{
		GameID: id,
		Players: model.Players{
			White: model.Player{ID: "w", Color: model.White},
			Black: model.Player{ID: "b", Color: model.Black},
		},
		Board:     model.NewStandardBoard().Snapshot(),
		Status:    model.StatusOngoing,
		UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// exercise runs the behaviour every Store must share.
func exercise(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	id := uuid.New().String()

	if _, err := st.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(unknown) error = %v; want ErrNotFound", err)
	}

	rec := sampleRecord(id)
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := st.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	rec.Status = model.StatusCheckmate
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("Save() overwrite error: %v", err)
	}
	if got, _ := st.Load(ctx, id); got.Status != model.StatusCheckmate {
		t.Errorf("Status after overwrite = %q; want checkmate", got.Status)
	}

	other := sampleRecord(uuid.New().String())
	if err := st.Save(ctx, other); err != nil {
		t.Fatalf("Save(other) error: %v", err)
	}
	listed, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	found := map[string]bool{}
	for _, r := range listed {
		found[r.GameID] = true
	}
	if !found[id] || !found[other.GameID] {
		t.Errorf("List() ids = %v; want %s and %s", found, id, other.GameID)
	}

	if err := st.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := st.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(deleted) error = %v; want ErrNotFound", err)
	}
}

func TestMemory(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	exercise(t, st)
}

func TestBadgerInMemory(t *testing.T) {
	st, err := NewBadger("")
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	defer st.Close()
	exercise(t, st)
}

func TestBadgerOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger(%s) error: %v", dir, err)
	}
	rec := sampleRecord("persisted")
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Load(ctx, "persisted")
	if err != nil {
		t.Fatalf("Load() after reopen error: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("Load() after reopen mismatch (-want +got):\n%s", diff)
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	st, err := NewRedis(context.Background(), addr, 0, "chess:test:"+uuid.New().String())
	if err != nil {
		t.Fatalf("NewRedis(%s) error: %v", addr, err)
	}
	defer st.Close()
	exercise(t, st)
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	st, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open(memory) error: %v", err)
	}
	if _, ok := st.(*Memory); !ok {
		t.Errorf("Open(memory) = %T; want *Memory", st)
	}

	cfg.Store.Driver = config.DriverBadger
	cfg.Store.Badger.Dir = t.TempDir()
	st, err = Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open(badger) error: %v", err)
	}
	if _, ok := st.(*Badger); !ok {
		t.Errorf("Open(badger) = %T; want *Badger", st)
	}
	st.Close()

	cfg.Store.Driver = "sqlite"
	if _, err := Open(context.Background(), cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Open(sqlite) error = %v; want ErrInvalidConfig", err)
	}
}
