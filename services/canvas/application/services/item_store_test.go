package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/logger"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
)

// memRepo is an in-memory repositories.ItemRepository that counts calls.
type memRepo struct {
	items    map[uuid.UUID]*models.CanvasItem
	order    []uuid.UUID
	finds    int
	writes   int
	writeErr error
	// afterFind runs once FindByProject has taken its snapshot.
	afterFind func()
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]*models.CanvasItem{}}
}

func (m *memRepo) FindByProject(_ context.Context, projectID uuid.UUID) ([]*models.CanvasItem, error) {
	m.finds++
	var out []*models.CanvasItem
	for _, id := range m.order {
		if it, ok := m.items[id]; ok && it.ProjectID == projectID {
			out = append(out, it.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	if m.afterFind != nil {
		m.afterFind()
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, projectID, id uuid.UUID) (*models.CanvasItem, error) {
	it, ok := m.items[id]
	if !ok || it.ProjectID != projectID {
		return nil, canvasdomain.ErrItemNotFound
	}
	return it.Clone(), nil
}

func (m *memRepo) Insert(_ context.Context, item *models.CanvasItem) (*models.CanvasItem, error) {
	m.writes++
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	stored := item.Clone()
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.items[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	return stored.Clone(), nil
}

func (m *memRepo) UpdateByID(_ context.Context, projectID, id uuid.UUID, p models.Patch) (*models.CanvasItem, error) {
	m.writes++
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	it, ok := m.items[id]
	if !ok || it.ProjectID != projectID {
		return nil, canvasdomain.ErrItemNotFound
	}
	m.items[id] = p.Apply(it)
	return m.items[id].Clone(), nil
}

func (m *memRepo) DeleteByID(_ context.Context, projectID, id uuid.UUID) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	it, ok := m.items[id]
	if !ok || it.ProjectID != projectID {
		return canvasdomain.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

// memCache is an in-memory ListCache with the same generation rule as Redis.
type memCache struct {
	lists       map[uuid.UUID][]pkgcache.CachedItem
	gens        map[uuid.UUID]int64
	invalidated int
	stale       int
	getErr      error
}

func newMemCache() *memCache {
	return &memCache{lists: map[uuid.UUID][]pkgcache.CachedItem{}, gens: map[uuid.UUID]int64{}}
}

func (c *memCache) Get(_ context.Context, projectID uuid.UUID) ([]pkgcache.CachedItem, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	items, ok := c.lists[projectID]
	if !ok {
		return nil, redis.Nil
	}
	return items, nil
}

func (c *memCache) Generation(_ context.Context, projectID uuid.UUID) (int64, error) {
	return c.gens[projectID], nil
}

func (c *memCache) Set(_ context.Context, projectID uuid.UUID, gen int64, items []pkgcache.CachedItem) error {
	if c.gens[projectID] != gen {
		c.stale++
		return pkgcache.ErrStaleList
	}
	c.lists[projectID] = items
	return nil
}

func (c *memCache) Invalidate(_ context.Context, projectID uuid.UUID) error {
	c.invalidated++
	c.gens[projectID]++
	delete(c.lists, projectID)
	return nil
}

type fixedIdentity string

func (f fixedIdentity) CurrentUser(context.Context) (string, error) {
	if f == "" {
		return "", errors.New("anonymous")
	}
	return string(f), nil
}

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Upload(context.Context, string, string, []byte) (string, error) {
	return s.url, s.err
}

type fixture struct {
	repo  *memRepo
	cache *memCache
	store *ItemStore
}

func newFixture(t *testing.T, uploader registry.Uploader) fixture {
	t.Helper()
	repo, c := newMemRepo(), newMemCache()
	stores := NewItemStores(repo, c, registry.Default(uploader), fixedIdentity("user-1"), logger.Discard())
	return fixture{repo: repo, cache: c, store: stores.ForProject(uuid.New())}
}

func TestItemStore_CreateRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.store.Create(ctx, models.Draft{
		Type:    models.TypeNote,
		X:       40,
		Y:       60,
		Content: models.Ptr("buy film"),
		Data:    models.Data{"colorIndex": 2},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CreatedBy != "user-1" || created.ZIndex != 0 || created.ProjectID != f.store.ProjectID() {
		t.Fatalf("server-side fields: %+v", created)
	}

	items, err := f.store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.ID != created.ID || got.X != 40 || got.Y != 60 || *got.Content != "buy film" || *got.Width != 200 {
		t.Fatalf("listed item differs from created: %+v", got)
	}
	if n, _ := got.Data.Int("colorIndex"); n != 2 {
		t.Fatalf("data = %v", got.Data)
	}
}

func TestItemStore_CreateAssignsZIndexFromCount(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for want := 0; want < 3; want++ {
		item, err := f.store.Create(ctx, models.Draft{Type: models.TypeText})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if item.ZIndex != want {
			t.Fatalf("z_index = %d, want %d", item.ZIndex, want)
		}
	}

	explicit, err := f.store.Create(ctx, models.Draft{Type: models.TypeText, ZIndex: models.Ptr(42)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if explicit.ZIndex != 42 {
		t.Fatalf("explicit z_index = %d", explicit.ZIndex)
	}
}

func TestItemStore_CreateClampsAndValidates(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	item, err := f.store.Create(ctx, models.Draft{Type: models.TypeSection, X: -50, Y: -1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.X != 0 || item.Y != 0 {
		t.Fatalf("position = (%v,%v), want clamped", item.X, item.Y)
	}

	tests := []struct {
		name  string
		draft models.Draft
		want  error
	}{
		{"unknown type", models.Draft{Type: "sticker"}, canvasdomain.ErrUnknownItemType},
		{"bad data", models.Draft{Type: models.TypeNote, Data: models.Data{"colorIndex": 9}}, canvasdomain.ErrInvalidItemData},
		{"bad size", models.Draft{Type: models.TypeImage, Width: models.Ptr(-1.0), Height: models.Ptr(10.0)}, canvasdomain.ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.repo.writes
			if _, err := f.store.Create(ctx, tt.draft); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if f.repo.writes != before {
				t.Fatal("rejected draft must not reach the repository")
			}
		})
	}
}

func TestItemStore_ListIsReadThrough(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	if _, err := f.store.Create(ctx, models.Draft{Type: models.TypeText}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	before := f.repo.finds
	for i := 0; i < 3; i++ {
		if _, err := f.store.List(ctx); err != nil {
			t.Fatalf("List: %v", err)
		}
	}
	if got := f.repo.finds - before; got != 1 {
		t.Fatalf("expected a single repository read for repeated lists, got %d", got)
	}
}

func TestItemStore_WritesInvalidate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item, _ := f.store.Create(ctx, models.Draft{Type: models.TypeNote})
	_, _ = f.store.List(ctx)

	steps := []struct {
		name string
		run  func() error
	}{
		{"update", func() error { _, err := f.store.Update(ctx, item.ID, models.Patch{X: models.Ptr(5.0)}); return err }},
		{"duplicate", func() error { _, err := f.store.Duplicate(ctx, item.ID); return err }},
		{"edit", func() error {
			_, err := f.store.Edit(ctx, item.ID, registry.EditInput{Content: models.Ptr("x")})
			return err
		}},
		{"delete", func() error { return f.store.Delete(ctx, item.ID) }},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			_, _ = f.store.List(ctx)
			if _, cached := f.cache.lists[f.store.ProjectID()]; !cached {
				t.Fatal("list should be cached before the write")
			}
			if err := step.run(); err != nil {
				t.Fatalf("%s: %v", step.name, err)
			}
			if _, cached := f.cache.lists[f.store.ProjectID()]; cached {
				t.Fatalf("%s must invalidate the cached list", step.name)
			}
		})
	}
}

func TestItemStore_WriteDuringListIsNotCachedStale(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item, err := f.store.Create(ctx, models.Draft{Type: models.TypeNote, X: 10, Y: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.repo.afterFind = func() {
		f.repo.afterFind = nil
		if err := f.store.CommitPosition(ctx, item.ID, geometry.Pt(500, 500)); err != nil {
			t.Errorf("CommitPosition: %v", err)
		}
	}
	first, err := f.store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if first[0].X != 10 {
		t.Fatalf("racing read x = %v, want its own snapshot 10", first[0].X)
	}
	if f.cache.stale != 1 {
		t.Fatalf("stale sets = %d, want 1", f.cache.stale)
	}
	if _, cached := f.cache.lists[f.store.ProjectID()]; cached {
		t.Fatal("a snapshot older than the last write must not be cached")
	}

	next, err := f.store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if next[0].X != 500 {
		t.Fatalf("list after write x = %v, want 500", next[0].X)
	}
	if _, cached := f.cache.lists[f.store.ProjectID()]; !cached {
		t.Fatal("a clean read should be cached")
	}
}

func TestItemStore_FailedWriteKeepsCache(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item, _ := f.store.Create(ctx, models.Draft{Type: models.TypeNote})
	_, _ = f.store.List(ctx)
	invalidated := f.cache.invalidated

	f.repo.writeErr = errors.New("connection refused")
	if _, err := f.store.Update(ctx, item.ID, models.Patch{X: models.Ptr(1.0)}); err == nil {
		t.Fatal("expected update error")
	}
	if f.cache.invalidated != invalidated {
		t.Fatal("failed write must not invalidate")
	}
}

func TestItemStore_CacheErrorFallsBackToRepository(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, _ = f.store.Create(ctx, models.Draft{Type: models.TypeText})
	f.cache.getErr = errors.New("redis down")

	items, err := f.store.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("List = %d items, %v", len(items), err)
	}
}

func TestItemStore_UpdateRules(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item, _ := f.store.Create(ctx, models.Draft{Type: models.TypeNote, X: 10, Y: 10})

	t.Run("type is immutable", func(t *testing.T) {
		img := models.TypeImage
		if _, err := f.store.Update(ctx, item.ID, models.Patch{Type: &img}); !errors.Is(err, canvasdomain.ErrImmutableField) {
			t.Fatalf("expected ErrImmutableField, got %v", err)
		}
	})

	t.Run("same type is accepted", func(t *testing.T) {
		same := models.TypeNote
		got, err := f.store.Update(ctx, item.ID, models.Patch{Type: &same, Y: models.Ptr(30.0)})
		if err != nil || got.Y != 30 || got.Type != models.TypeNote {
			t.Fatalf("Update = %+v, %v", got, err)
		}
	})

	t.Run("clamps negative coordinates", func(t *testing.T) {
		got, err := f.store.Update(ctx, item.ID, models.Patch{X: models.Ptr(-5.0)})
		if err != nil || got.X != 0 {
			t.Fatalf("Update = %+v, %v", got, err)
		}
	})

	t.Run("validates data against the kind", func(t *testing.T) {
		if _, err := f.store.Update(ctx, item.ID, models.Patch{Data: models.Data{"colorIndex": "red"}}); !errors.Is(err, canvasdomain.ErrInvalidItemData) {
			t.Fatalf("expected ErrInvalidItemData, got %v", err)
		}
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		before := f.repo.writes
		got, err := f.store.Update(ctx, item.ID, models.Patch{})
		if err != nil || got == nil || got.ID != item.ID {
			t.Fatalf("Update = %+v, %v", got, err)
		}
		if f.repo.writes != before {
			t.Fatal("empty patch must not write")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := f.store.Update(ctx, uuid.New(), models.Patch{X: models.Ptr(1.0)}); !errors.Is(err, canvasdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemStore_DuplicateReadsFromSource(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	src, _ := f.store.Create(ctx, models.Draft{Type: models.TypeSection, X: 100, Y: 50, Title: models.Ptr("Act 1")})

	first, err := f.store.Duplicate(ctx, src.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	second, err := f.store.Duplicate(ctx, src.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	ids := map[uuid.UUID]bool{src.ID: true, first.ID: true, second.ID: true}
	if len(ids) != 3 {
		t.Fatal("duplicates must have fresh ids")
	}
	for _, d := range []*models.CanvasItem{first, second} {
		if d.X != 120 || d.Y != 70 {
			t.Fatalf("duplicate at (%v,%v), want (120,70)", d.X, d.Y)
		}
		if *d.Title != "Act 1" || *d.Width != 600 || d.Type != models.TypeSection || d.CreatedBy != "user-1" {
			t.Fatalf("duplicate fields: %+v", d)
		}
	}
	if first.ZIndex != 1 || second.ZIndex != 2 {
		t.Fatalf("z_index = %d, %d; want current count", first.ZIndex, second.ZIndex)
	}

	if _, err := f.store.Duplicate(ctx, uuid.New()); !errors.Is(err, canvasdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemStore_Edit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	note, _ := f.store.Create(ctx, models.Draft{Type: models.TypeNote})

	got, err := f.store.Edit(ctx, note.ID, registry.EditInput{ColorIndex: models.Ptr(3), Content: models.Ptr("hi")})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if n, _ := got.Data.Int("colorIndex"); n != 3 || *got.Content != "hi" {
		t.Fatalf("edited note = %+v", got)
	}

	if _, err := f.store.Edit(ctx, note.ID, registry.EditInput{Src: models.Ptr("x")}); !errors.Is(err, canvasdomain.ErrUnsupportedEdit) {
		t.Fatalf("expected ErrUnsupportedEdit, got %v", err)
	}
}

func TestItemStore_AttachFile(t *testing.T) {
	ctx := context.Background()
	file := registry.File{Name: "still.png", ContentType: "image/png", Body: []byte("png-bytes")}

	t.Run("uploaded", func(t *testing.T) {
		f := newFixture(t, stubUploader{url: "https://cdn/still.png"})
		img, _ := f.store.Create(ctx, models.Draft{Type: models.TypeImage})

		got, att, err := f.store.AttachFile(ctx, img.ID, file)
		if err != nil {
			t.Fatalf("AttachFile: %v", err)
		}
		if att.Embedded || att.URL != "https://cdn/still.png" {
			t.Fatalf("attachment = %+v", att)
		}
		if src, _ := got.Data.String("src"); src != "https://cdn/still.png" {
			t.Fatalf("src = %q", src)
		}
	})

	t.Run("upload failure embeds inline", func(t *testing.T) {
		f := newFixture(t, stubUploader{err: errors.New("bucket offline")})
		img, _ := f.store.Create(ctx, models.Draft{Type: models.TypeImage})

		got, att, err := f.store.AttachFile(ctx, img.ID, file)
		if err != nil {
			t.Fatalf("AttachFile must not fail on upload error: %v", err)
		}
		if !att.Embedded {
			t.Fatal("expected inline fallback")
		}
		src, _ := got.Data.String("src")
		if src != registry.DataURL("image/png", file.Body) {
			t.Fatalf("src = %q", src)
		}
		if ph, _ := got.Data.Bool("placeholder"); ph {
			t.Fatal("placeholder must be cleared")
		}
	})

	t.Run("kinds without files", func(t *testing.T) {
		f := newFixture(t, nil)
		note, _ := f.store.Create(ctx, models.Draft{Type: models.TypeNote})
		if _, _, err := f.store.AttachFile(ctx, note.ID, file); !errors.Is(err, canvasdomain.ErrUnsupportedEdit) {
			t.Fatalf("expected ErrUnsupportedEdit, got %v", err)
		}
	})
}

func TestItemStore_CommitPosition(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item, _ := f.store.Create(ctx, models.Draft{Type: models.TypeText, X: 100, Y: 100})

	if err := f.store.CommitPosition(ctx, item.ID, geometry.Pt(150, 130)); err != nil {
		t.Fatalf("CommitPosition: %v", err)
	}
	got, _ := f.store.Get(ctx, item.ID)
	if got.X != 150 || got.Y != 130 || *got.Content != "New text" {
		t.Fatalf("after commit: %+v", got)
	}
}

func TestItemStore_NilProjectIsNoop(t *testing.T) {
	repo := newMemRepo()
	store := NewItemStores(repo, nil, registry.Default(nil), nil, logger.Discard()).ForProject(uuid.Nil)
	ctx := context.Background()
	id := uuid.New()

	if items, err := store.List(ctx); items != nil || err != nil {
		t.Fatalf("List = %v, %v", items, err)
	}
	if item, err := store.Create(ctx, models.Draft{Type: models.TypeText}); item != nil || err != nil {
		t.Fatalf("Create = %v, %v", item, err)
	}
	if item, err := store.Update(ctx, id, models.Patch{X: models.Ptr(1.0)}); item != nil || err != nil {
		t.Fatalf("Update = %v, %v", item, err)
	}
	if item, err := store.Duplicate(ctx, id); item != nil || err != nil {
		t.Fatalf("Duplicate = %v, %v", item, err)
	}
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete = %v", err)
	}
	if err := store.CommitPosition(ctx, id, geometry.Pt(1, 1)); err != nil {
		t.Fatalf("CommitPosition = %v", err)
	}
	if repo.finds != 0 || repo.writes != 0 {
		t.Fatal("a store without a project must not touch the repository")
	}
}

func TestItemStore_AnonymousCreate(t *testing.T) {
	repo := newMemRepo()
	store := NewItemStores(repo, nil, registry.Default(nil), fixedIdentity(""), logger.Discard()).ForProject(uuid.New())
	item, err := store.Create(context.Background(), models.Draft{Type: models.TypeText})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.CreatedBy != "" {
		t.Fatalf("created_by = %q", item.CreatedBy)
	}
}

func TestCacheMapping_RoundTrip(t *testing.T) {
	now := time.Now().UTC()
	in := []*models.CanvasItem{{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Type:      models.TypeImage,
		X:         1,
		Y:         2,
		Width:     models.Ptr(320.0),
		Height:    models.Ptr(240.0),
		ZIndex:    4,
		Title:     models.Ptr("Image"),
		Data:      models.Data{"src": "", "placeholder": true},
		CreatedBy: "u",
		CreatedAt: now,
		UpdatedAt: now,
	}}
	out := fromCached(toCached(in))
	if len(out) != 1 || out[0].ID != in[0].ID || *out[0].Width != 320 || out[0].Content != nil || out[0].ZIndex != 4 {
		t.Fatalf("round trip = %+v", out[0])
	}
}
