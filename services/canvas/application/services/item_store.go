package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/pkg/logger"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
	"github.com/ghuser/mediaboard/services/canvas/domain/registry"
	"github.com/ghuser/mediaboard/services/canvas/domain/repositories"
	domainsvcs "github.com/ghuser/mediaboard/services/canvas/domain/services"
)

const instrumentationName = "github.com/ghuser/mediaboard/services/canvas"

// DuplicateOffset is how far a duplicate lands from its source, in model units.
var DuplicateOffset = geometry.Pt(20, 20)

// ListCache is the query cache in front of FindByProject. Set must refuse
// with pkgcache.ErrStaleList when the project was invalidated after gen was read.
// *pkgcache.ItemListCache satisfies it.
type ListCache interface {
	Get(ctx context.Context, projectID uuid.UUID) ([]pkgcache.CachedItem, error)
	Generation(ctx context.Context, projectID uuid.UUID) (int64, error)
	Set(ctx context.Context, projectID uuid.UUID, gen int64, items []pkgcache.CachedItem) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

// Identity answers who the current user is. auth.SessionIdentity satisfies it.
type Identity interface {
	CurrentUser(ctx context.Context) (string, error)
}

// ItemStores hands out project-scoped Item Stores sharing one repository,
// cache and registry.
type ItemStores struct {
	repo     repositories.ItemRepository
	cache    ListCache
	registry *registry.Registry
	identity Identity
	log      logger.Logger
	tracer   trace.Tracer
	writes   metric.Int64Counter
}

// NewItemStores wires the store. cache and identity may be nil: without a cache
// every list goes to the repository, without identity created_by stays empty.
func NewItemStores(repo repositories.ItemRepository, cache ListCache, reg *registry.Registry, identity Identity, log logger.Logger) *ItemStores {
	writes, err := otel.Meter(instrumentationName).Int64Counter("canvas.item.writes",
		metric.WithDescription("Successful canvas item writes by operation"),
	)
	if err != nil {
		log.Warn("canvas.item.writes counter unavailable", "error", err)
	}
	return &ItemStores{
		repo:     repo,
		cache:    cache,
		registry: reg,
		identity: identity,
		log:      log,
		tracer:   otel.Tracer(instrumentationName),
		writes:   writes,
	}
}

// Registry returns the type registry the stores dispatch through.
func (s *ItemStores) Registry() *registry.Registry { return s.registry }

// ForProject scopes a store to one project. A nil project yields a store
// whose operations are all no-ops.
func (s *ItemStores) ForProject(projectID uuid.UUID) *ItemStore {
	return &ItemStore{stores: s, projectID: projectID}
}

// ItemStore is the single write path to a project's canvas items. Every
// successful write invalidates the project's cached item list.
type ItemStore struct {
	stores    *ItemStores
	projectID uuid.UUID
}

func (s *ItemStore) ProjectID() uuid.UUID { return s.projectID }

func (s *ItemStore) disabled() bool { return s.projectID == uuid.Nil }

// List returns the project's items in z order, from cache when possible.
func (s *ItemStore) List(ctx context.Context) (items []*models.CanvasItem, err error) {
	if s.disabled() {
		return nil, nil
	}
	ctx, span := s.start(ctx, "List")
	defer func() { endSpan(span, err) }()

	c := s.stores.cache
	var gen int64
	if c != nil {
		cached, err := c.Get(ctx, s.projectID)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.stores.log.WarnContext(ctx, "item list cache read failed", "project_id", s.projectID, "error", err)
		}
		// The generation is read before the store so a write landing during
		// the query keeps this snapshot out of the cache.
		if gen, err = c.Generation(ctx, s.projectID); err != nil {
			s.stores.log.WarnContext(ctx, "item list cache generation failed", "project_id", s.projectID, "error", err)
			c = nil
		}
	}

	items, err = s.stores.repo.FindByProject(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if c != nil {
		err := c.Set(ctx, s.projectID, gen, toCached(items))
		switch {
		case errors.Is(err, pkgcache.ErrStaleList):
			s.stores.log.DebugContext(ctx, "item list changed during read, not cached", "project_id", s.projectID)
		case err != nil:
			s.stores.log.WarnContext(ctx, "item list cache write failed", "project_id", s.projectID, "error", err)
		}
	}
	return items, nil
}

// Get reads one item straight from the repository.
func (s *ItemStore) Get(ctx context.Context, id uuid.UUID) (*models.CanvasItem, error) {
	if s.disabled() {
		return nil, nil
	}
	item, err := s.stores.repo.GetByID(ctx, s.projectID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Create fills the draft from the type's defaults, stamps created_by from the
// identity provider and z_index from the current item count when unset.
func (s *ItemStore) Create(ctx context.Context, d models.Draft) (item *models.CanvasItem, err error) {
	if s.disabled() {
		return nil, nil
	}
	ctx, span := s.start(ctx, "Create", attribute.String("item.type", d.Type.String()))
	defer func() { endSpan(span, err) }()

	d, err = s.stores.registry.Complete(d)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, d, "create")
}

// Update applies a partial patch. The type is immutable; coordinates are
// clamped to be non-negative. An empty patch writes nothing.
func (s *ItemStore) Update(ctx context.Context, id uuid.UUID, p models.Patch) (item *models.CanvasItem, err error) {
	if s.disabled() {
		return nil, nil
	}
	ctx, span := s.start(ctx, "Update", attribute.String("item.id", id.String()))
	defer func() { endSpan(span, err) }()

	current, err := s.stores.repo.GetByID(ctx, s.projectID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return s.apply(ctx, current, p, "update")
}

// Delete hard-deletes the item.
func (s *ItemStore) Delete(ctx context.Context, id uuid.UUID) (err error) {
	if s.disabled() {
		return nil
	}
	ctx, span := s.start(ctx, "Delete", attribute.String("item.id", id.String()))
	defer func() { endSpan(span, err) }()

	if err := s.stores.repo.DeleteByID(ctx, s.projectID, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.wrote(ctx, "delete")
	return nil
}

// Duplicate copies the persisted source item, never a cached or live copy,
// offset by DuplicateOffset and stacked on top.
func (s *ItemStore) Duplicate(ctx context.Context, id uuid.UUID) (item *models.CanvasItem, err error) {
	if s.disabled() {
		return nil, nil
	}
	ctx, span := s.start(ctx, "Duplicate", attribute.String("item.id", id.String()))
	defer func() { endSpan(span, err) }()

	src, err := s.stores.repo.GetByID(ctx, s.projectID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	c := src.Clone()
	pos := c.Position().Add(DuplicateOffset)
	return s.insert(ctx, models.Draft{
		Type:    c.Type,
		X:       pos.X,
		Y:       pos.Y,
		Width:   c.Width,
		Height:  c.Height,
		Title:   c.Title,
		Content: c.Content,
		Data:    c.Data,
	}, "duplicate")
}

// Edit routes a typed edit through the item's kind and stores the result.
func (s *ItemStore) Edit(ctx context.Context, id uuid.UUID, in registry.EditInput) (item *models.CanvasItem, err error) {
	if s.disabled() {
		return nil, nil
	}
	ctx, span := s.start(ctx, "Edit", attribute.String("item.id", id.String()))
	defer func() { endSpan(span, err) }()

	current, err := s.stores.repo.GetByID(ctx, s.projectID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	p, err := s.stores.registry.Edit(current, in)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, current, p, "edit")
}

// AttachFile hands the file to the kind's attacher. A failed upload does not
// fail the call: the file is embedded inline and the attachment says so.
func (s *ItemStore) AttachFile(ctx context.Context, id uuid.UUID, f registry.File) (item *models.CanvasItem, att registry.Attachment, err error) {
	if s.disabled() {
		return nil, registry.Attachment{}, nil
	}
	ctx, span := s.start(ctx, "AttachFile", attribute.String("item.id", id.String()))
	defer func() { endSpan(span, err) }()

	current, err := s.stores.repo.GetByID(ctx, s.projectID, id)
	if err != nil {
		return nil, att, fmt.Errorf("get item: %w", err)
	}
	attacher, err := s.stores.registry.Attacher(current.Type)
	if err != nil {
		return nil, att, err
	}
	att, err = attacher.AttachFile(ctx, current, f)
	if err != nil {
		return nil, att, err
	}
	if att.Embedded {
		s.stores.log.WarnContext(ctx, "blob upload failed, embedding file inline",
			"item_id", id, "file", f.Name, "error", att.UploadErr)
	}
	item, err = s.apply(ctx, current, att.Patch, "attach")
	return item, att, err
}

// CommitPosition stores a drag result. It satisfies drag.Committer.
func (s *ItemStore) CommitPosition(ctx context.Context, id uuid.UUID, pos geometry.Point) error {
	_, err := s.Update(ctx, id, models.PositionPatch(pos))
	return err
}

func (s *ItemStore) insert(ctx context.Context, d models.Draft, op string) (*models.CanvasItem, error) {
	if err := domainsvcs.ValidateDraft(d); err != nil {
		return nil, err
	}
	if err := s.stores.registry.ValidateData(d.Type, d.Data); err != nil {
		return nil, err
	}

	var z int
	if d.ZIndex != nil {
		z = *d.ZIndex
	} else {
		existing, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		z = len(existing)
	}

	item := models.NewItem(s.projectID, s.currentUser(ctx), z, d)
	if err := domainsvcs.ValidateItemForInsert(item); err != nil {
		return nil, err
	}
	stored, err := s.stores.repo.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	s.wrote(ctx, op)
	return stored, nil
}

func (s *ItemStore) apply(ctx context.Context, current *models.CanvasItem, p models.Patch, op string) (*models.CanvasItem, error) {
	if err := domainsvcs.ValidatePatch(current, p); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return current, nil
	}
	if p.Data != nil {
		if err := s.stores.registry.ValidateData(current.Type, p.Data); err != nil {
			return nil, err
		}
	}
	p = p.ClampPosition()
	p.Type = nil

	stored, err := s.stores.repo.UpdateByID(ctx, s.projectID, current.ID, p)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.wrote(ctx, op)
	return stored, nil
}

// wrote invalidates the project's list and counts the write.
func (s *ItemStore) wrote(ctx context.Context, op string) {
	if c := s.stores.cache; c != nil {
		if err := c.Invalidate(ctx, s.projectID); err != nil {
			s.stores.log.WarnContext(ctx, "item list cache invalidate failed", "project_id", s.projectID, "error", err)
		}
	}
	if s.stores.writes != nil {
		s.stores.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

func (s *ItemStore) currentUser(ctx context.Context) string {
	if s.stores.identity == nil {
		return ""
	}
	user, err := s.stores.identity.CurrentUser(ctx)
	if err != nil {
		s.stores.log.DebugContext(ctx, "no current user for created_by", "error", err)
		return ""
	}
	return user
}

func (s *ItemStore) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("project.id", s.projectID.String()))
	return s.stores.tracer.Start(ctx, "canvas.ItemStore."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
