package services

import (
	pkgcache "github.com/ghuser/mediaboard/pkg/cache"
	"github.com/ghuser/mediaboard/services/canvas/domain/models"
)

func toCached(items []*models.CanvasItem) []pkgcache.CachedItem {
	out := make([]pkgcache.CachedItem, len(items))
	for i, item := range items {
		out[i] = pkgcache.CachedItem{
			ID:        item.ID,
			ProjectID: item.ProjectID,
			Type:      item.Type.String(),
			X:         item.X,
			Y:         item.Y,
			Width:     item.Width,
			Height:    item.Height,
			ZIndex:    item.ZIndex,
			Title:     item.Title,
			Content:   item.Content,
			Data:      item.Data,
			CreatedBy: item.CreatedBy,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return out
}

func fromCached(items []pkgcache.CachedItem) []*models.CanvasItem {
	out := make([]*models.CanvasItem, len(items))
	for i, c := range items {
		data := models.Data(c.Data)
		if data == nil {
			data = models.Data{}
		}
		out[i] = &models.CanvasItem{
			ID:        c.ID,
			ProjectID: c.ProjectID,
			Type:      models.ItemType(c.Type),
			X:         c.X,
			Y:         c.Y,
			Width:     c.Width,
			Height:    c.Height,
			ZIndex:    c.ZIndex,
			Title:     c.Title,
			Content:   c.Content,
			Data:      data,
			CreatedBy: c.CreatedBy,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return out
}
