package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minh-vuong/restaurant-orders-api/models"
)

const (
	menuCacheKey = "menu:items"
	menuCacheTTL = 5 * time.Minute
)

// MenuService owns menu item CRUD, the redis-backed menu list cache and the
// S3-backed dish photos. The cache and image store are both optional.
type MenuService struct {
	DB    *gorm.DB
	Cache *redis.Client // nil disables caching
}

// NewMenuService creates a menu service on the given database handle. The
// cache client may be nil when no redis instance is configured.
func NewMenuService(db *gorm.DB, cache *redis.Client) *MenuService {
	return &MenuService{DB: db, Cache: cache}
}

// MenuItemInput carries the writable fields of a menu item.
type MenuItemInput struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
}

// MenuItemList is one page of menu items.
type MenuItemList struct {
	Items    []models.MenuItem `json:"items"`
	Metadata Pagination        `json:"metadata"`
}

// attachImageURL fills the computed presigned URL when the item has a photo
// and an image store is configured.
func attachImageURL(item *models.MenuItem) {
	images := GetImageService()
	if images == nil || item.ImageS3Key == nil {
		return
	}
	url, err := images.GetImageURL(*item.ImageS3Key)
	if err != nil {
		log.Printf("Failed to generate image URL for menu item %d: %v", item.ID, err)
		return
	}
	if url != "" {
		item.ImageURL = &url
	}
}

// invalidateCache drops the cached menu list after a mutation.
func (s *MenuService) invalidateCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate menu cache: %v", err)
	}
}

// cachedItems returns the full menu list, from redis when possible. Cache
// failures fall through to the database; they are never surfaced.
func (s *MenuService) cachedItems(ctx context.Context) ([]models.MenuItem, error) {
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, menuCacheKey).Bytes()
		if err == nil {
			var items []models.MenuItem
			if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
				return items, nil
			}
		}
	}

	var items []models.MenuItem
	if err := s.DB.Order("id").Find(&items).Error; err != nil {
		return nil, Internal(err)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.Cache.Set(ctx, menuCacheKey, raw, menuCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache menu list: %v", err)
			}
		}
	}
	return items, nil
}

// Create inserts a menu item, uploading the dish photo when one is given.
// Names are unique across the menu.
func (s *MenuService) Create(ctx context.Context, input MenuItemInput, image *multipart.FileHeader) (*models.MenuItem, error) {
	if input.Name == "" {
		return nil, Validation("item name is required")
	}

	var count int64
	if err := s.DB.Model(&models.MenuItem{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, Internal(err)
	}
	if count > 0 {
		return nil, Conflict("a menu item named %q already exists", input.Name)
	}

	item := models.MenuItem{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Price:       input.Price,
		Status:      input.Status,
	}
	if item.Status == "" {
		item.Status = "available"
	}

	if image != nil {
		images := GetImageService()
		if images == nil {
			return nil, Validation("image uploads are not configured")
		}
		key, err := images.UploadImage(image)
		if err != nil {
			return nil, Validation("%s", err.Error())
		}
		item.ImageS3Key = &key
	}

	if err := s.DB.Create(&item).Error; err != nil {
		return nil, Internal(err)
	}

	s.invalidateCache(ctx)
	attachImageURL(&item)
	return &item, nil
}

// List returns one page of menu items, optionally filtered by name
// substring. Unfiltered reads come from the cache when available.
func (s *MenuService) List(ctx context.Context, nameFilter string, page, limit int) (*MenuItemList, error) {
	if nameFilter != "" {
		query := s.DB.Model(&models.MenuItem{}).Where("name LIKE ?", "%"+nameFilter+"%")

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, Internal(err)
		}

		metadata := newPagination(page, limit, total)
		var items []models.MenuItem
		if err := query.Order("id").Limit(metadata.Limit).Offset(metadata.offset()).Find(&items).Error; err != nil {
			return nil, Internal(err)
		}
		for i := range items {
			attachImageURL(&items[i])
		}
		return &MenuItemList{Items: items, Metadata: metadata}, nil
	}

	items, err := s.cachedItems(ctx)
	if err != nil {
		return nil, err
	}

	metadata := newPagination(page, limit, int64(len(items)))
	start := metadata.offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + metadata.Limit
	if end > len(items) {
		end = len(items)
	}

	pageItems := items[start:end]
	for i := range pageItems {
		attachImageURL(&pageItems[i])
	}
	return &MenuItemList{Items: pageItems, Metadata: metadata}, nil
}

// Get returns one menu item by id.
func (s *MenuService) Get(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("menu item %d does not exist", id)
		}
		return nil, Internal(err)
	}
	attachImageURL(&item)
	return &item, nil
}

// Update edits a menu item. A replacement photo deletes the previous S3
// object after the new one is stored.
func (s *MenuService) Update(ctx context.Context, id uint, input MenuItemInput, image *multipart.FileHeader) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("menu item %d does not exist", id)
		}
		return nil, Internal(err)
	}

	if input.Name != "" && input.Name != item.Name {
		var count int64
		if err := s.DB.Model(&models.MenuItem{}).Where("name = ? AND id <> ?", input.Name, id).Count(&count).Error; err != nil {
			return nil, Internal(err)
		}
		if count > 0 {
			return nil, Conflict("a menu item named %q already exists", input.Name)
		}
		item.Name = input.Name
	}
	if input.Type != "" {
		item.Type = input.Type
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if !input.Price.IsZero() {
		item.Price = input.Price
	}
	if input.Status != "" {
		item.Status = input.Status
	}

	var oldKey *string
	if image != nil {
		images := GetImageService()
		if images == nil {
			return nil, Validation("image uploads are not configured")
		}
		key, err := images.UploadImage(image)
		if err != nil {
			return nil, Validation("%s", err.Error())
		}
		oldKey = item.ImageS3Key
		item.ImageS3Key = &key
	}

	if err := s.DB.Save(&item).Error; err != nil {
		return nil, Internal(err)
	}

	if oldKey != nil {
		if err := GetImageService().DeleteImage(*oldKey); err != nil {
			log.Printf("Failed to delete replaced image %s: %v", *oldKey, err)
		}
	}

	s.invalidateCache(ctx)
	attachImageURL(&item)
	return &item, nil
}

// Delete removes a menu item and its photo.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("menu item %d does not exist", id)
		}
		return Internal(err)
	}

	if err := s.DB.Delete(&item).Error; err != nil {
		return Internal(err)
	}

	if item.ImageS3Key != nil {
		if images := GetImageService(); images != nil {
			if err := images.DeleteImage(*item.ImageS3Key); err != nil {
				log.Printf("Failed to delete image %s: %v", *item.ImageS3Key, err)
			}
		}
	}

	s.invalidateCache(ctx)
	return nil
}
