package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"go-restaurant-backoffice/config"
	"go-restaurant-backoffice/models"
	"go-restaurant-backoffice/ws"
)

var validate = validator.New()

type CreateMenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImagePath   *string `json:"imagePath"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImagePath   *string  `json:"imagePath"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
}

func GetMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var menuItems []models.MenuItem
		query := db
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if err := query.Find(&menuItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		c.JSON(http.StatusOK, menuItems)
	}
}

// GetPopularMenuItems returns the most recently created items. Recency is
// the stand-in for popularity, matching the dashboard's expectation.
func GetPopularMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 5
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = parsed
		}

		var menuItems []models.MenuItem
		if err := db.Order("created_at desc").Limit(limit).Find(&menuItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		c.JSON(http.StatusOK, menuItems)
	}
}

func GetMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu item"})
			return
		}
		c.JSON(http.StatusOK, menuItem)
	}
}

func CreateMenuItem(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		menuItem := models.MenuItem{
			Name:        req.Name,
			Price:       req.Price,
			ImagePath:   req.ImagePath,
			Description: req.Description,
			Category:    req.Category,
		}
		if err := db.Create(&menuItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}

		hub.Publish("menuItem:created", menuItem)
		c.JSON(http.StatusCreated, menuItem)
	}
}

// CreateMenuItemWithImage accepts a multipart form with an "image" file and
// the menu item fields, stores the file and records its public path.
func CreateMenuItemWithImage(db *gorm.DB, hub *ws.Hub, upload config.UploadConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no image file uploaded"})
			return
		}

		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		imagePath, err := saveUpload(c, file, upload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "saving image failed"})
			return
		}

		menuItem := models.MenuItem{
			Name:        name,
			Price:       price,
			ImagePath:   &imagePath,
			Description: optionalForm(c, "description"),
			Category:    optionalForm(c, "category"),
		}
		if err := db.Create(&menuItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}

		hub.Publish("menuItem:created", menuItem)
		c.JSON(http.StatusCreated, menuItem)
	}
}

func UpdateMenuItem(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		var req UpdateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu item"})
			return
		}

		if req.Name != nil {
			menuItem.Name = *req.Name
		}
		if req.Price != nil {
			menuItem.Price = *req.Price
		}
		if req.ImagePath != nil {
			menuItem.ImagePath = req.ImagePath
		}
		if req.Description != nil {
			menuItem.Description = req.Description
		}
		if req.Category != nil {
			menuItem.Category = req.Category
		}

		if err := db.Save(&menuItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}

		hub.Publish("menuItem:updated", menuItem)
		c.JSON(http.StatusOK, menuItem)
	}
}

func UpdateMenuItemWithImage(db *gorm.DB, hub *ws.Hub, upload config.UploadConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu item"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no image file uploaded"})
			return
		}

		imagePath, err := saveUpload(c, file, upload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "saving image failed"})
			return
		}
		menuItem.ImagePath = &imagePath

		if name := c.PostForm("name"); name != "" {
			menuItem.Name = name
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			menuItem.Price = price
		}
		if description := optionalForm(c, "description"); description != nil {
			menuItem.Description = description
		}
		if category := optionalForm(c, "category"); category != nil {
			menuItem.Category = category
		}

		if err := db.Save(&menuItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}

		hub.Publish("menuItem:updated", menuItem)
		c.JSON(http.StatusOK, menuItem)
	}
}

// GetMenuItemImage serves the stored image bytes with a content type derived
// from the file extension.
func GetMenuItemImage(db *gorm.DB, upload config.UploadConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, id).Error; err != nil || menuItem.ImagePath == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item image not found"})
			return
		}

		imageFilePath := filepath.Join(upload.Dir, filepath.Base(*menuItem.ImagePath))
		imageBytes, err := os.ReadFile(imageFilePath)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item image not found"})
			return
		}

		c.Data(http.StatusOK, ContentTypeForExtension(filepath.Ext(imageFilePath)), imageBytes)
	}
}

// DeleteMenuItem removes a menu item. Order items that referenced it keep
// their copied price but lose the reference, so orders survive menu edits.
func DeleteMenuItem(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the menu item"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.OrderItem{}).
				Where("menu_item_id = ?", menuItem.ID).
				Update("menu_item_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&models.MenuItem{}, menuItem.ID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item delete failed"})
			return
		}

		hub.Publish("menuItem:deleted", ws.DeletedPayload{ID: menuItem.ID})
		c.Status(http.StatusNoContent)
	}
}

// UploadFilename builds a collision-resistant name for a stored image:
// millisecond timestamp prefix plus the whitespace-stripped original name.
func UploadFilename(original string, now time.Time) string {
	cleaned := strings.Join(strings.Fields(original), "-")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), cleaned)
}

// ContentTypeForExtension maps image file extensions to MIME types.
// Unknown extensions fall back to a generic binary type.
func ContentTypeForExtension(extension string) string {
	switch strings.ToLower(extension) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func saveUpload(c *gin.Context, file *multipart.FileHeader, upload config.UploadConfig) (string, error) {
	if err := os.MkdirAll(upload.Dir, 0o755); err != nil {
		return "", err
	}
	filename := UploadFilename(file.Filename, time.Now())
	if err := c.SaveUploadedFile(file, filepath.Join(upload.Dir, filename)); err != nil {
		return "", err
	}
	return upload.PublicPrefix + "/" + filename, nil
}

func optionalForm(c *gin.Context, key string) *string {
	if value := c.PostForm(key); value != "" {
		return &value
	}
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
