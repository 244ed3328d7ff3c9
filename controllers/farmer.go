package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"farmigo/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FarmerController struct {
	DB        *gorm.DB
	UploadDir string
}

func (fc *FarmerController) ListInventory(context *gin.Context) {
	userID := context.MustGet("user_id").(uint)

	var items []models.Inventory
	if res := fc.DB.Where("farmer_id = ?", userID).Find(&items); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not load inventory"})
		context.Abort()
		return
	}

	schemas := make([]InventoryItemSchema, 0, len(items))
	for _, item := range items {
		schemas = append(schemas, InventoryItemSchema{
			ID:        item.ID,
			Crop:      CropRefSchema{Name: item.CropName},
			Price:     item.Price,
			Quantity:  item.Quantity,
			Available: item.Available,
			ImageURL:  item.ImageURL,
		})
	}
	context.JSON(http.StatusOK, gin.H{"items": schemas})
}

func (fc *FarmerController) ListCrops(context *gin.Context) {
	var crops []models.Crop
	if res := fc.DB.Order("name asc").Find(&crops); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not load crops"})
		context.Abort()
		return
	}
	schemas := make([]CropSchema, 0, len(crops))
	for _, crop := range crops {
		schemas = append(schemas, CropSchema{Crop: crop.Code, Name: crop.Name, Description: crop.Description})
	}
	context.JSON(http.StatusOK, gin.H{"crops": schemas})
}

func (fc *FarmerController) CreateInventory(context *gin.Context) {
	userID := context.MustGet("user_id").(uint)

	var cropName, imageURL string
	var price *float64
	var quantity *int

	if strings.HasPrefix(context.ContentType(), "multipart/form-data") {
		cropName = strings.TrimSpace(context.PostForm("cropName"))
		if raw, ok := context.GetPostForm("price"); ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				price = &parsed
			}
		}
		if raw, ok := context.GetPostForm("quantity"); ok {
			if parsed, err := strconv.Atoi(raw); err == nil {
				quantity = &parsed
			}
		}
		if file, err := context.FormFile("image"); err == nil {
			// A file with an unrecognized extension is skipped and the
			// listing is created without an image.
			url, saveErr := saveUpload(context, file, fc.UploadDir)
			if saveErr != nil && !errors.Is(saveErr, errBadImageType) {
				context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not save image"})
				context.Abort()
				return
			}
			imageURL = url
		}
	} else {
		var payload CreateInventoryPayload
		if err := context.ShouldBindJSON(&payload); err != nil {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
			context.Abort()
			return
		}
		cropName = strings.TrimSpace(payload.CropName)
		price = payload.Price
		quantity = payload.Quantity
		imageURL = payload.ImageURL
	}

	if price == nil || quantity == nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		context.Abort()
		return
	}
	if cropName == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Provide cropName"})
		context.Abort()
		return
	}

	item := models.Inventory{
		FarmerID:  userID,
		CropName:  cropName,
		Price:     *price,
		Quantity:  *quantity,
		Available: true,
		ImageURL:  imageURL,
	}
	if err := fc.DB.Create(&item).Error; err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not create listing"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"id": item.ID, "imageUrl": item.ImageURL})
}

// findOwnListing looks a listing up scoped to the authenticated farmer, so a
// non-owner's request reports not-found rather than forbidden.
func (fc *FarmerController) findOwnListing(context *gin.Context) (models.Inventory, bool) {
	userID := context.MustGet("user_id").(uint)
	itemID, err := strconv.Atoi(context.Param("id"))
	if err != nil {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		context.Abort()
		return models.Inventory{}, false
	}

	var item models.Inventory
	if res := fc.DB.Where("id = ? AND farmer_id = ?", itemID, userID).First(&item); res.Error != nil {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		context.Abort()
		return models.Inventory{}, false
	}
	return item, true
}

func (fc *FarmerController) UpdateInventory(context *gin.Context) {
	item, ok := fc.findOwnListing(context)
	if !ok {
		return
	}

	updates := map[string]interface{}{}

	if strings.HasPrefix(context.ContentType(), "multipart/form-data") {
		if raw, present := context.GetPostForm("price"); present {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				updates["price"] = parsed
			}
		}
		if raw, present := context.GetPostForm("quantity"); present {
			if parsed, err := strconv.Atoi(raw); err == nil {
				updates["quantity"] = parsed
			}
		}
		if raw, present := context.GetPostForm("available"); present {
			updates["available"] = raw == "1" || strings.EqualFold(raw, "true")
		}
		if file, err := context.FormFile("image"); err == nil {
			if url, saveErr := saveUpload(context, file, fc.UploadDir); saveErr == nil {
				updates["image_url"] = url
			}
		}
	} else {
		var payload UpdateInventoryPayload
		if err := context.ShouldBindJSON(&payload); err != nil {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
			context.Abort()
			return
		}
		if payload.Price != nil {
			updates["price"] = *payload.Price
		}
		if payload.Quantity != nil {
			updates["quantity"] = *payload.Quantity
		}
		if payload.Available != nil {
			updates["available"] = *payload.Available
		}
		if payload.ImageURL != nil {
			updates["image_url"] = *payload.ImageURL
		}
	}

	if len(updates) > 0 {
		if err := fc.DB.Model(&item).Updates(updates).Error; err != nil {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not update listing"})
			context.Abort()
			return
		}
		if url, present := updates["image_url"].(string); present {
			item.ImageURL = url
		}
	}
	context.JSON(http.StatusOK, gin.H{"status": "updated", "imageUrl": item.ImageURL})
}

func (fc *FarmerController) DeleteInventory(context *gin.Context) {
	item, ok := fc.findOwnListing(context)
	if !ok {
		return
	}

	// Hard delete; order items keep their snapshot reference.
	if err := fc.DB.Unscoped().Delete(&item).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete listing"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
