package controllers

import (
	"errors"
	"net/http"
	"strings"

	"farmigo/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerController struct {
	DB *gorm.DB
}

var errInvalidOrderItem = errors.New("invalid item or insufficient stock")

func (cc *CustomerController) Market(context *gin.Context) {
	search := strings.TrimSpace(context.Query("search"))

	query := cc.DB.Where("available = ?", true)
	if search != "" {
		query = query.Where("crop_name ILIKE ?", "%"+search+"%")
	}

	var items []models.Inventory
	if res := query.Find(&items); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not load market"})
		context.Abort()
		return
	}

	schemas := make([]MarketItemSchema, 0, len(items))
	for _, item := range items {
		schemas = append(schemas, MarketItemSchema{
			ID:       item.ID,
			Crop:     CropRefSchema{Name: item.CropName},
			Price:    item.Price,
			Quantity: item.Quantity,
			FarmerID: item.FarmerID,
			ImageURL: item.ImageURL,
		})
	}
	context.JSON(http.StatusOK, gin.H{"items": schemas})
}

// CreateOrder validates every requested line against freshly read listing
// state, snapshots prices, and decrements stock, all inside one transaction.
// Listings are locked with SELECT ... FOR UPDATE so concurrent placements
// against the same listing serialize instead of both reading stale stock.
func (cc *CustomerController) CreateOrder(context *gin.Context) {
	userID := context.MustGet("user_id").(uint)

	var payload OrderPayload
	if err := context.ShouldBindJSON(&payload); err != nil || len(payload.Items) == 0 {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "No items"})
		context.Abort()
		return
	}

	type orderLine struct {
		listing models.Inventory
		qty     int
	}

	var orderID uint
	var total float64

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		var prepared []orderLine
		total = 0
		for _, entry := range payload.Items {
			if entry.Quantity <= 0 {
				return errInvalidOrderItem
			}
			var listing models.Inventory
			res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND available = ?", entry.InventoryID, true).
				First(&listing)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrRecordNotFound) {
					return errInvalidOrderItem
				}
				return res.Error
			}
			if listing.Quantity < entry.Quantity {
				return errInvalidOrderItem
			}
			total += listing.Price * float64(entry.Quantity)
			prepared = append(prepared, orderLine{listing: listing, qty: entry.Quantity})
		}

		order := models.Order{CustomerID: userID, TotalAmount: total}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range prepared {
			item := models.OrderItem{
				OrderID:     order.ID,
				InventoryID: line.listing.ID,
				Quantity:    line.qty,
				Price:       line.listing.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			result := tx.Model(&models.Inventory{}).
				Where("id = ? AND quantity >= ?", line.listing.ID, line.qty).
				Update("quantity", gorm.Expr("quantity - ?", line.qty))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errInvalidOrderItem
			}

			result = tx.Model(&models.Inventory{}).
				Where("id = ? AND quantity = 0", line.listing.ID).
				Update("available", false)
			if result.Error != nil {
				return result.Error
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, errInvalidOrderItem) {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid item or insufficient stock"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not place the order"})
		context.Abort()
		return
	}

	context.JSON(http.StatusCreated, OrderResponse{OrderID: orderID, Total: total})
}
