package controllers

import (
	"net/http"
	"time"

	"farmigo/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

// Stats computes the dashboard rollups at request time. This is a reporting
// view over the live tables, not an incrementally maintained aggregate.
func (ac *AdminController) Stats(context *gin.Context) {
	var stats StatsSchema

	if err := ac.DB.Model(&models.User{}).
		Where("role = ?", models.RoleFarmer).
		Count(&stats.NumFarmers).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if err := ac.DB.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&stats.NumCustomers).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if err := ac.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSales).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if err := ac.DB.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.ItemsSold).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if err := ac.DB.Model(&models.Inventory{}).
		Where("available = ?", true).
		Count(&stats.ActiveListings).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}

	// Trailing six calendar months; months without orders stay absent.
	now := time.Now().UTC()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	type monthlyRow struct {
		Year  int
		Month int
		Total float64
	}
	var monthlyRows []monthlyRow
	if err := ac.DB.Model(&models.Order{}).
		Select("EXTRACT(YEAR FROM created_at)::int AS year, EXTRACT(MONTH FROM created_at)::int AS month, COALESCE(SUM(total_amount), 0) AS total").
		Where("created_at >= ?", windowStart).
		Group("year, month").
		Order("year, month").
		Scan(&monthlyRows).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	stats.MonthlySales = make([]MonthlySalesSchema, 0, len(monthlyRows))
	for _, row := range monthlyRows {
		stats.MonthlySales = append(stats.MonthlySales, MonthlySalesSchema{
			Month: time.Month(row.Month).String()[:3],
			Year:  row.Year,
			Sales: row.Total,
		})
	}

	type cropRow struct {
		Name     string
		Quantity int
	}
	var cropRows []cropRow
	if err := ac.DB.Model(&models.OrderItem{}).
		Select("inventory.crop_name AS name, COALESCE(SUM(order_items.quantity), 0) AS quantity").
		Joins("join inventory on inventory.id = order_items.inventory_id").
		Group("inventory.crop_name").
		Order("quantity DESC").
		Limit(6).
		Scan(&cropRows).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	stats.CropsInDemand = make([]CropDemandSchema, 0, len(cropRows))
	for _, row := range cropRows {
		stats.CropsInDemand = append(stats.CropsInDemand, CropDemandSchema{Name: row.Name, Quantity: row.Quantity})
	}

	type farmerRow struct {
		Name   string
		Sales  float64
		Orders int
	}
	var farmerRows []farmerRow
	if err := ac.DB.Model(&models.OrderItem{}).
		Select("users.name AS name, COALESCE(SUM(order_items.quantity * order_items.price), 0) AS sales, COUNT(DISTINCT order_items.order_id) AS orders").
		Joins("join inventory on inventory.id = order_items.inventory_id").
		Joins("join users on users.id = inventory.farmer_id").
		Where("users.role = ?", models.RoleFarmer).
		Group("users.id, users.name").
		Order("sales DESC").
		Limit(5).
		Scan(&farmerRows).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	stats.TopFarmers = make([]TopFarmerSchema, 0, len(farmerRows))
	for _, row := range farmerRows {
		stats.TopFarmers = append(stats.TopFarmers, TopFarmerSchema{Name: row.Name, Sales: row.Sales, Orders: row.Orders})
	}

	context.JSON(http.StatusOK, stats)
}
