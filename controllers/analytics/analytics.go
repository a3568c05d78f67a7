package analyticsControllers

import (
	"net/http"
	"sort"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const lowStockThreshold = 5

type topProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// GET /admin/dashboard — headline counts for the admin landing page.
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var productCount, categoryCount, orderCount, pendingCount, customerCount int64

		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
			return
		}
		db.Model(&models.Category{}).Count(&categoryCount)
		db.Model(&models.Order{}).Count(&orderCount)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingCount)
		db.Model(&models.User{}).Count(&customerCount)

		var lowStock []models.Product
		db.Where("stock <= ?", lowStockThreshold).Order("stock ASC").Find(&lowStock)

		c.JSON(http.StatusOK, gin.H{
			"total_products":     productCount,
			"total_categories":   categoryCount,
			"total_orders":       orderCount,
			"pending_orders":     pendingCount,
			"total_customers":    customerCount,
			"low_stock_products": lowStock,
		})
	}
}

// GET /admin/analytics — revenue figures and top sellers, aggregated from
// the orders actually placed.
func GetAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
			return
		}

		totalRevenue := decimal.Zero
		for _, o := range orders {
			totalRevenue = totalRevenue.Add(decimal.NewFromFloat(o.Total))
		}

		totalOrders := len(orders)
		averageOrderValue := decimal.Zero
		if totalOrders > 0 {
			averageOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(totalOrders))).Round(2)
		}

		var customerCount int64
		db.Model(&models.User{}).Count(&customerCount)

		conversionRate := decimal.Zero
		if customerCount > 0 {
			conversionRate = decimal.NewFromInt(int64(totalOrders)).
				Div(decimal.NewFromInt(customerCount)).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}

		topProducts := aggregateTopProducts(orders, 5)

		recent := orders
		if len(recent) > 5 {
			recent = recent[:5]
		}

		revenue, _ := totalRevenue.Round(2).Float64()
		aov, _ := averageOrderValue.Float64()
		conversion, _ := conversionRate.Float64()

		c.JSON(http.StatusOK, gin.H{
			"total_revenue":       revenue,
			"total_orders":        totalOrders,
			"average_order_value": aov,
			"total_customers":     customerCount,
			"conversion_rate":     conversion,
			"top_products":        topProducts,
			"recent_orders":       recent,
		})
	}
}

// aggregateTopProducts ranks products by units actually sold across all
// order snapshots.
func aggregateTopProducts(orders []models.Order, limit int) []topProduct {
	byProduct := make(map[uint]*topProduct)
	for _, o := range orders {
		for _, item := range o.Items {
			tp, ok := byProduct[item.ProductID]
			if !ok {
				tp = &topProduct{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = tp
			}
			tp.UnitsSold += item.Quantity
			line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
			revenue, _ := decimal.NewFromFloat(tp.Revenue).Add(line).Round(2).Float64()
			tp.Revenue = revenue
		}
	}

	ranked := make([]topProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		ranked = append(ranked, *tp)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].UnitsSold > ranked[j].UnitsSold
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
