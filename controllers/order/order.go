package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type BuyNowLine struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Pincode      string `json:"pincode"`
	Instructions string `json:"instructions"`

	PaymentMethod string `json:"paymentMethod"`
	// CardNumber is never stored; only its last 4 digits end up on the order.
	CardNumber string `json:"cardNumber"`

	// BuyNow skips the cart and orders a single product directly.
	BuyNow *BuyNowLine `json:"buyNow"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// Checkout rejections the caller can act on. Anything PlaceOrder returns
// outside this set is an internal failure.
var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrMissingShipping   = errors.New("all shipping fields are required")
	ErrBadPaymentMethod  = errors.New("invalid payment method")
	ErrCODDisabled       = errors.New("cash on delivery is currently disabled")
	ErrProductNotFound   = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func checkoutRejection(err error) bool {
	for _, rejection := range []error{
		ErrCartEmpty, ErrMissingShipping, ErrBadPaymentMethod,
		ErrCODDisabled, ErrProductNotFound, ErrInsufficientStock,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}

// -------- Helpers --------

func validPaymentMethod(m string) bool {
	switch m {
	case models.PaymentMethodCOD, models.PaymentMethodUPI,
		models.PaymentMethodCard, models.PaymentMethodNetBanking:
		return true
	}
	return false
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// flattenAddress joins the form fields the way orders store them:
// "street address, city - pincode".
func flattenAddress(address, city, pincode string) string {
	return address + ", " + city + " - " + pincode
}

func cardLast4(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// -------- Core Logic --------

// PlaceOrder runs the checkout pipeline: validate the shipping form, upsert
// the customer profile, snapshot the cart (or buy-now line) into an immutable
// order with status Pending, deduct stock, and clear the cart. The profile
// write and the order write are independent; only the order write itself is
// transactional.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	for _, field := range []string{req.CustomerName, req.Email, req.Phone, req.Address, req.City, req.Pincode} {
		if strings.TrimSpace(field) == "" {
			return nil, ErrMissingShipping
		}
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentMethodCOD
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return nil, ErrBadPaymentMethod
	}
	if req.PaymentMethod == models.PaymentMethodCOD {
		var settings models.StoreSettings
		if err := db.First(&settings).Error; err == nil && !settings.CODEnabled {
			return nil, ErrCODDisabled
		}
	}

	isGuest := strings.HasPrefix(userID, "guest_")

	// Profile upsert (merge) for signed-in customers; for anonymous checkout
	// an unseen email becomes a new customer record. Failures here do not
	// roll back, and the order write below does not wait on this.
	if userID != "" && !isGuest {
		upsertCustomerProfile(db, userID, req)
	} else {
		ensureCustomerRecord(db, req)
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		items, clearCart, err := collectOrderItems(tx, userID, isGuest, req)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		// Lock product rows, verify and deduct stock. SQLite has no
		// SELECT FOR UPDATE; its transactions already serialize writers.
		for _, item := range items {
			productQuery := tx
			if tx.Dialector.Name() == "postgres" {
				productQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var product models.Product
			if err := productQuery.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		paymentStatus := models.PaymentStatusPending
		paymentDetails := ""
		switch req.PaymentMethod {
		case models.PaymentMethodCOD:
			// settled at the door
		case models.PaymentMethodCard:
			paymentStatus = models.PaymentStatusPaid
			paymentDetails = "Card ending " + cardLast4(req.CardNumber)
		default:
			// UPI and net banking are simulated; no gateway is called
			paymentStatus = models.PaymentStatusPaid
		}

		newOrder := models.Order{
			OrderRef:       generateOrderRef(),
			UserID:         userID,
			CustomerName:   req.CustomerName,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        flattenAddress(req.Address, req.City, req.Pincode),
			Instructions:   req.Instructions,
			Items:          items,
			Total:          models.OrderItemsTotal(items),
			Status:         models.OrderStatusPending,
			PaymentMethod:  req.PaymentMethod,
			PaymentStatus:  paymentStatus,
			PaymentDetails: paymentDetails,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return err
		}

		if clearCart != nil {
			if err := clearCart(); err != nil {
				return err
			}
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastOrderEvent("order_created", *order)
	return order, nil
}

// collectOrderItems turns the buy-now line or the caller's cart into order
// item snapshots, plus a callback that empties the consumed cart.
func collectOrderItems(tx *gorm.DB, userID string, isGuest bool, req PlaceOrderRequest) ([]models.OrderItem, func() error, error) {
	if req.BuyNow != nil {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.BuyNow.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, ErrProductNotFound
			}
			return nil, nil, err
		}
		item := models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			Price:        product.Price,
			Quantity:     req.BuyNow.Quantity,
		}
		return []models.OrderItem{item}, nil, nil
	}

	if userID == "" {
		return nil, nil, ErrCartEmpty
	}

	if isGuest {
		var cart models.GuestCart
		if err := tx.Preload("Items").Where("guest_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, ErrCartEmpty
			}
			return nil, nil, err
		}
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			items = append(items, models.OrderItem{
				ProductID:    line.ProductID,
				ProductName:  line.ProductName,
				ProductImage: line.ProductImage,
				Price:        line.Price,
				Quantity:     line.Quantity,
			})
		}
		clear := func() error {
			return tx.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error
		}
		return items, clear, nil
	}

	var cart models.Cart
	if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrCartEmpty
		}
		return nil, nil, err
	}
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Price:        line.Price,
			Quantity:     line.Quantity,
		})
	}
	clear := func() error {
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	}
	return items, clear, nil
}

// upsertCustomerProfile merges the shipping form into the user document;
// fields not on the form stay untouched.
func upsertCustomerProfile(db *gorm.DB, userID string, req PlaceOrderRequest) {
	db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":    req.CustomerName,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
		"city":    req.City,
		"pincode": req.Pincode,
	})
}

// ensureCustomerRecord creates a customer row for anonymous checkouts with an
// email we have not seen before.
func ensureCustomerRecord(db *gorm.DB, req PlaceOrderRequest) {
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err != gorm.ErrRecordNotFound {
		return
	}
	db.Create(&models.User{
		ID:      uuid.NewString(),
		Email:   req.Email,
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: flattenAddress(req.Address, req.City, req.Pincode),
		Role:    "customer",
	})
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID := ""
		if v, ok := c.Get("user_id"); ok {
			userID, _ = v.(string)
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			if checkoutRejection(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Order placed successfully",
			"order_id":  order.ID,
			"order_ref": order.OrderRef,
			"order":     order,
		})
	}
}

// GET /admin/orders?status=Pending
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")

		if status := c.Query("status"); status != "" && status != "All" {
			s, ok := models.ValidOrderStatus(status)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
				return
			}
			query = query.Where("status = ?", s)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders — the orders owned by the calling user, newest first.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID — numeric id or order ref. Refs are not numeric, so
// the two lookups must not share a WHERE clause: postgres refuses to cast a
// ref string to the bigint id column.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		query := db.Preload("Items")
		if numericID, err := strconv.ParseUint(id, 10, 64); err == nil {
			query = query.Where("id = ?", numericID)
		} else {
			query = query.Where("order_ref = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
// Membership in the status enum is checked; transitions are not — any status
// can be set from any other.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := models.ValidOrderStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		order.Status = newStatus
		broadcastOrderEvent("status_updated", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := models.ValidPaymentStatus(req.PaymentStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
			return
		}
		result := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var deleted int64
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", orderID).Delete(&models.Order{})
			deleted = result.RowsAffected
			return result.Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		if deleted == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
