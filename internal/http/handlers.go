package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// Services набор сервисов, которые HTTP-слой комбинирует
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Orders   *service.OrderService
	Session  *service.SessionService
	Admin    *service.AdminService
	Checkout *service.CheckoutService
}

type Server struct {
	engine *gin.Engine
	svc    Services
	log    *zap.Logger
}

func NewServer(svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestID(), accessLog(logger), gin.Recovery())
	s := &Server{engine: r, svc: svc, log: logger}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", s.requireAdmin, s.createProduct)
		products.PUT(":id", s.requireAdmin, s.updateProduct)
		products.DELETE(":id", s.requireAdmin, s.deleteProduct)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.DELETE("", s.clearCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items", s.setCartQuantity)
		cart.DELETE("/items", s.removeCartItem)
		cart.PUT("/priority", s.setPriority)

		session := v1.Group("/session")
		session.GET("", s.getSession)
		session.POST("/login", s.login)
		session.POST("/logout", s.logout)
		session.POST("/prompted", s.markPrompted)

		v1.POST("/checkout", s.checkout)

		orders := v1.Group("/orders")
		orders.GET("", s.listMyOrders)
		orders.GET(":id", s.getOrder)
		orders.GET(":id/track", s.trackOrder)
		orders.POST(":id/received", s.markReceived)

		admin := v1.Group("/admin")
		admin.POST("/login", s.adminLogin)
		admin.POST("/logout", s.adminLogout)
		gated := admin.Group("", s.requireAdmin)
		gated.GET("/orders", s.adminOrders)
		gated.GET("/stats", s.adminStats)
		gated.POST("/orders/:id/delivered", s.markDelivered)
	}
}

// requireAdmin consults the admin gate; it is not an authentication mechanism.
func (s *Server) requireAdmin(c *gin.Context) {
	if !s.svc.Admin.IsAuthenticated(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
		return
	}
	c.Next()
}

// Product handlers
type productReq struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    domain.Category `json:"category" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Colors      []string        `json:"colors"`
	Sizes       []string        `json:"sizes"`
	Featured    bool            `json:"featured"`
	NewArrival  bool            `json:"newArrival"`
}

func (r productReq) toProduct(id string) domain.Product {
	p := domain.Product{
		ID:          id,
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Description: r.Description,
		Image:       r.Image,
		Colors:      r.Colors,
		Sizes:       r.Sizes,
		Featured:    r.Featured,
		NewArrival:  r.NewArrival,
	}
	// admin form defaults
	if len(p.Colors) == 0 {
		p.Colors = []string{"black", "white"}
	}
	if len(p.Sizes) == 0 {
		p.Sizes = []string{"S", "M", "L"}
	}
	if p.Image == "" {
		p.Image = "/placeholder.svg"
	}
	return p
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Search name, description or category"
// @Param category query string false "men, women or accessories"
// @Param featured query bool false "Only featured"
// @Param new query bool false "Only new arrivals"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	f := service.ProductFilter{
		Query:    c.Query("q"),
		Category: domain.Category(c.Query("category")),
	}
	if f.Category != "" && !f.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}
	f.Featured, _ = strconv.ParseBool(c.Query("featured"))
	f.NewArrival, _ = strconv.ParseBool(c.Query("new"))
	list, err := s.svc.Catalog.Find(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.svc.Catalog.GetByID(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.svc.Catalog.Create(c, req.toProduct(""))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Replace product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body productReq true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.svc.Catalog.Update(c, req.toProduct(c.Param("id")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.svc.Catalog.Delete(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNameMismatch):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
