package httpapi

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// cartLineView позиция корзины с округлёнными суммами
type cartLineView struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	LineTotal string `json:"lineTotal"`
}

type cartView struct {
	Items            []cartLineView `json:"items"`
	ItemCount        int            `json:"itemCount"`
	Subtotal         string         `json:"subtotal"`
	Total            string         `json:"total"`
	PriorityDelivery bool           `json:"priorityDelivery"`
}

func newCartView(sum domain.CartSummary) cartView {
	v := cartView{
		Items:            make([]cartLineView, 0, len(sum.Lines)),
		ItemCount:        sum.ItemCount,
		Subtotal:         domain.RoundCents(sum.Subtotal).StringFixed(2),
		Total:            domain.RoundCents(sum.Total).StringFixed(2),
		PriorityDelivery: sum.PriorityDelivery,
	}
	for _, l := range sum.Lines {
		v.Items = append(v.Items, cartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Image:     l.Image,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
			LineTotal: domain.RoundCents(l.LineTotal()).StringFixed(2),
		})
	}
	return v
}

// orderView заказ с суммой, округлённой до центов
type orderView struct {
	ID                string             `json:"id"`
	CustomerName      string             `json:"customerName"`
	Items             []cartLineView     `json:"items"`
	Address           string             `json:"address"`
	Phone             string             `json:"phone"`
	Email             string             `json:"email,omitempty"`
	PriorityDelivery  bool               `json:"priorityDelivery"`
	Total             string             `json:"total"`
	Status            domain.OrderStatus `json:"status"`
	CreatedAt         time.Time          `json:"createdAt"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
}

func newOrderView(o *domain.Order) orderView {
	return orderView{
		ID:                o.ID,
		CustomerName:      o.CustomerName,
		Items:             newCartView(domain.CartSummary{Lines: o.Items}).Items,
		Address:           o.Address,
		Phone:             o.Phone,
		Email:             o.Email,
		PriorityDelivery:  o.PriorityDelivery,
		Total:             domain.RoundCents(o.Total).StringFixed(2),
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

func newOrderViews(list []domain.Order) []orderView {
	out := make([]orderView, 0, len(list))
	for i := range list {
		out = append(out, newOrderView(&list[i]))
	}
	return out
}

type cartItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type cartQuantityReq struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

type priorityReq struct {
	Enabled bool `json:"enabled"`
}

// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartView(s.svc.Cart.Snapshot(c)))
}

// @Summary Add product to cart
// @Description Size and color default to the product's first option.
// @Tags cart
// @Accept json
// @Produce json
// @Param input body cartItemReq true "Cart item"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.svc.Catalog.GetByID(c, req.ProductID)
	if err != nil {
		s.fail(c, err)
		return
	}
	size, err := pickOption("size", req.Size, p.Sizes)
	if err != nil {
		s.fail(c, err)
		return
	}
	color, err := pickOption("color", req.Color, p.Colors)
	if err != nil {
		s.fail(c, err)
		return
	}
	line := domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Size:      size,
		Color:     color,
	}
	if err := s.svc.Cart.Add(c, line); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(s.svc.Cart.Snapshot(c)))
}

func pickOption(field, chosen string, options []string) (string, error) {
	if blank(chosen) {
		if len(options) == 0 {
			return "", nil
		}
		return options[0], nil
	}
	if len(options) > 0 && !slices.Contains(options, chosen) {
		return "", fmt.Errorf("%w: %s %q is not offered", service.ErrInvalidInput, field, chosen)
	}
	return chosen, nil
}

// @Summary Set cart line quantity
// @Description A quantity of zero or less removes the line.
// @Tags cart
// @Accept json
// @Produce json
// @Param input body cartQuantityReq true "Line and quantity"
// @Success 200 {object} cartView
// @Router /cart/items [put]
func (s *Server) setCartQuantity(c *gin.Context) {
	var req cartQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Cart.SetQuantity(c, req.ProductID, req.Size, req.Color, *req.Quantity); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(s.svc.Cart.Snapshot(c)))
}

// @Summary Remove cart line
// @Tags cart
// @Accept json
// @Produce json
// @Param input body cartItemReq true "Line"
// @Success 200 {object} cartView
// @Router /cart/items [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Cart.Remove(c, req.ProductID, req.Size, req.Color); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(s.svc.Cart.Snapshot(c)))
}

// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.svc.Cart.Clear(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle priority delivery
// @Tags cart
// @Accept json
// @Produce json
// @Param input body priorityReq true "Priority flag"
// @Success 200 {object} cartView
// @Router /cart/priority [put]
func (s *Server) setPriority(c *gin.Context) {
	var req priorityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Cart.SetPriorityDelivery(c, req.Enabled); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(s.svc.Cart.Snapshot(c)))
}

// Session handlers
type loginReq struct {
	Name string `json:"name"`
}

type sessionView struct {
	LoggedIn      bool   `json:"loggedIn"`
	Name          string `json:"name,omitempty"`
	LoginPrompted bool   `json:"loginPrompted"`
}

// @Summary Current shopper
// @Tags session
// @Produce json
// @Success 200 {object} sessionView
// @Router /session [get]
func (s *Server) getSession(c *gin.Context) {
	v := sessionView{}
	if id, ok := s.svc.Session.Current(c); ok {
		v.LoggedIn = true
		v.Name = id.Name
	}
	prompted, err := s.svc.Session.LoginPrompted(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	v.LoginPrompted = prompted
	c.JSON(http.StatusOK, v)
}

// @Summary Log in by name
// @Tags session
// @Accept json
// @Produce json
// @Param input body loginReq true "Display name"
// @Success 200 {object} domain.Identity
// @Failure 400 {object} map[string]string
// @Router /session/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := s.svc.Session.Login(c, req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// @Summary Log out
// @Tags session
// @Success 204
// @Router /session/logout [post]
func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Session.Logout(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remember that the login prompt was shown
// @Tags session
// @Success 204
// @Router /session/prompted [post]
func (s *Server) markPrompted(c *gin.Context) {
	if err := s.svc.Session.MarkLoginPrompted(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout and orders
type checkoutReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// @Summary Place order from the cart
// @Description Name falls back to the logged-in shopper.
// @Tags orders
// @Accept json
// @Produce json
// @Param input body checkoutReq true "Delivery details"
// @Success 201 {object} orderView
// @Failure 400 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.svc.Checkout.PlaceOrder(c, service.CheckoutForm{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil && o == nil {
		s.fail(c, err)
		return
	}
	if err != nil {
		// order stands even though the cart could not be cleared
		s.log.Sugar().Warnw("checkout finished with error", "order", o.ID, "error", err)
	}
	c.JSON(http.StatusCreated, newOrderView(o))
}

// @Summary Orders of a customer
// @Tags orders
// @Produce json
// @Param name query string false "Customer name, defaults to the logged-in shopper"
// @Success 200 {array} orderView
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (s *Server) listMyOrders(c *gin.Context) {
	name := c.Query("name")
	if blank(name) {
		if id, ok := s.svc.Session.Current(c); ok {
			name = id.Name
		}
	}
	if blank(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	list, err := s.svc.Orders.ByCustomer(c, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderViews(list))
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} orderView
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.svc.Orders.GetOrder(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(o))
}

// @Summary Track order by id and customer name
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Param name query string true "Customer name"
// @Success 200 {object} orderView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/track [get]
func (s *Server) trackOrder(c *gin.Context) {
	o, err := s.svc.Orders.Track(c, c.Param("id"), c.Query("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(o))
}

type receivedReq struct {
	Name string `json:"name"`
}

// @Summary Confirm receipt
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body receivedReq true "Customer name"
// @Success 200 {object} orderView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/received [post]
func (s *Server) markReceived(c *gin.Context) {
	var req receivedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if blank(req.Name) {
		if id, ok := s.svc.Session.Current(c); ok {
			req.Name = id.Name
		}
	}
	o, err := s.svc.Orders.MarkReceived(c, c.Param("id"), req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(o))
}

// Admin handlers
type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Admin login
// @Tags admin
// @Accept json
// @Param input body adminLoginReq true "Credentials"
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Admin.Login(c, req.Username, req.Password); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Admin logout
// @Tags admin
// @Success 204
// @Router /admin/logout [post]
func (s *Server) adminLogout(c *gin.Context) {
	if err := s.svc.Admin.Logout(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary All orders
// @Tags admin
// @Produce json
// @Success 200 {array} orderView
// @Failure 401 {object} map[string]string
// @Router /admin/orders [get]
func (s *Server) adminOrders(c *gin.Context) {
	list, err := s.svc.Orders.List(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderViews(list))
}

type statsView struct {
	Products  int    `json:"products"`
	Orders    int    `json:"orders"`
	Pending   int    `json:"pending"`
	Delivered int    `json:"delivered"`
	Received  int    `json:"received"`
	Revenue   string `json:"revenue"`
}

// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Success 200 {object} statsView
// @Failure 401 {object} map[string]string
// @Router /admin/stats [get]
func (s *Server) adminStats(c *gin.Context) {
	st := s.svc.Orders.Stats(c)
	c.JSON(http.StatusOK, statsView{
		Products:  s.svc.Catalog.Count(),
		Orders:    st.Total,
		Pending:   st.Pending,
		Delivered: st.Delivered,
		Received:  st.Received,
		Revenue:   domain.RoundCents(st.Revenue).StringFixed(2),
	})
}

// @Summary Mark order delivered
// @Tags admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} orderView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/delivered [post]
func (s *Server) markDelivered(c *gin.Context) {
	o, err := s.svc.Orders.MarkDelivered(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderView(o))
}
