package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kiranapos/kirana/internal/bill/cart"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/scanner"
)

func (s *Server) CreateCart(c *gin.Context) {
	id := s.carts.Create()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cart_id": id}})
}

func (s *Server) GetCart(c *gin.Context) {
	state, err := s.carts.Snapshot(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

func (s *Server) DropCart(c *gin.Context) {
	id := c.Param("id")
	s.scans.Drop(id)
	s.carts.Drop(id)
	c.JSON(http.StatusOK, gin.H{"status": "dropped"})
}

type addCartItemRequest struct {
	Kind     string  `json:"kind"`
	ItemID   string  `json:"item_id"`
	Barcode  string  `json:"barcode"`
	Quantity float64 `json:"quantity"`
}

func (s *Server) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var (
		item itemdomain.Item
		err  error
	)
	switch {
	case req.Barcode != "":
		item, err = s.itemSvc.GetByBarcode(c.Request.Context(), req.Barcode)
	case req.ItemID != "":
		item, err = s.itemSvc.GetItem(c.Request.Context(), itemdomain.Kind(req.Kind), req.ItemID)
	default:
		err = invalidRequestError()
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	state, err := s.carts.AddItem(c.Param("id"), item, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

func (s *Server) IncreaseCartQty(c *gin.Context) {
	s.mutateCartLine(c, s.carts.IncreaseQty)
}

func (s *Server) DecreaseCartQty(c *gin.Context) {
	s.mutateCartLine(c, s.carts.DecreaseQty)
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	s.mutateCartLine(c, s.carts.Remove)
}

func (s *Server) SetCartQty(c *gin.Context) {
	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := s.carts.SetQty(c.Param("id"), index, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

func (s *Server) ClearCart(c *gin.Context) {
	state, err := s.carts.Clear(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// ScanIntoCart feeds one scanner input fragment into the cart's debounce
// buffer. The assembled code is committed to the cart once the scanner
// goes quiet.
func (s *Server) ScanIntoCart(c *gin.Context) {
	var req struct {
		Fragment string `json:"fragment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Fragment == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if _, err := s.carts.Snapshot(c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	s.scans.Append(c.Param("id"), req.Fragment)
	c.JSON(http.StatusAccepted, gin.H{"status": "buffered"})
}

func (s *Server) mutateCartLine(c *gin.Context, fn func(id string, index int) (cart.State, error)) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := fn(c.Param("id"), index)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": state})
}

func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return 0, false
	}
	return index, true
}

// commitScan resolves a scanned barcode and drops it into the cart with
// quantity one. Scans for unknown codes are logged and ignored.
func (s *Server) commitScan(cartID, code string) {
	ctx := context.Background()
	item, err := s.itemSvc.GetByBarcode(ctx, code)
	if err != nil {
		s.log.Warn("scanned code not found",
			zap.String("cart_id", cartID), zap.String("code", code), zap.Error(err))
		return
	}
	if _, err := s.carts.AddItem(cartID, item, 1); err != nil {
		s.log.Warn("scanned item rejected by cart",
			zap.String("cart_id", cartID), zap.String("code", code), zap.Error(err))
	}
}

// scanRegistry keeps one debounce buffer per cart.
type scanRegistry struct {
	commit func(cartID, code string)

	mu         sync.Mutex
	debouncers map[string]*scanner.Debouncer
}

func newScanRegistry(commit func(cartID, code string)) *scanRegistry {
	return &scanRegistry{
		commit:     commit,
		debouncers: make(map[string]*scanner.Debouncer),
	}
}

func (r *scanRegistry) Append(cartID, fragment string) {
	r.mu.Lock()
	d, ok := r.debouncers[cartID]
	if !ok {
		d = scanner.NewDebouncer(scanner.DefaultIdle, func(code string) {
			r.commit(cartID, code)
		})
		r.debouncers[cartID] = d
	}
	r.mu.Unlock()

	d.Append(fragment)
}

func (r *scanRegistry) Drop(cartID string) {
	r.mu.Lock()
	d, ok := r.debouncers[cartID]
	delete(r.debouncers, cartID)
	r.mu.Unlock()

	if ok {
		d.Stop()
	}
}
