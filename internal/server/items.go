package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
)

func (s *Server) ListBarcodeItems(c *gin.Context) {
	items, err := s.itemSvc.ListBarcodeItems(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) AddBarcodeItem(c *gin.Context) {
	var req itemdomain.UpsertBarcodeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.AddBarcodeItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) LookupBarcode(c *gin.Context) {
	item, err := s.itemSvc.GetByBarcode(c.Request.Context(), c.Query("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateBarcodeItem(c *gin.Context) {
	var req itemdomain.UpsertBarcodeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.UpdateBarcodeItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteBarcodeItem(c *gin.Context) {
	if err := s.itemSvc.DeleteBarcodeItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ImportBarcodeCSV(c *gin.Context) {
	r, err := importBody(c)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer r.Close()

	report, err := s.itemSvc.ImportBarcodeCSV(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.itemSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) AddCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	category, err := s.itemSvc.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.itemSvc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListLooseItems(c *gin.Context) {
	items, err := s.itemSvc.ListLooseItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) AddLooseItem(c *gin.Context) {
	var req itemdomain.UpsertLooseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.AddLooseItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateLooseItem(c *gin.Context) {
	var req itemdomain.UpsertLooseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.UpdateLooseItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteLooseItem(c *gin.Context) {
	if err := s.itemSvc.DeleteLooseItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ImportLooseCSV(c *gin.Context) {
	r, err := importBody(c)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer r.Close()

	report, err := s.itemSvc.ImportLooseCSV(c.Request.Context(), r)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// importBody accepts either a multipart upload under "file" or a raw
// CSV request body.
func importBody(c *gin.Context) (io.ReadCloser, error) {
	if file, err := c.FormFile("file"); err == nil {
		return file.Open()
	}
	if c.Request.Body == nil {
		return nil, ErrInvalidRequest
	}
	return c.Request.Body, nil
}
