package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
)

// CatalogHandler serves the public read API. No authentication, active
// records only.
type CatalogHandler struct {
	Establishments *store.EstablishmentStore
}

// NewCatalogHandler creates the public catalog handler
func NewCatalogHandler(establishments *store.EstablishmentStore) *CatalogHandler {
	return &CatalogHandler{Establishments: establishments}
}

// List returns active establishments filtered by categoria, ciudad and a
// name search, paginated
func (h *CatalogHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var filter store.CatalogFilter
	var page model.PaginationQuery
	if err := c.Bind(&filter); err != nil {
		return resp.Fail(c, http.StatusBadRequest, "filtros no validos")
	}
	if err := c.Bind(&page); err != nil {
		return resp.Fail(c, http.StatusBadRequest, "paginacion no valida")
	}
	page.Normalize()

	if filter.Categoria != "" && !model.ValidCategoria(filter.Categoria) {
		return resp.Fail(c, http.StatusBadRequest, "categoria no valida")
	}

	ests, total, err := h.Establishments.ListActive(filter, page)
	if err != nil {
		log.Error("Failed to list establishments", zap.Error(err))
		return writeError(c, log, err)
	}

	return resp.OK(c, http.StatusOK, echo.Map{
		"establecimientos": ests,
		"pagination":       model.NewPaginationResult(total, page),
	})
}

// Get returns one active establishment by id
func (h *CatalogHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return resp.Fail(c, http.StatusBadRequest, "identificador no valido")
	}

	est, err := h.Establishments.FindActiveByID(uint(id))
	if err != nil {
		return writeError(c, log, err)
	}
	return resp.OK(c, http.StatusOK, est)
}
