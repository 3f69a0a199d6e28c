package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/derived"
	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// resource adapts one store collection to the generic CRUD handlers.
// A nil update leaves PUT unregistered.
type resource[T models.Archivable] struct {
	kind   models.EntityType
	list   func() []T
	get    func(id string) (T, bool)
	add    func(ctx context.Context, v T, actor string) (T, error)
	update func(ctx context.Context, v T, actor string) (bool, error)
	setID  func(v *T, id string)
	// filter narrows a list request by query parameters.
	filter func(c *gin.Context, items []T) ([]T, error)
}

type RecordsHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewRecordsHandler(s *store.Store, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{store: s, logger: logger}
}

func registerResource[T models.Archivable](g *gin.RouterGroup, h *RecordsHandler, path string, r resource[T]) {
	g.GET("/"+path, listHandler(r))
	g.GET("/"+path+"/:id", getHandler(r))
	g.POST("/"+path, createHandler(h, r))
	if r.update != nil {
		g.PUT("/"+path+"/:id", updateHandler(h, r))
	}
	g.DELETE("/"+path+"/:id", h.lifecycleHandler(r.kind, h.store.Delete))
	g.POST("/"+path+"/:id/archive", h.lifecycleHandler(r.kind, h.store.Archive))
}

// listHandler serves GET /<path>?view=live|archived|all. The default view
// hides archived records.
func listHandler[T models.Archivable](r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := r.list()
		switch c.DefaultQuery("view", "live") {
		case "live":
			items = derived.Live(items)
		case "archived":
			items = derived.Archived(items)
		case "all":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "view must be live, archived or all"})
			return
		}
		if r.filter != nil {
			var err error
			if items, err = r.filter(c, items); err != nil {
				badRequest(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, items)
	}
}

func getHandler[T models.Archivable](r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := r.get(c.Param("id"))
		if !ok {
			notFound(c, string(r.kind))
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// createHandler binds the body as a new record. Any id in the body is
// ignored; the store assigns one.
func createHandler[T models.Archivable](h *RecordsHandler, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			badRequest(c, err)
			return
		}
		r.setID(&v, "")

		created, err := r.add(c.Request.Context(), v, middleware.GetActor(c))
		if err != nil {
			writeError(c, h.logger, "failed to create "+string(r.kind), err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// updateHandler replaces the record named in the path with the body.
func updateHandler[T models.Archivable](h *RecordsHandler, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			badRequest(c, err)
			return
		}
		r.setID(&v, c.Param("id"))

		ok, err := r.update(c.Request.Context(), v, middleware.GetActor(c))
		if err != nil {
			writeError(c, h.logger, "failed to update "+string(r.kind), err)
			return
		}
		if !ok {
			notFound(c, string(r.kind))
			return
		}
		if stored, found := r.get(c.Param("id")); found {
			c.JSON(http.StatusOK, stored)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

type lifecycleFunc func(ctx context.Context, kind models.EntityType, id, actor string) (lifecycle.Result, error)

func (h *RecordsHandler) lifecycleHandler(kind models.EntityType, op lifecycleFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := op(c.Request.Context(), kind, c.Param("id"), middleware.GetActor(c))
		if err != nil {
			writeError(c, h.logger, "lifecycle operation failed", err)
			return
		}
		writeResult(c, res)
	}
}

func tenantResource(s *store.Store) resource[models.Tenant] {
	return resource[models.Tenant]{
		kind:   models.KindTenant,
		list:   s.Tenants,
		get:    s.Tenant,
		add:    s.AddTenant,
		update: s.UpdateTenant,
		setID:  func(v *models.Tenant, id string) { v.ID = id },
		filter: func(c *gin.Context, items []models.Tenant) ([]models.Tenant, error) {
			if c.Query("assignable") == "true" {
				return derived.AssignableTenants(items), nil
			}
			return items, nil
		},
	}
}

func apartmentResource(s *store.Store) resource[models.Apartment] {
	return resource[models.Apartment]{
		kind:   models.KindApartment,
		list:   s.Apartments,
		get:    s.Apartment,
		add:    s.AddApartment,
		update: s.UpdateApartment,
		setID:  func(v *models.Apartment, id string) { v.ID = id },
		filter: func(c *gin.Context, items []models.Apartment) ([]models.Apartment, error) {
			var f derived.ApartmentFilter
			if err := c.ShouldBindQuery(&f); err != nil {
				return nil, err
			}
			items = derived.FilterApartments(items, f)
			if c.Query("available") == "true" {
				items = derived.AvailableApartments(items)
			}
			return items, nil
		},
	}
}

func contractResource(s *store.Store) resource[models.Contract] {
	return resource[models.Contract]{
		kind:   models.KindContract,
		list:   s.Contracts,
		get:    s.Contract,
		add:    s.AddContract,
		update: s.UpdateContract,
		setID:  func(v *models.Contract, id string) { v.ID = id },
	}
}

func transactionResource(s *store.Store) resource[models.Transaction] {
	return resource[models.Transaction]{
		kind:   models.KindTransaction,
		list:   s.Transactions,
		get:    s.Transaction,
		add:    s.AddTransaction,
		update: s.UpdateTransaction,
		setID:  func(v *models.Transaction, id string) { v.ID = id },
		filter: func(c *gin.Context, items []models.Transaction) ([]models.Transaction, error) {
			if id := c.Query("related_id"); id != "" {
				out := make([]models.Transaction, 0)
				for _, tx := range items {
					if tx.RelatedID == id {
						out = append(out, tx)
					}
				}
				return out, nil
			}
			return items, nil
		},
	}
}

func maintenanceResource(s *store.Store) resource[models.MaintenanceRequest] {
	return resource[models.MaintenanceRequest]{
		kind:   models.KindMaintenance,
		list:   s.Maintenance,
		get:    s.MaintenanceRequest,
		add:    s.AddMaintenance,
		update: s.UpdateMaintenance,
		setID:  func(v *models.MaintenanceRequest, id string) { v.ID = id },
	}
}

// Reports are generated, not edited, so there is no PUT.
func reportResource(s *store.Store) resource[models.Report] {
	return resource[models.Report]{
		kind:  models.KindReport,
		list:  s.Reports,
		get:   s.Report,
		add:   s.AddReport,
		setID: func(v *models.Report, id string) { v.ID = id },
	}
}
