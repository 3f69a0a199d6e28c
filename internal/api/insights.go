package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/derived"
	"github.com/lalith-99/propmaster/internal/export"
	"github.com/lalith-99/propmaster/internal/middleware"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/settings"
	"github.com/lalith-99/propmaster/internal/store"
	"go.uber.org/zap"
)

// InsightsHandler serves read-only projections of the current State.
// Every request computes from a fresh snapshot; nothing is cached.
type InsightsHandler struct {
	store  *store.Store
	prefs  *settings.Preferences
	now    func() time.Time
	logger *zap.Logger
}

func NewInsightsHandler(s *store.Store, prefs *settings.Preferences, now func() time.Time, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{store: s, prefs: prefs, now: now, logger: logger}
}

func (h *InsightsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, derived.Dashboard(h.store.Snapshot(), h.now()))
}

// Notifications handles GET /v1/notifications?lang=&limit=. lang defaults
// to the saved UI language.
func (h *InsightsHandler) Notifications(c *gin.Context) {
	lang := models.Language(c.Query("lang"))
	if !lang.Valid() {
		lang = h.prefs.Language(c.Request.Context())
	}
	limit := derived.DefaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, derived.Notifications(h.store.Snapshot(), h.now(), lang, limit))
}

func (h *InsightsHandler) Finance(c *gin.Context) {
	txs := h.store.Transactions()
	c.JSON(http.StatusOK, gin.H{
		"summary": derived.Finance(txs),
		"unpaid":  derived.UnpaidInvoices(txs),
	})
}

type expiringContract struct {
	models.Contract
	DaysLeft int `json:"days_left"`
}

func (h *InsightsHandler) ExpiringContracts(c *gin.Context) {
	now := h.now()
	out := make([]expiringContract, 0)
	for _, ct := range derived.ExpiringContracts(derived.Live(h.store.Contracts()), now) {
		days, _ := derived.DaysUntilEnd(ct, now)
		out = append(out, expiringContract{Contract: ct, DaysLeft: days})
	}
	c.JSON(http.StatusOK, out)
}

func (h *InsightsHandler) TenantHistory(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.Tenant(id); !ok {
		notFound(c, "tenant")
		return
	}
	c.JSON(http.StatusOK, derived.TenantHistory(id, h.store.Transactions(), h.store.Maintenance()))
}

func (h *InsightsHandler) summary(c *gin.Context) (derived.ReportSummary, bool) {
	var f derived.ReportFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, err)
		return derived.ReportSummary{}, false
	}
	return derived.Summarize(h.store.Apartments(), h.store.Tenants(), h.store.Transactions(), f), true
}

func (h *InsightsHandler) ReportSummary(c *gin.Context) {
	if s, ok := h.summary(c); ok {
		c.JSON(http.StatusOK, s)
	}
}

// ExportReport handles GET /v1/reports/export. It streams the summary as
// an .xlsx workbook and files a Report entry for it.
func (h *InsightsHandler) ExportReport(c *gin.Context) {
	s, ok := h.summary(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	date := derived.FormatDate(h.now())
	name := "Financial Report " + date

	raw, err := export.Workbook{
		Title:   name,
		Date:    date,
		Owner:   h.prefs.OwnerSettings(ctx),
		Summary: s,
	}.Render()
	if err != nil {
		writeError(c, h.logger, "failed to render report", err)
		return
	}

	if _, err := h.store.AddReport(ctx, models.Report{
		Name: name,
		Date: date,
		Size: export.FormatSize(len(raw)),
	}, middleware.GetActor(c)); err != nil {
		writeError(c, h.logger, "failed to record report", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="financial-report-`+date+`.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, raw)
}
