package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskradar-team/go-riskradar/internal/dataset"
	"github.com/riskradar-team/go-riskradar/internal/history"
	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/observability"
	"github.com/riskradar-team/go-riskradar/internal/playbook"
	"github.com/riskradar-team/go-riskradar/internal/risk"
	"github.com/riskradar-team/go-riskradar/internal/sitelist"
)

// Reloader re-fetches all documents and returns the replacement snapshot.
type Reloader interface {
	Load() (*dataset.Snapshot, error)
}

type Handler struct {
	store    *dataset.Store
	reloader Reloader
	scorer   risk.Scorer
	metrics  *observability.Metrics
}

func NewHandler(store *dataset.Store, reloader Reloader, scorer risk.Scorer, metrics *observability.Metrics) *Handler {
	return &Handler{
		store:    store,
		reloader: reloader,
		scorer:   scorer,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/sites", h.getSites)
	r.GET("/api/sites/geojson", h.getSitesGeoJSON)
	r.GET("/api/sites/:name", h.getSite)
	r.GET("/api/sites/:name/playbook", h.getSitePlaybook)
	r.GET("/api/events/fires", h.getFires)
	r.GET("/api/events/quakes", h.getQuakes)
	r.GET("/api/summary", h.getSummary)
	r.POST("/api/reload", h.reload)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// MetricsMiddleware counts requests by route template and status.
func (h *Handler) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if h.metrics == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		h.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// siteView is one enriched site plus its derived presentation: risk band,
// band color, and the full impact breakdown.
type siteView struct {
	models.Site
	RiskLevel risk.Level      `json:"risk_level"`
	RiskColor string          `json:"risk_color"`
	Impact    risk.Assessment `json:"impact"`
}

func (h *Handler) view(s models.Site) siteView {
	level := risk.Classify(s.Risks.Combined.Score)
	return siteView{
		Site:      s,
		RiskLevel: level,
		RiskColor: level.Color(),
		Impact:    h.scorer.Assess(s),
	}
}

// selectSites applies the type filter and sort from query params.
func (h *Handler) selectSites(c *gin.Context) []models.Site {
	snap := h.store.Get()
	sites := snap.Sites

	enabled := map[models.SiteType]bool{}
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			enabled[models.SiteType(strings.TrimSpace(t))] = true
		}
	} else {
		for _, t := range models.KnownSiteTypes {
			enabled[t] = true
		}
	}
	sites = sitelist.Filter(sites, enabled)

	key := sitelist.ParseSortKey(c.Query("sort"))
	return sitelist.Sort(sites, key, h.scorer)
}

func (h *Handler) getSites(c *gin.Context) {
	sites := h.selectSites(c)
	views := make([]siteView, 0, len(sites))
	for _, s := range sites {
		views = append(views, h.view(s))
	}
	c.JSON(http.StatusOK, gin.H{"sites": views, "count": len(views)})
}

func (h *Handler) getSitesGeoJSON(c *gin.Context) {
	sites := h.selectSites(c)
	views := make([]siteView, 0, len(sites))
	for _, s := range sites {
		views = append(views, h.view(s))
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, sitesToGeoJSON(views))
}

func (h *Handler) getSite(c *gin.Context) {
	name := c.Param("name")
	snap := h.store.Get()
	for _, s := range snap.Sites {
		if s.Name == name {
			c.JSON(http.StatusOK, h.view(s))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown site"})
}

func (h *Handler) getSitePlaybook(c *gin.Context) {
	name := c.Param("name")
	snap := h.store.Get()
	for _, s := range snap.Sites {
		if s.Name == name {
			sel := playbook.Select(s, snap.Playbooks)
			if sel == nil {
				c.Status(http.StatusNoContent)
				return
			}
			c.JSON(http.StatusOK, sel)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown site"})
}

func (h *Handler) getFires(c *gin.Context) {
	snap := h.store.Get()
	params := history.FireParams{
		Days:               queryInt(c, "days", 30),
		BrightnessMin:      queryFloat(c, "brightness_min", 0),
		CountMin:           queryInt(c, "count_min", 0),
		HighConfidenceOnly: c.Query("high_confidence") == "true",
	}

	reference := history.ReferenceDate(snap.Events)
	cutoff := history.Cutoff(reference, params.Days)
	markers := history.FilterFires(snap.Events.Fires, params, cutoff)

	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, firesToGeoJSON(markers))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference_date": reference.Format("2006-01-02"),
		"cutoff_date":    cutoff.Format("2006-01-02"),
		"fires":          markers,
		"count":          len(markers),
	})
}

func (h *Handler) getQuakes(c *gin.Context) {
	snap := h.store.Get()
	params := history.QuakeParams{
		Days:         queryInt(c, "days", 30),
		MagnitudeMin: queryFloat(c, "magnitude_min", 0),
		DepthMax:     queryFloat(c, "depth_max", 700),
	}

	reference := history.ReferenceDate(snap.Events)
	cutoff := history.Cutoff(reference, params.Days)
	markers := history.FilterQuakes(snap.Events.Earthquakes, params, cutoff)

	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, quakesToGeoJSON(markers))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference_date": reference.Format("2006-01-02"),
		"cutoff_date":    cutoff.Format("2006-01-02"),
		"earthquakes":    markers,
		"count":          len(markers),
	})
}

func (h *Handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get().Summary)
}

func (h *Handler) reload(c *gin.Context) {
	snap, err := h.reloader.Load()
	if err != nil {
		// Keep serving the previous snapshot.
		c.JSON(http.StatusBadGateway, gin.H{"error": "reload failed"})
		return
	}
	h.store.Set(snap)
	c.JSON(http.StatusOK, gin.H{
		"sites":     len(snap.Sites),
		"loaded_at": snap.LoadedAt,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
