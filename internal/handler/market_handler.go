package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiva994u/stock-news-analyzer/internal/aggregator"
	"github.com/shiva994u/stock-news-analyzer/internal/cache"
	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// Aggregator is the slice of the engine the HTTP surface needs.
type Aggregator interface {
	FetchComprehensiveNews(ctx context.Context, q model.NewsQuery) (*model.NewsResult, error)
	FetchTopGainers(ctx context.Context, q model.GainerQuery) (*model.QuoteResult, error)
	AnalyzeBulkSentiment(records []model.QuoteRecord) map[string]model.SentimentResult
	ClearCache()
	CacheStats() cache.Stats
	Sources(ctx context.Context) []aggregator.SourceInfo
}

type MarketHandler struct {
	engine Aggregator
	now    func() time.Time
}

func NewMarketHandler(engine Aggregator) *MarketHandler {
	return &MarketHandler{engine: engine, now: time.Now}
}

// Register mounts every route on r.
func (h *MarketHandler) Register(r gin.IRoutes) {
	r.GET("/news/:symbol", h.GetNews)
	r.GET("/gainers", h.GetGainers)
	r.POST("/sentiment/bulk", h.PostBulkSentiment)
	r.DELETE("/cache", h.DeleteCache)
	r.GET("/cache/stats", h.GetCacheStats)
	r.GET("/sources", h.GetSources)
	r.GET("/health", h.GetHealth)
}

func (h *MarketHandler) GetNews(c *gin.Context) {
	q := model.NewsQuery{
		Symbol:           c.Param("symbol"),
		Limit:            getQueryInt("limit", 0, c),
		Days:             getQueryInt("days", 0, c),
		PreferredSources: getQueryList("sources", c),
		NoFallback:       !getQueryBool("fallback", true, c),
	}

	res, err := h.engine.FetchComprehensiveNews(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MarketHandler) GetGainers(c *gin.Context) {
	q := model.GainerQuery{
		Limit:            getQueryInt("limit", 0, c),
		MinPercentChange: getQueryFloat("min_change", 0, c),
		PreferredSources: getQueryList("sources", c),
		NoFallback:       !getQueryBool("fallback", true, c),
	}

	res, err := h.engine.FetchTopGainers(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MarketHandler) PostBulkSentiment(c *gin.Context) {
	var req BulkSentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid bulk sentiment body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	results := h.engine.AnalyzeBulkSentiment(req.Quotes)
	c.JSON(http.StatusOK, BulkSentimentResponse{Results: results, Total: len(results)})
}

func (h *MarketHandler) DeleteCache(c *gin.Context) {
	h.engine.ClearCache()
	c.Status(http.StatusNoContent)
}

func (h *MarketHandler) GetCacheStats(c *gin.Context) {
	s := h.engine.CacheStats()
	c.JSON(http.StatusOK, CacheStatsResponse{
		Entries:     s.Entries,
		Capacity:    s.Capacity,
		TTL:         s.TTL.String(),
		Hits:        s.Hits,
		Misses:      s.Misses,
		Evictions:   s.Evictions,
		Expirations: s.Expirations,
	})
}

func (h *MarketHandler) GetSources(c *gin.Context) {
	infos := h.engine.Sources(c.Request.Context())

	res := SourcesResponse{Sources: make([]SourceResponse, 0, len(infos))}
	for _, s := range infos {
		res.Sources = append(res.Sources, SourceResponse{
			Name:       s.Name,
			Kind:       s.Kind,
			Configured: s.Configured,
			Reason:     s.Reason,
			UsedToday:  s.UsedToday,
		})
	}
	res.Total = len(res.Sources)

	c.JSON(http.StatusOK, res)
}

func (h *MarketHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Time: formatTime(h.now())})
}

func writeError(c *gin.Context, err error) {
	if model.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slog.Error("aggregation failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return v
}

func getQueryFloat(name string, defaultValue float64, c *gin.Context) float64 {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return v
}

func getQueryBool(name string, defaultValue bool, c *gin.Context) bool {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return v
}

func getQueryList(name string, c *gin.Context) []string {
	var out []string
	for _, part := range strings.Split(c.Query(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
