// Package api serves a read-only HTTP view of the sticker catalog and the
// leaderboard.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/leaderboard"
)

// Server holds the handlers' dependencies.
type Server struct {
	catalog  *catalog.Catalog
	profiles game.ProfileLister
	log      zerolog.Logger
}

// New creates a Server. A nil logger disables request logging.
func New(cat *catalog.Catalog, profiles game.ProfileLister, logger *zerolog.Logger) *Server {
	s := &Server{catalog: cat, profiles: profiles, log: zerolog.Nop()}
	if logger != nil {
		s.log = logger.With().Str("component", "api").Logger()
	}
	return s
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.Default())

	r.GET("/healthz", s.health)

	g := r.Group("/api")
	g.GET("/leaderboard", s.leaderboard)
	g.GET("/stickers", s.stickers)
	g.GET("/stickers/:id", s.sticker)
	g.GET("/milestones", s.milestones)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type leaderboardEntry struct {
	leaderboard.Entry
	Title string `json:"title"`
}

func (s *Server) leaderboard(c *gin.Context) {
	entries, err := game.BuildLeaderboard(c.Request.Context(), s.profiles, s.catalog.Len())
	if err != nil {
		s.log.Error().Err(err).Msg("build leaderboard")
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "leaderboard unavailable"})
		return
	}

	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{Entry: e, Title: e.Tier.Title()}
	}
	c.JSON(http.StatusOK, gin.H{"entries": out, "catalogSize": s.catalog.Len()})
}

func (s *Server) stickers(c *gin.Context) {
	all := s.catalog.Stickers()
	rarity := catalog.Rarity(c.Query("rarity"))
	if rarity == "" {
		c.JSON(http.StatusOK, gin.H{"stickers": all})
		return
	}
	if !rarity.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown rarity " + string(rarity)})
		return
	}

	out := make([]catalog.Sticker, 0, len(all))
	for _, st := range all {
		if st.Rarity == rarity {
			out = append(out, st)
		}
	}
	c.JSON(http.StatusOK, gin.H{"stickers": out})
}

func (s *Server) sticker(c *gin.Context) {
	st, ok := s.catalog.Sticker(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "sticker not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) milestones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"milestones": s.catalog.Milestones()})
}
