package api

import (
	"net/http"
	"strconv"

	"github.com/bashmore0207/scraperrr/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store *storage.Store
}

func NewServer(store *storage.Store) *Server {
	return &Server{store: store}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.GET("/runs", s.listRuns)
		v1.GET("/saved", s.listSaved)
		v1.POST("/saved/:id", s.saveArticle)
		v1.DELETE("/saved/:id", s.unsaveArticle)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listArticles(c *gin.Context) {
	competitor := c.Query("competitor")
	source := c.Query("source")
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	items, err := s.store.ListArticles(competitor, source, limit)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, items)
}

func (s *Server) listRuns(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, runs)
}

func (s *Server) listSaved(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	items, err := s.store.ListSaved(limit)
	if err != nil {
		internalError(c)
		return
	}
	ok(c, items)
}

func (s *Server) saveArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid article id")
		return
	}
	if err := s.store.SaveArticle(uint(id)); err != nil {
		internalError(c)
		return
	}
	ok(c, nil)
}

func (s *Server) unsaveArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid article id")
		return
	}
	if err := s.store.UnsaveArticle(uint(id)); err != nil {
		internalError(c)
		return
	}
	ok(c, nil)
}

func parseLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 50
	}
	return limit
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "bad_request",
		"message": msg,
	})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
