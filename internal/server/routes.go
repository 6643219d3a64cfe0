package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deltakit/deltakit/delta"
	"github.com/deltakit/deltakit/delta/instruction"
	"github.com/deltakit/deltakit/internal/auth"
	"github.com/deltakit/deltakit/internal/observability"
)

type diffRequest struct {
	Source []byte `json:"source"`
	Target []byte `json:"target"`
}

type diffResponse struct {
	Patch []byte    `json:"patch"`
	Stats diffStats `json:"stats"`
}

type diffStats struct {
	Instructions int    `json:"instructions"`
	WireBytes    int    `json:"wire_bytes"`
	SourceBytes  int    `json:"source_bytes"`
	TargetBytes  int    `json:"target_bytes"`
	PatchDigest  string `json:"patch_digest"`
}

type applyRequest struct {
	Source []byte `json:"source"`
	Patch  []byte `json:"patch"`
}

type applyResponse struct {
	Target []byte `json:"target"`
	Digest string `json:"digest"`
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": "deltad",
			"version": "0.1.0",
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"uptime": time.Since(s.started).String(),
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	if s.cfg.AuthToken != "" {
		v1.Use(s.requireToken(auth.StaticToken{Token: s.cfg.AuthToken}))
	}
	v1.POST("/diff", s.handleDiff)
	v1.POST("/apply", s.handleApply)
}

func (s *Server) requireToken(v auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.FromHeader(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if err := v.Validate(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

func (s *Server) handleDiff(c *gin.Context) {
	var req diffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Source) > s.cfg.MaxInputBytes || len(req.Target) > s.cfg.MaxInputBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "input exceeds configured limit"})
		return
	}

	start := time.Now()
	patch, err := delta.DiffContext(c.Request.Context(), req.Source, req.Target)
	observability.RecordDeltaOp("diff", len(req.Source)+len(req.Target), time.Since(start), err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	wire := delta.Encode(patch)
	c.JSON(http.StatusOK, diffResponse{
		Patch: wire,
		Stats: diffStats{
			Instructions: len(patch),
			WireBytes:    len(wire),
			SourceBytes:  len(req.Source),
			TargetBytes:  len(req.Target),
			PatchDigest:  digest(wire),
		},
	})
}

func (s *Server) handleApply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Source) > s.cfg.MaxInputBytes || len(req.Patch) > s.cfg.MaxInputBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "input exceeds configured limit"})
		return
	}

	patch, err := delta.Decode(req.Patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	target, err := delta.ApplyWith(req.Source, patch, delta.ApplyOptions{VerifyCopy: s.cfg.VerifyCopy})
	observability.RecordDeltaOp("apply", len(req.Source)+len(req.Patch), time.Since(start), err)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, instruction.ErrSourceUnderrun) || errors.Is(err, instruction.ErrContentMismatch) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, applyResponse{
		Target: target,
		Digest: digest(target),
	})
}

func digest(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
