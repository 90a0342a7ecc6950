// Package web serves the ETF reports as HTML pages and a JSON API, and
// hosts the Telegram webhook route when the bot runs in webhook mode.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/bot"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/chart"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/recorder"
)

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	Pipeline *pipeline.Pipeline
	Recorder recorder.Recorder
	Bot      *bot.Bot // nil disables the webhook route

	engine *gin.Engine
	http   *http.Server
}

// NewServer builds the router. Pass a nil bot when Telegram is not
// configured.
func NewServer(pipe *pipeline.Pipeline, rec recorder.Recorder, b *bot.Bot) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(pageTemplates)

	s := &Server{Pipeline: pipe, Recorder: rec, Bot: b, engine: engine}

	engine.GET("/", s.index)
	engine.GET("/etf/:code", s.etfReport)
	engine.GET("/chart/:code", s.etfChart)
	engine.GET("/api/etfs", s.apiETFs)
	engine.GET("/api/etf/:code", s.apiETF)
	engine.GET("/api/etf/:code/history", s.apiHistory)
	engine.GET("/healthz", s.health)
	if b != nil {
		engine.POST("/webhook/telegram", s.telegramWebhook)
	}
	return s
}

// Router returns the underlying gin engine (exposed for tests).
func (s *Server) Router() *gin.Engine { return s.engine }

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] web server listening on %s", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"ETFs": collector.SupportedETFs(),
		"Now":  time.Now().Format("2006-01-02 15:04"),
	})
}

func (s *Server) etfReport(c *gin.Context) {
	code := c.Param("code")
	if !collector.Supported(code) {
		s.htmlError(c, http.StatusNotFound, "ETF code "+code+" is not supported")
		return
	}
	res, err := s.Pipeline.Process(code, pipeline.Options{SaveReports: true, Record: true})
	if err != nil {
		log.Printf("[ERROR] report %s: %v", code, err)
		s.htmlError(c, http.StatusInternalServerError, "Failed to process ETF "+code)
		return
	}
	c.HTML(http.StatusOK, "report", newReportView(res))
}

func (s *Server) etfChart(c *gin.Context) {
	code := c.Param("code")
	if !collector.Supported(code) {
		s.htmlError(c, http.StatusNotFound, "ETF code "+code+" is not supported")
		return
	}
	res, err := s.Pipeline.Process(code, pipeline.Options{})
	if err != nil {
		log.Printf("[ERROR] chart %s: %v", code, err)
		s.htmlError(c, http.StatusInternalServerError, "Failed to process ETF "+code)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(c.Writer, code, res.Rows, chart.DefaultLastN); err != nil {
		log.Printf("[ERROR] render chart %s: %v", code, err)
	}
}

func (s *Server) apiETFs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"etfs": collector.SupportedETFs()})
}

func (s *Server) apiETF(c *gin.Context) {
	code := c.Param("code")
	if !collector.Supported(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ETF code " + code + " not supported"})
		return
	}
	res, err := s.Pipeline.Process(code, pipeline.Options{})
	if err != nil {
		log.Printf("[ERROR] api %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newSignalResponse(res))
}

func (s *Server) apiHistory(c *gin.Context) {
	code := c.Param("code")
	if !collector.Supported(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ETF code " + code + " not supported"})
		return
	}
	limit := 30
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositive(v); err == nil {
			limit = n
		}
	}
	records, err := s.Recorder.Recent(code, limit)
	if err != nil {
		log.Printf("[ERROR] history %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]historyItem, len(records))
	for i, rec := range records {
		items[i] = historyItem{
			ETFCode:    rec.Code,
			RecordedAt: rec.RecordedAt.Format(time.RFC3339),
			Signal:     rec.Signal,
		}
	}
	c.JSON(http.StatusOK, gin.H{"etf_code": code, "history": items})
}

func (s *Server) telegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	go s.Bot.HandleUpdate(update)
	c.Status(http.StatusOK)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) htmlError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error", gin.H{"Status": http.StatusText(status), "Message": msg})
}
