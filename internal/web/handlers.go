package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/telemetry"
)

const (
	previewSize     = 10
	timestampLayout = "2006-01-02 15:04:05"
)

type algorithmInfo struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	Complexity string `json:"complexity"`
	Quadratic  bool   `json:"quadratic"`
}

type generateRequest struct {
	Size int `json:"size"`
}

type datasetResponse struct {
	Message    string `json:"message"`
	DataSize   int    `json:"data_size"`
	SampleData []int  `json:"sample_data"`
	Data       []int  `json:"data,omitempty"`
}

type runRequest struct {
	DataSize        int      `json:"data_size"`
	UseUploadedData bool     `json:"use_uploaded_data"`
	UploadedData    []int    `json:"uploaded_data"`
	Mode            string   `json:"mode"`
	Algorithms      []string `json:"algorithms"`
}

type runResponse struct {
	RunID         string                `json:"run_id"`
	Results       []benchmark.RunResult `json:"results"`
	DataSize      int                   `json:"data_size"`
	TestTimestamp string                `json:"test_timestamp"`
	Summary       benchmark.Summary     `json:"summary"`
}

type runMultipleRequest struct {
	Sizes      []int    `json:"sizes"`
	Mode       string   `json:"mode"`
	Algorithms []string `json:"algorithms"`
}

type runMultipleResponse struct {
	RunID           string                      `json:"run_id"`
	MultipleResults []benchmark.SizeTierResults `json:"multiple_results"`
	TestTimestamp   string                      `json:"test_timestamp"`
	Summary         benchmark.Summary           `json:"summary"`
	Error           string                      `json:"error,omitempty"`
}

func (s *Server) handleAlgorithms(c *gin.Context) {
	catalog := benchmark.Catalog()
	out := make([]algorithmInfo, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, algorithmInfo{Name: a.Name(), Key: a.Key(), Complexity: a.Complexity(), Quadratic: a.Quadratic()})
	}
	c.JSON(http.StatusOK, gin.H{"algorithms": out})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.checkSize(req.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := s.source.Dataset(c.Request.Context(), req.Size)
	if err != nil {
		telemetry.LogError("Dataset generation failed", err, "size", req.Size)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("generating data: %v", err)})
		return
	}
	c.JSON(http.StatusOK, datasetResponse{
		Message:    fmt.Sprintf("Generated %d random numbers", req.Size),
		DataSize:   req.Size,
		SampleData: dataset.Preview(data, previewSize),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a CSV file"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error processing file: %v", err)})
		return
	}
	defer f.Close()

	data, err := dataset.ParseCSV(f)
	switch {
	case errors.Is(err, dataset.ErrNoNumericData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid numeric data found in CSV"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Error processing file: %v", err)})
		return
	}
	if len(data) > s.cfg.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("dataset has %d values, the limit is %d", len(data), s.cfg.MaxSize)})
		return
	}

	c.JSON(http.StatusOK, datasetResponse{
		Message:    fmt.Sprintf("Successfully loaded %d numbers from CSV", len(data)),
		DataSize:   len(data),
		SampleData: dataset.Preview(data, previewSize),
		Data:       data,
	})
}

func (s *Server) handleRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var tier benchmark.Tier
	if req.UseUploadedData && len(req.UploadedData) > 0 {
		if len(req.UploadedData) > s.cfg.MaxSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("dataset has %d values, the limit is %d", len(req.UploadedData), s.cfg.MaxSize)})
			return
		}
		tier = benchmark.Tier{Data: req.UploadedData}
	} else {
		if err := s.checkSize(req.DataSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tier = benchmark.Tier{Size: req.DataSize}
	}

	opts, err := s.options(req.Mode, req.Algorithms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.run(c, opts, []benchmark.Tier{tier})
	if err != nil {
		s.writeRunError(c, err)
		return
	}

	c.JSON(http.StatusOK, runResponse{
		RunID:         report.ID,
		Results:       report.Results(),
		DataSize:      report.Tiers[0].Size,
		TestTimestamp: report.GeneratedAt.Format(timestampLayout),
		Summary:       benchmark.Summarize(report),
	})
}

func (s *Server) handleRunMultiple(c *gin.Context) {
	var req runMultipleRequest
	// An empty body runs the default sizes.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	sizes := req.Sizes
	if len(sizes) == 0 {
		sizes = s.cfg.Sizes
	}
	if len(sizes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no sizes given"})
		return
	}
	for _, size := range sizes {
		if err := s.checkSize(size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	opts, err := s.options(req.Mode, req.Algorithms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.run(c, opts, benchmark.Sizes(sizes...))
	if err != nil && report == nil {
		s.writeRunError(c, err)
		return
	}

	resp := runMultipleResponse{
		RunID:           report.ID,
		MultipleResults: report.Tiers,
		TestTimestamp:   report.GeneratedAt.Format(timestampLayout),
		Summary:         benchmark.Summarize(report),
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

func (s *Server) run(c *gin.Context, opts benchmark.Options, tiers []benchmark.Tier) (*benchmark.Report, error) {
	if s.metrics != nil {
		opts.Observers = append(opts.Observers, benchmark.NewMetricsObserver(s.metrics))
	}
	start := time.Now()
	report, err := s.newRunner(s.source, opts).Run(c.Request.Context(), tiers)
	if s.metrics != nil {
		s.metrics.ObserveRun(err)
	}
	if err != nil {
		telemetry.LogError("API benchmark failed", err, "tiers", len(tiers), "duration", time.Since(start))
	} else {
		slog.Info("API benchmark finished", "tiers", len(tiers), "duration", time.Since(start))
	}
	return report, err
}

func (s *Server) writeRunError(c *gin.Context, err error) {
	if errors.Is(err, benchmark.ErrInvalidConfig) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// options applies per-request overrides to the configured defaults.
func (s *Server) options(mode string, algorithms []string) (benchmark.Options, error) {
	opts := s.cfg.Options
	opts.Observers = append([]benchmark.Observer(nil), opts.Observers...)
	if mode != "" {
		m, err := benchmark.ParseMode(mode)
		if err != nil {
			return benchmark.Options{}, err
		}
		opts.Mode = m
	}
	if len(algorithms) > 0 {
		algs, err := benchmark.ParseAlgorithms(algorithms)
		if err != nil {
			return benchmark.Options{}, err
		}
		opts.Algorithms = algs
	}
	return opts, nil
}

func (s *Server) checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("size must be positive, got %d", size)
	}
	if size > s.cfg.MaxSize {
		return fmt.Errorf("size %d exceeds the limit of %d", size, s.cfg.MaxSize)
	}
	return nil
}
