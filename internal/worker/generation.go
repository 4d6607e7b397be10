package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/user"
)

// JobTypeGeneration is the job type for queued itinerary generation.
const JobTypeGeneration = "itinerary_generation"

// GenerationJob is the queued request to generate and save an itinerary on
// behalf of a user.
type GenerationJob struct {
	JobType    string    `json:"job_type"`
	JobID      string    `json:"job_id"`
	UserID     string    `json:"user_id"`
	Location   string    `json:"location"`
	Month      string    `json:"month"`
	Days       int       `json:"days"`
	Activities []string  `json:"activities,omitempty"`
	TravelType string    `json:"travel_type"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Request returns the planner request encoded in the job.
func (j *GenerationJob) Request() planner.GenerationRequest {
	return planner.GenerationRequest{
		Location:   j.Location,
		Month:      j.Month,
		Days:       j.Days,
		Activities: j.Activities,
		Type:       planner.TravelType(j.TravelType),
	}
}

// GenerationMetrics tracks generation job statistics.
type GenerationMetrics struct {
	mu sync.RWMutex

	TotalJobs      int64
	SuccessfulJobs int64
	FailedJobs     int64

	LastJobAt       time.Time
	LastJobDuration time.Duration
	TotalDuration   time.Duration
}

// GenerationProcessorConfig holds configuration for creating a
// GenerationProcessor.
type GenerationProcessorConfig struct {
	Config      GenerationConfig
	Logger      zerolog.Logger
	Planner     *planner.Service
	Itineraries *itinerary.Service
	Users       *user.Service
}

// GenerationProcessor generates itineraries for queued jobs and saves them
// to the owner's collection.
type GenerationProcessor struct {
	config      GenerationConfig
	logger      zerolog.Logger
	planner     *planner.Service
	itineraries *itinerary.Service
	users       *user.Service

	metrics *GenerationMetrics
}

// NewGenerationProcessor creates a new generation job processor.
func NewGenerationProcessor(cfg GenerationProcessorConfig) *GenerationProcessor {
	config := cfg.Config
	if config.Timeout == 0 {
		config = DefaultGenerationConfig()
	}

	return &GenerationProcessor{
		config:      config,
		logger:      cfg.Logger,
		planner:     cfg.Planner,
		itineraries: cfg.Itineraries,
		users:       cfg.Users,
		metrics:     &GenerationMetrics{},
	}
}

// Process runs one generation job: generate, then save for the job's user.
// Transient generation failures are retried with exponential backoff.
func (p *GenerationProcessor) Process(ctx context.Context, job GenerationJob) error {
	startTime := time.Now()

	logger := p.logger.With().
		Str("job_id", job.JobID).
		Str("user_id", job.UserID).
		Str("location", job.Location).
		Logger()

	jobCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	var generated *itinerary.Itinerary
	operation := func() error {
		var err error
		generated, err = p.planner.GenerateItinerary(jobCtx, job.Request())
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.config.RetryInterval
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, p.config.MaxRetries), jobCtx))
	if err != nil {
		p.recordJob(startTime, false)
		logger.Error().Err(err).Msg("generation job failed")
		return fmt.Errorf("generating itinerary: %w", err)
	}

	avatarURL := ""
	if p.users != nil {
		avatarURL = p.users.AvatarURL(jobCtx, job.UserID)
	}

	saved, err := p.itineraries.Save(jobCtx, job.UserID, avatarURL, saveRequestFrom(generated))
	if err != nil {
		p.recordJob(startTime, false)
		logger.Error().Err(err).Msg("saving generated itinerary failed")
		return fmt.Errorf("saving itinerary: %w", err)
	}

	p.recordJob(startTime, true)
	logger.Info().
		Str("itinerary_id", saved.ID).
		Dur("duration", time.Since(startTime)).
		Msg("generation job completed")

	return nil
}

// saveRequestFrom converts a generated itinerary into the save payload used
// by the itinerary service.
func saveRequestFrom(it *itinerary.Itinerary) *models.SaveItineraryRequest {
	api := itinerary.ToAPI(it, "")
	return &models.SaveItineraryRequest{
		Title:         api.Title,
		Info:          api.Info,
		Destination:   api.Destination,
		Month:         api.Month,
		Itinerary:     api.Itinerary,
		Accommodation: api.Accommodation,
		Budget:        api.Budget,
	}
}

func (p *GenerationProcessor) recordJob(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	p.metrics.mu.Lock()
	defer p.metrics.mu.Unlock()

	p.metrics.TotalJobs++
	if success {
		p.metrics.SuccessfulJobs++
	} else {
		p.metrics.FailedJobs++
	}
	p.metrics.LastJobAt = time.Now()
	p.metrics.LastJobDuration = duration
	p.metrics.TotalDuration += duration
}

// GetMetrics returns a copy of the current metrics.
func (p *GenerationProcessor) GetMetrics() GenerationMetrics {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	return GenerationMetrics{
		TotalJobs:       p.metrics.TotalJobs,
		SuccessfulJobs:  p.metrics.SuccessfulJobs,
		FailedJobs:      p.metrics.FailedJobs,
		LastJobAt:       p.metrics.LastJobAt,
		LastJobDuration: p.metrics.LastJobDuration,
		TotalDuration:   p.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (p *GenerationProcessor) MetricsSnapshot() map[string]interface{} {
	m := p.GetMetrics()
	return map[string]interface{}{
		"total_jobs":        m.TotalJobs,
		"successful_jobs":   m.SuccessfulJobs,
		"failed_jobs":       m.FailedJobs,
		"last_job_at":       m.LastJobAt,
		"last_job_duration": m.LastJobDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}

// generateJobID generates a dash-free job identifier.
func generateJobID() string {
	return "job_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:20]
}
