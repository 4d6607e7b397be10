package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/worker"
)

type stubGenerator struct {
	mu        sync.Mutex
	callCount int
	err       error
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) GenerateItinerary(_ context.Context, req planner.GenerationRequest) (*itinerary.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount++

	if s.err != nil {
		return nil, s.err
	}
	return &itinerary.Itinerary{
		Title: "2 Days in " + req.Location,
		Days: []itinerary.Day{
			{Number: 1, Title: "Arrival", Activities: []itinerary.Activity{
				{TimeRange: "10:00 AM - 12:00 PM", Location: "Old Town", Type: itinerary.TypeSightseeing},
			}},
		},
	}, nil
}

func (s *stubGenerator) SuggestDestinations(_ context.Context, _ planner.Season) (*planner.DestinationSuggestions, error) {
	return &planner.DestinationSuggestions{}, nil
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

func newTestProcessor(gen *stubGenerator, repo *itinerary.InMemoryRepository) *worker.GenerationProcessor {
	plannerService := planner.NewService(planner.ServiceConfig{
		Generator: gen,
		Logger:    zerolog.Nop(),
	})

	return worker.NewGenerationProcessor(worker.GenerationProcessorConfig{
		Config: worker.GenerationConfig{
			Timeout:       5 * time.Second,
			MaxRetries:    1,
			RetryInterval: time.Millisecond,
		},
		Logger:      zerolog.Nop(),
		Planner:     plannerService,
		Itineraries: itinerary.NewService(repo),
	})
}

func TestGenerationProcessor_SavesForJobUser(t *testing.T) {
	gen := &stubGenerator{}
	repo := itinerary.NewInMemoryRepository()
	processor := newTestProcessor(gen, repo)

	job := worker.GenerationJob{
		JobType:    worker.JobTypeGeneration,
		JobID:      "job_test1",
		UserID:     "usr_alice",
		Location:   "Porto",
		Month:      "June",
		Days:       2,
		TravelType: "couple",
	}

	err := processor.Process(context.Background(), job)
	require.NoError(t, err)

	saved, err := repo.ListByOwner(context.Background(), "usr_alice")
	require.NoError(t, err)
	require.Len(t, saved, 1)

	assert.Equal(t, "2 Days in Porto", saved[0].Title)
	assert.Equal(t, "Porto", saved[0].Destination)
	assert.Equal(t, "usr_alice", saved[0].CreatedBy)
	assert.NotEmpty(t, saved[0].ID)

	metrics := processor.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalJobs)
	assert.Equal(t, int64(1), metrics.SuccessfulJobs)
}

func TestGenerationProcessor_RetriesThenFails(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	repo := itinerary.NewInMemoryRepository()
	processor := newTestProcessor(gen, repo)

	job := worker.GenerationJob{
		JobType:    worker.JobTypeGeneration,
		JobID:      "job_test2",
		UserID:     "usr_alice",
		Location:   "Porto",
		Month:      "June",
		Days:       2,
		TravelType: "solo",
	}

	err := processor.Process(context.Background(), job)
	require.Error(t, err)

	// One initial attempt plus one retry.
	assert.Equal(t, 2, gen.calls())

	saved, err := repo.ListByOwner(context.Background(), "usr_alice")
	require.NoError(t, err)
	assert.Empty(t, saved)

	metrics := processor.GetMetrics()
	assert.Equal(t, int64(1), metrics.FailedJobs)
}

func TestGenerationProcessor_RejectsBadTravelType(t *testing.T) {
	gen := &stubGenerator{}
	repo := itinerary.NewInMemoryRepository()
	processor := newTestProcessor(gen, repo)

	job := worker.GenerationJob{
		JobType:    worker.JobTypeGeneration,
		JobID:      "job_test3",
		UserID:     "usr_alice",
		Location:   "Porto",
		Month:      "June",
		Days:       2,
		TravelType: "caravan",
	}

	err := processor.Process(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrGenerationFailed)
}

func TestDefaultGenerationConfig(t *testing.T) {
	cfg := worker.DefaultGenerationConfig()

	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, uint64(2), cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.RetryInterval)
}
