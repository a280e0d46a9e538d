package verification

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"assetoracle/internal/asset/models"
	"assetoracle/internal/audit"
	"assetoracle/internal/platform/metrics"
	"assetoracle/internal/property"
	"assetoracle/internal/quorum"
	"assetoracle/internal/scoring"
	"assetoracle/pkg/dochash"
	dErrors "assetoracle/pkg/domain-errors"
)

// Network is the simulated chain the verification payload targets.
const Network = "chainlink-don-simulated"

// Aggregator produces a property snapshot for a normalized address.
type Aggregator interface {
	Aggregate(ctx context.Context, addr property.Address) (*property.Snapshot, error)
}

// Scorer turns a snapshot into an investment score. It never fails; degraded
// results carry SourceFallback.
type Scorer interface {
	Score(ctx context.Context, snapshot *property.Snapshot) scoring.Result
}

// Quorum runs one simulated confirmation round over the snapshot digest.
type Quorum interface {
	Run(ctx context.Context, digest string) quorum.Tally
}

// AssetStore is the slice of the asset store the pipeline needs.
type AssetStore interface {
	FindByID(ctx context.Context, id string) (models.Asset, error)
	Transition(ctx context.Context, id string, from, to models.VerificationStatus, data models.BlockchainData) (models.Asset, error)
}

// RunStore persists run status for the status-check operation.
type RunStore interface {
	Save(ctx context.Context, run Run) error
	Find(ctx context.Context, id string) (Run, error)
}

// AuditPublisher records run lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RunInput starts one verification run. Address is free text; AssetID is
// optional and, when present, ties the run to the asset's PENDING→terminal
// transition.
type RunInput struct {
	Address string
	AssetID string
	Wallet  string
}

// Service orchestrates verification runs.
type Service struct {
	assets     AssetStore
	runs       RunStore
	aggregator Aggregator
	scorer     Scorer
	quorum     Quorum
	auditor    AuditPublisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	now        func() time.Time
	locks      keyedLocks
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service.
func New(assets AssetStore, runs RunStore, aggregator Aggregator, scorer Scorer, q Quorum, opts ...Option) *Service {
	s := &Service{
		assets:     assets,
		runs:       runs,
		aggregator: aggregator,
		scorer:     scorer,
		quorum:     q,
		logger:     slog.Default(),
		tracer:     otel.Tracer("assetoracle/verification"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the full pipeline and returns the fulfilled run with its
// record. Concurrent runs on the same asset are serialized; only the first
// wins the PENDING→terminal transition, the rest fail with CodeConflict.
func (s *Service) Run(ctx context.Context, input RunInput) (Run, error) {
	ctx, span := s.tracer.Start(ctx, "verification.run")
	defer span.End()

	address := strings.TrimSpace(input.Address)
	if address == "" && input.AssetID == "" {
		return Run{}, dErrors.New(dErrors.CodeBadRequest, "address or assetId is required")
	}

	var (
		asset             models.Asset
		name, description string
	)
	if input.AssetID != "" {
		var err error
		asset, err = s.assets.FindByID(ctx, input.AssetID)
		if err != nil {
			return Run{}, err
		}
		if input.Wallet != "" && asset.OwnerWallet != strings.ToLower(input.Wallet) {
			return Run{}, dErrors.New(dErrors.CodeForbidden, "caller does not own this asset")
		}
		if asset.VerificationStatus != models.StatusPending {
			return Run{}, dErrors.Newf(dErrors.CodeConflict, "asset already %s", asset.VerificationStatus)
		}
		name, description = asset.Name, asset.Description
		if address == "" {
			address = asset.Location.Full()
		}
	} else {
		// Address-only runs anchor the hash to the address itself.
		name = address
	}

	lockKey := input.AssetID
	if lockKey == "" {
		lockKey = address
	}
	unlock := s.locks.lock(lockKey)
	defer unlock()

	run := Run{
		ID:        uuid.NewString(),
		AssetID:   input.AssetID,
		Status:    RunRunning,
		StartedAt: s.now(),
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return Run{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "record run start")
	}
	s.emit(ctx, audit.Event{
		AssetID: input.AssetID,
		RunID:   run.ID,
		Actor:   strings.ToLower(input.Wallet),
		Action:  audit.ActionVerificationStarted,
	})

	addr := property.NormalizeAddress(address)

	aggCtx, aggSpan := s.tracer.Start(ctx, "verification.aggregate")
	snapshot, err := s.aggregator.Aggregate(aggCtx, addr)
	aggSpan.End()
	if err != nil {
		return s.failRun(ctx, run, dErrors.Wrap(err, dErrors.CodeUnavailable, "aggregate property data"))
	}

	scoreCtx, scoreSpan := s.tracer.Start(ctx, "verification.score")
	score := s.scorer.Score(scoreCtx, snapshot)
	scoreSpan.End()

	digest := dochash.Compute(name, description, addr.Full())

	quorumCtx, quorumSpan := s.tracer.Start(ctx, "verification.quorum")
	tally := s.quorum.Run(quorumCtx, digest)
	quorumSpan.End()

	status := Resolve(score.InvestmentScore, tally.Reached)
	completedAt := s.now()
	record := BuildRecord(name, description, snapshot, score, tally, status, completedAt)

	// Commit: the asset transition and the record must land together. The
	// CAS transition is the serialization point against racing runs.
	_, commitSpan := s.tracer.Start(ctx, "verification.commit")
	defer commitSpan.End()

	if input.AssetID != "" {
		data := models.BlockchainData{
			DocumentHash:   record.DocumentHash,
			VerificationID: run.ID,
			Network:        Network,
		}
		if status == models.StatusVerified {
			data.VerifiedAt = completedAt
		}
		if _, err := s.assets.Transition(ctx, asset.ID, models.StatusPending, status, data); err != nil {
			return s.failRun(ctx, run, err)
		}
	}

	run.Status = RunFulfilled
	run.Record = &record
	run.CompletedAt = completedAt
	if err := s.runs.Save(ctx, run); err != nil {
		return Run{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "record run result")
	}

	if s.metrics != nil {
		s.metrics.IncVerificationRun(string(status))
	}
	s.emit(ctx, audit.Event{
		AssetID: input.AssetID,
		RunID:   run.ID,
		Actor:   strings.ToLower(input.Wallet),
		Action:  audit.ActionVerificationDone,
		Outcome: string(status),
		Reason:  record.QuorumSummary,
	})
	s.logger.InfoContext(ctx, "verification run completed",
		"run_id", run.ID,
		"asset_id", input.AssetID,
		"status", status,
		"score", score.InvestmentScore,
		"score_source", score.Source,
		"sources_verified", record.DataSourcesVerified,
		"quorum", record.QuorumSummary,
		"duration_ms", completedAt.Sub(run.StartedAt).Milliseconds(),
	)
	return run, nil
}

// Status answers the status-check operation for a run ID.
func (s *Service) Status(ctx context.Context, runID string) (Run, error) {
	return s.runs.Find(ctx, runID)
}

func (s *Service) failRun(ctx context.Context, run Run, cause error) (Run, error) {
	run.Status = RunFailed
	run.Reason = cause.Error()
	run.CompletedAt = s.now()
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.ErrorContext(ctx, "failed to record run failure", "run_id", run.ID, "error", err)
	}
	if s.metrics != nil {
		s.metrics.IncVerificationRun("FAILED")
	}
	return Run{}, cause
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "run_id", event.RunID, "error", err)
	}
}

// keyedLocks serializes pipeline work per asset so two in-process runs on the
// same asset cannot interleave. Cross-process races are still caught by the
// store's CAS transition.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
