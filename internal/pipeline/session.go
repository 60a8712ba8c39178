// Package pipeline sequences one consulting session: profile intake with
// optional résumé extraction, the diagnosis and recommendation generation
// calls run strictly in that order, and quote-cart initialization from the
// resulting proposal.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/highmark/consult-copilot/internal/extraction"
	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/quote"
	"github.com/highmark/consult-copilot/internal/types"
)

// State is the top-level session state.
type State string

// Session states. The only transitions are Input → Analyzing → Result and
// the reset edge Result → Input.
const (
	StateInput     State = "INPUT"
	StateAnalyzing State = "ANALYZING"
	StateResult    State = "RESULT"
)

// ParseStatus tracks the résumé-extraction sub-flow nested inside the input
// state. It never changes the top-level state.
type ParseStatus string

// Résumé parsing statuses.
const (
	ParseIdle    ParseStatus = "idle"
	ParseRunning ParseStatus = "parsing"
	ParseDone    ParseStatus = "done"
	ParseFailed  ParseStatus = "failed"
)

// Extractor produces a partial profile from a résumé document.
type Extractor interface {
	Extract(ctx context.Context, document []byte, mimeType string) (*types.ProfilePatch, error)
}

// Diagnoser produces a structurally valid diagnosis for a profile.
type Diagnoser interface {
	Diagnose(ctx context.Context, profile *types.StudentProfile) (*types.DiagnosisResult, error)
}

// Recommender produces a structurally valid proposal from a diagnosis.
type Recommender interface {
	Recommend(ctx context.Context, profile *types.StudentProfile, diag *types.DiagnosisResult) (*types.RecommendationResult, error)
}

// Recorder persists run records and artifacts. Persistence is optional and
// never blocks a run; failures are reported as progress events only.
type Recorder interface {
	StartRun(ctx context.Context, sessionID uuid.UUID, studentName string) (uuid.UUID, error)
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Engines bundles the three generation engines a session runs on.
type Engines struct {
	Extractor   Extractor
	Diagnoser   Diagnoser
	Recommender Recommender
}

// ProgressEvent is a human-readable progress update during a run.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"` // "progress" or "fallback"
	Message  string `json:"message"`
}

// ProgressCallback is called as a run advances.
type ProgressCallback func(event ProgressEvent)

// Session is the state machine for one consulting conversation. It is not
// safe for concurrent use; callers serialize access (the HTTP layer locks
// per session, the CLI is single-threaded).
type Session struct {
	ID uuid.UUID

	engines  Engines
	recorder Recorder

	state       State
	parseStatus ParseStatus

	profile        types.StudentProfile
	diagnosis      *types.DiagnosisResult
	recommendation *types.RecommendationResult
	cart           *quote.Cart
	proposal       *quote.Proposal
}

// NewSession creates a session in the input state with default profile values.
func NewSession(engines Engines, recorder Recorder) *Session {
	return &Session{
		ID:          uuid.New(),
		engines:     engines,
		recorder:    recorder,
		state:       StateInput,
		parseStatus: ParseIdle,
		profile:     knowledge.NewStudentProfile(),
	}
}

// State returns the current top-level state.
func (s *Session) State() State { return s.state }

// ParseStatus returns the résumé-extraction sub-flow status.
func (s *Session) ParseStatus() ParseStatus { return s.parseStatus }

// Profile returns a pointer to the session profile for field-level edits.
// Edits are only meaningful in the input state; the analysis snapshot is
// taken when Submit runs.
func (s *Session) Profile() *types.StudentProfile { return &s.profile }

// Diagnosis returns the stored diagnosis, nil before a successful run.
func (s *Session) Diagnosis() *types.DiagnosisResult { return s.diagnosis }

// Recommendation returns the stored proposal, nil before a successful run.
func (s *Session) Recommendation() *types.RecommendationResult { return s.recommendation }

// Cart returns the quote cart, nil before a successful run.
func (s *Session) Cart() *quote.Cart { return s.cart }

// Proposal returns the editable proposal copy, nil before a successful run.
func (s *Session) Proposal() *quote.Proposal { return s.proposal }

// ImportResume runs the extraction sub-flow: the document goes to the vision
// model and the returned fields are applied to the profile one by one,
// skipping empty values. A degraded extraction still applies its placeholder
// patch and reports the failure; it never blocks the session.
func (s *Session) ImportResume(ctx context.Context, document []byte, mimeType, fileName string) error {
	if s.state != StateInput {
		return ErrInvalidState
	}

	s.parseStatus = ParseRunning
	patch, err := s.engines.Extractor.Extract(ctx, document, mimeType)
	extraction.Apply(&s.profile, patch)
	if fileName != "" {
		s.profile.ResumeFileName = fileName
	}

	if err != nil {
		s.parseStatus = ParseFailed
		return err
	}
	s.parseStatus = ParseDone
	return nil
}

// Submit runs the analysis: diagnosis first, then the recommendation
// parameterized by its score, strictly in that order, then cart
// initialization. The engines self-heal, so Submit only fails on a defect
// escaping them; in that case the session reverts to input and no partial
// result is kept.
func (s *Session) Submit(ctx context.Context, onProgress ProgressCallback) (err error) {
	if s.state != StateInput {
		return ErrInvalidState
	}
	s.state = StateAnalyzing

	defer func() {
		if r := recover(); r != nil {
			s.discardInFlight()
			s.state = StateInput
			err = &Fault{Message: fmt.Sprintf("unexpected panic: %v", r)}
		}
	}()

	runID := s.startRun(ctx, onProgress)

	emit(onProgress, ProgressEvent{Step: "diagnosis", Category: "progress", Message: "正在接入 ATS 系统进行全维评分..."})
	diag, diagErr := s.engines.Diagnoser.Diagnose(ctx, &s.profile)
	if diagErr != nil {
		emit(onProgress, ProgressEvent{Step: "diagnosis", Category: "fallback", Message: diagErr.Error()})
	}
	s.record(ctx, runID, "diagnosis", diag, onProgress)

	emit(onProgress, ProgressEvent{Step: "recommendation", Category: "progress", Message: "正在构建个性化职业竞争策略..."})
	rec, recErr := s.engines.Recommender.Recommend(ctx, &s.profile, diag)
	if recErr != nil {
		emit(onProgress, ProgressEvent{Step: "recommendation", Category: "fallback", Message: recErr.Error()})
	}
	s.record(ctx, runID, "recommendation", rec, onProgress)

	s.diagnosis = diag
	s.recommendation = rec
	s.cart = quote.NewCart(knowledge.Catalog(), rec)
	s.proposal = quote.NewProposal(rec)
	s.state = StateResult

	s.completeRun(ctx, runID, diagErr, recErr)
	return nil
}

// Reset takes the session back to the input state for a fresh analysis.
// The diagnosis, recommendation, cart and résumé artifact reference are
// discarded; manually entered profile fields are retained so the operator
// can adjust inputs and re-run.
func (s *Session) Reset() {
	s.discardInFlight()
	s.profile.ResumeFileName = ""
	s.parseStatus = ParseIdle
	s.state = StateInput
}

func (s *Session) discardInFlight() {
	s.diagnosis = nil
	s.recommendation = nil
	s.cart = nil
	s.proposal = nil
}

func emit(onProgress ProgressCallback, event ProgressEvent) {
	if onProgress != nil {
		onProgress(event)
	}
}

// startRun opens a persistence record when a recorder is configured.
// uuid.Nil means the run is not being recorded.
func (s *Session) startRun(ctx context.Context, onProgress ProgressCallback) uuid.UUID {
	if s.recorder == nil {
		return uuid.Nil
	}
	runID, err := s.recorder.StartRun(ctx, s.ID, s.profile.Name)
	if err != nil {
		emit(onProgress, ProgressEvent{Step: "persistence", Category: "fallback",
			Message: fmt.Sprintf("continuing without persistence: %v", err)})
		return uuid.Nil
	}
	return runID
}

func (s *Session) record(ctx context.Context, runID uuid.UUID, step string, content any, onProgress ProgressCallback) {
	if s.recorder == nil || runID == uuid.Nil {
		return
	}
	if err := s.recorder.SaveArtifact(ctx, runID, step, content); err != nil {
		emit(onProgress, ProgressEvent{Step: "persistence", Category: "fallback",
			Message: fmt.Sprintf("failed to save %s artifact: %v", step, err)})
	}
}

func (s *Session) completeRun(ctx context.Context, runID uuid.UUID, diagErr, recErr error) {
	if s.recorder == nil || runID == uuid.Nil {
		return
	}
	status := "completed"
	if diagErr != nil || recErr != nil {
		status = "degraded"
	}
	// Best effort; the run already finished in memory.
	_ = s.recorder.CompleteRun(ctx, runID, status)
}
