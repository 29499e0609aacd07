package casereview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Validation errors surfaced by the user-facing form boundary. Programmatic
// record building (Build) stays total; these apply to submissions only.
var (
	ErrMissingCaseID          = errors.New("el campo 'historia_clinica' es obligatorio")
	ErrMissingClinicalHistory = errors.New("la historia clínica está vacía")
	ErrMissingQuestion        = errors.New("la pregunta está vacía")
)

// AgentClient is the generative-AI collaborator. Its methods never fail:
// transport and response problems degrade to sentinel strings that are
// stored as if they were normal results.
type AgentClient interface {
	AnalyzeClinicalHistory(ctx context.Context, clinicalHistory string) (analysis, suggestedDilemma string)
	Deliberate(ctx context.Context, reportContext, keyPoints string) string
	Chat(ctx context.Context, reportContext, question string) string
}

// ChartRenderer produces the two opaque chart payloads, keyed by
// ChartRadarKey and ChartStatsKey. The payloads are never inspected here.
type ChartRenderer interface {
	Render(p Perspectives, stats AggregateStatistics) map[string]string
}

// Exporter renders a report document into a downloadable artifact.
type Exporter interface {
	Export(doc *Document) ([]byte, error)
}

type Service interface {
	CreateSession() ReviewSession
	DeleteSession(id uuid.UUID)
	AnalyzeHistory(ctx context.Context, sessionID uuid.UUID, clinicalHistory string) (analysis, suggestedDilemma string, err error)
	SubmitCase(ctx context.Context, sessionID uuid.UUID, fields Fields) (*Document, error)
	GetCase(ctx context.Context, caseID string) (*Document, error)
	ListCases(ctx context.Context) (map[string]*Document, error)
	RegenerateAnalysis(ctx context.Context, caseID string) (*Document, error)
	SendChatMessage(ctx context.Context, caseID, question string) ([]ChatTurn, error)
	ExportPDF(ctx context.Context, caseID string) (data []byte, filename string, err error)
}

type service struct {
	repo     Repository
	agent    AgentClient
	charts   ChartRenderer
	exporter Exporter
	sessions *SessionStore
	logger   zerolog.Logger
}

func NewService(repo Repository, agent AgentClient, charts ChartRenderer, exporter Exporter, sessions *SessionStore, logger zerolog.Logger) Service {
	return &service{
		repo:     repo,
		agent:    agent,
		charts:   charts,
		exporter: exporter,
		sessions: sessions,
		logger:   logger.With().Str("component", "casereview").Logger(),
	}
}

func (s *service) CreateSession() ReviewSession {
	sess := s.sessions.Create()
	s.logger.Info().Str("session_id", sess.ID.String()).Msg("review session created")
	return sess
}

func (s *service) DeleteSession(id uuid.UUID) {
	s.sessions.Delete(id)
	s.logger.Info().Str("session_id", id.String()).Msg("review session closed")
}

// AnalyzeHistory runs the clinical-history pre-analysis and, when the
// request is session-scoped, stores the output and the suggested dilemma on
// the session so the next submission can pick them up.
func (s *service) AnalyzeHistory(ctx context.Context, sessionID uuid.UUID, clinicalHistory string) (string, string, error) {
	if CoerceText(clinicalHistory, "") == "" {
		return "", "", ErrMissingClinicalHistory
	}

	analysis, suggested := s.agent.AnalyzeClinicalHistory(ctx, clinicalHistory)

	if sessionID != uuid.Nil {
		s.sessions.Update(sessionID, func(sess *ReviewSession) {
			sess.ClinicalHistory = clinicalHistory
			sess.PreAnalysis = analysis
			sess.SuggestedDilemma = suggested
		})
	}
	return analysis, suggested, nil
}

// SubmitCase validates the one required form field, builds the canonical
// record, derives the aggregates and charts, assembles the report document
// and persists it with a single at-most-once write.
func (s *service) SubmitCase(ctx context.Context, sessionID uuid.UUID, fields Fields) (*Document, error) {
	if CoerceText(fields["historia_clinica"], "") == "" {
		return nil, ErrMissingCaseID
	}

	rec := Build(fields)
	stats := ComputeAggregates(rec.Perspectivas)
	payloads := s.charts.Render(rec.Perspectivas, stats)

	var suggested string
	if sessionID != uuid.Nil {
		if sess, ok := s.sessions.Get(sessionID); ok {
			suggested = sess.SuggestedDilemma
			if rec.AnalisisHistoriaClinica == "" {
				rec.AnalisisHistoriaClinica = sess.PreAnalysis
			}
		}
	}

	doc := AssembleDocument(rec, stats, suggested, nil, payloads)
	if err := s.repo.Set(ctx, doc.CaseID, doc); err != nil {
		return nil, fmt.Errorf("failed to persist case %s: %w", doc.CaseID, err)
	}

	if sessionID != uuid.Nil {
		s.sessions.Update(sessionID, func(sess *ReviewSession) {
			sess.ActiveCaseID = doc.CaseID
		})
	}

	s.logger.Info().Str("case_id", doc.CaseID).Msg("case report stored")
	return doc, nil
}

func (s *service) GetCase(ctx context.Context, caseID string) (*Document, error) {
	return s.repo.Get(ctx, caseID)
}

func (s *service) ListCases(ctx context.Context) (map[string]*Document, error) {
	return s.repo.List(ctx)
}

// RegenerateAnalysis asks the agent for a fresh deliberative analysis over
// the whole report context and persists just that field. A degraded agent
// answer (sentinel string) is stored like any other result.
func (s *service) RegenerateAnalysis(ctx context.Context, caseID string) (*Document, error) {
	doc, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	analysis := s.agent.Deliberate(ctx, reportContext(doc), doc.PuntosClave)
	doc.SetDeliberativeAnalysis(analysis)

	if err := s.repo.UpdateAnalysis(ctx, caseID, analysis); err != nil {
		return nil, fmt.Errorf("failed to persist analysis for case %s: %w", caseID, err)
	}

	s.logger.Info().Str("case_id", caseID).Msg("deliberative analysis updated")
	return doc, nil
}

// SendChatMessage appends the user turn, obtains the assistant answer over
// the case context, appends it, and persists the chat field. The two new
// turns are returned in order.
func (s *service) SendChatMessage(ctx context.Context, caseID, question string) ([]ChatTurn, error) {
	if CoerceText(question, "") == "" {
		return nil, ErrMissingQuestion
	}

	doc, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	userTurn := doc.AppendChatTurn(RoleUser, question)
	answer := s.agent.Chat(ctx, reportContext(doc), question)
	assistantTurn := doc.AppendChatTurn(RoleAssistant, answer)

	if err := s.repo.UpdateChat(ctx, caseID, doc.Chat); err != nil {
		return nil, fmt.Errorf("failed to persist chat for case %s: %w", caseID, err)
	}

	return []ChatTurn{userTurn, assistantTurn}, nil
}

func (s *service) ExportPDF(ctx context.Context, caseID string) ([]byte, string, error) {
	doc, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.exporter.Export(doc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export case %s: %w", caseID, err)
	}
	return data, fmt.Sprintf("Reporte_%s.pdf", caseID), nil
}

// reportContext serializes the document for use as LLM prompt context. The
// chart payloads are dropped first: they are opaque blobs that would only
// waste prompt space.
func reportContext(doc *Document) string {
	trimmed := *doc
	trimmed.RadarChartJSON = ""
	trimmed.StatsChartJSON = ""

	raw, err := json.MarshalIndent(trimmed, "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}
