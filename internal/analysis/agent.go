package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/logging"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"

	agentName   = "cv_analyzer"
	agentUserID = "cvmatch"
)

// AgentAnalyzer runs the comparison through an ADK llm agent. Every call
// gets its own short-lived session.
type AgentAnalyzer struct {
	name     string
	runner   *runner.Runner
	sessions session.Service
}

// NewAgentAnalyzer builds the Gemini model, the agent and its runner.
func NewAgentAnalyzer(ctx context.Context, apiKey, modelName string) (*AgentAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("empty api key")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	analyzer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Compares a job description with a candidate CV",
		Instruction: Prompt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        analyzer.Name(),
		Agent:          analyzer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &AgentAnalyzer{name: analyzer.Name(), runner: r, sessions: sessions}, nil
}

// Analyze sends both documents in one request and returns the model's
// final answer.
func (a *AgentAnalyzer) Analyze(ctx context.Context, jd, cv *documents.Document) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.name,
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sess := created.Session
	defer func() {
		err := a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			logging.FromContext(ctx).Warn("failed to delete agent session", "session_id", sess.ID(), "err", err)
		}
	}()

	msg := &genai.Content{
		Role:  "user",
		Parts: RequestParts(jd, cv),
	}

	var output string
	for event, err := range a.runner.Run(ctx, sess.UserID(), sess.ID(), msg, agent.RunConfig{}) {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil {
			output = contentText(event.Content)
		}
	}
	if strings.TrimSpace(output) == "" {
		return "", errEmptyResponse
	}
	return output, nil
}

// RequestParts lays out the user message: a label followed by either the
// inline PDF or the extracted text, job description first.
func RequestParts(jd, cv *documents.Document) []*genai.Part {
	parts := make([]*genai.Part, 0, 4)
	for _, doc := range []*documents.Document{jd, cv} {
		if doc == nil {
			continue
		}
		if doc.Inline() {
			parts = append(parts,
				&genai.Part{Text: fmt.Sprintf("%s (%s):", doc.Role.Label(), doc.Name)},
				&genai.Part{InlineData: &genai.Blob{MIMEType: doc.MIMEType, Data: doc.Data}},
			)
			continue
		}
		parts = append(parts, &genai.Part{
			Text: fmt.Sprintf("%s (%s):\n%s", doc.Role.Label(), doc.Name, doc.Text),
		})
	}
	return parts
}

func contentText(c *genai.Content) string {
	var sb strings.Builder
	for _, p := range c.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
