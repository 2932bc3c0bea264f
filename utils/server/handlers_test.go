package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/pipeline"
	"github.com/processforge/bpmn-architect/utils/prompts"
	"github.com/processforge/bpmn-architect/utils/storage"
)

const testBpmnXML = `<?xml version="1.0" encoding="UTF-8"?><bpmn:definitions id="d1"></bpmn:definitions>`

// scriptedInvoker returns canned responses in call order
type scriptedInvoker struct {
	responses []string
	calls     int
}

func (s *scriptedInvoker) Invoke(modelID string, temperature float64, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", errors.New("scriptedInvoker: unscripted call")
	}
	response := s.responses[s.calls]
	s.calls++
	return response, nil
}

func newTestServer(t *testing.T, invoker pipeline.Invoker) *Server {
	t.Helper()

	promptDir := filepath.Join(t.TempDir(), "prompts")
	store := prompts.NewStore(promptDir)

	return &Server{
		mux:         http.NewServeMux(),
		config:      &config.ServerConfig{Port: 8080, DataDir: t.TempDir()},
		envConfig:   &config.EnvConfig{},
		pipeline:    pipeline.NewWithInvoker(invoker, store),
		promptStore: store,
		diagrams:    &fileStore{store: storage.NewStore(t.TempDir())},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	assert.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHandleModels(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handleModels(w, httptest.NewRequest(http.MethodGet, "/models", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ModelsResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Models)
	assert.NotEmpty(t, resp.DefaultModel)
}

func TestHandleGuide(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handleGuide(w, httptest.NewRequest(http.MethodGet, "/guide", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GuideResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Overview)
	assert.NotEmpty(t, resp.Elements)
}

func TestHandleRefine(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{responses: []string{"1. Start\n2. Task\n3. End"}})

	w := postJSON(t, s.handleRefine, "/refine", pipeline.RefineInput{RawUserInput: "a simple approval flow"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp RefineResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.RefinedInstructions, "Task")
}

func TestHandleRefineEmptyInput(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := postJSON(t, s.handleRefine, "/refine", pipeline.RefineInput{RawUserInput: "  "})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp RefineResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleRefineBadBody(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	r := httptest.NewRequest(http.MethodPost, "/refine", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.handleRefine(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRefineWrongMethod(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handleRefine(w, httptest.NewRequest(http.MethodGet, "/refine", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{responses: []string{
		"```xml\n" + testBpmnXML + "\n```",
		`{"isValid": true, "issues": [], "summary": "ok"}`,
	}})

	w := postJSON(t, s.handleGenerate, "/generate", pipeline.GenerateInput{UserInput: "1. start 2. end"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testBpmnXML, resp.BpmnXml)
	assert.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)
}

func TestHandleValidateAlwaysReturnsVerdict(t *testing.T) {
	// The invoker is unscripted, so the model call fails; the handler must
	// still answer with a negative verdict
	s := newTestServer(t, &scriptedInvoker{})

	w := postJSON(t, s.handleValidate, "/validate", pipeline.ValidateInput{BpmnXml: testBpmnXML})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ValidateResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Validation)
	assert.False(t, resp.Validation.IsValid)
	assert.NotEmpty(t, resp.Validation.Issues)
}

func TestHandleCorrectShortCircuit(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := postJSON(t, s.handleCorrect, "/correct", pipeline.CorrectInput{
		OriginalBpmnXml:  testBpmnXML,
		ValidationIssues: nil,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp CorrectResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, testBpmnXML, resp.CorrectedBpmnXml)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleCorrect(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{responses: []string{
		"```xml\n" + testBpmnXML + "\n```",
		`{"isValid": true, "issues": []}`,
	}})

	w := postJSON(t, s.handleCorrect, "/correct", pipeline.CorrectInput{
		OriginalBpmnXml:  testBpmnXML,
		ValidationIssues: []string{"missing end event"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp CorrectResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testBpmnXML, resp.CorrectedBpmnXml)
	assert.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)
}

func TestHandlePipeline(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{responses: []string{
		"refined instructions",
		"```xml\n" + testBpmnXML + "\n```",
		`{"isValid": true, "issues": []}`,
	}})

	w := postJSON(t, s.handlePipeline, "/pipeline", pipeline.RunInput{RawUserInput: "a process"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp PipelineResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Result)
	assert.Equal(t, testBpmnXML, resp.Result.BpmnXml)
	assert.Equal(t, "refined instructions", resp.Result.RefinedInstructions)
}

func TestHandlePrompts(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	// GET falls back to the embedded default
	w := httptest.NewRecorder()
	s.handlePrompts(w, httptest.NewRequest(http.MethodGet, "/prompts?kind=generation", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp PromptResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Prompt)

	// PUT replaces the template
	body, _ := json.Marshal(PromptRequest{Prompt: "custom template"})
	r := httptest.NewRequest(http.MethodPut, "/prompts?kind=generation", bytes.NewReader(body))
	w = httptest.NewRecorder()
	s.handlePrompts(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// The next GET sees the saved text
	w = httptest.NewRecorder()
	s.handlePrompts(w, httptest.NewRequest(http.MethodGet, "/prompts?kind=generation", nil))
	var after PromptResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&after))
	assert.Equal(t, "custom template", after.Prompt)
}

func TestHandlePromptsUnknownKind(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handlePrompts(w, httptest.NewRequest(http.MethodGet, "/prompts?kind=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDiagramsLifecycle(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	// Save
	w := postJSON(t, s.handleDiagrams, "/diagrams", DiagramRequest{Title: "Order process", Xml: testBpmnXML})
	assert.Equal(t, http.StatusOK, w.Code)

	var saveResp DiagramResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&saveResp))
	assert.True(t, saveResp.Success)
	assert.NotNil(t, saveResp.Diagram)
	id := saveResp.Diagram.ID

	// List
	w = httptest.NewRecorder()
	s.handleDiagrams(w, httptest.NewRequest(http.MethodGet, "/diagrams", nil))
	var listResp DiagramListResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&listResp))
	assert.True(t, listResp.Success)
	assert.Len(t, listResp.Diagrams, 1)

	// Get by id
	w = httptest.NewRecorder()
	s.handleDiagrams(w, httptest.NewRequest(http.MethodGet, "/diagrams?id="+id, nil))
	var getResp DiagramResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&getResp))
	assert.True(t, getResp.Success)
	assert.Equal(t, testBpmnXML, getResp.Diagram.XML)

	// Delete
	w = httptest.NewRecorder()
	s.handleDiagrams(w, httptest.NewRequest(http.MethodDelete, "/diagrams?id="+id, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete again fails
	w = httptest.NewRecorder()
	s.handleDiagrams(w, httptest.NewRequest(http.MethodDelete, "/diagrams?id="+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDiagramsRename(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	saved, err := s.diagrams.Save(testBpmnXML, "old title")
	assert.NoError(t, err)

	body, _ := json.Marshal(DiagramRequest{Title: "new title"})
	r := httptest.NewRequest(http.MethodPut, "/diagrams?id="+saved.ID, bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.handleDiagrams(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DiagramResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "new title", resp.Diagram.Title)

	// The new title is persisted
	after, err := s.diagrams.Get(saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, "new title", after.Title)

	// Missing id is rejected before the body is read
	r = httptest.NewRequest(http.MethodPut, "/diagrams", bytes.NewReader(body))
	w = httptest.NewRecorder()
	s.handleDiagrams(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown diagrams report not found
	body, _ = json.Marshal(DiagramRequest{Title: "x"})
	r = httptest.NewRequest(http.MethodPut, "/diagrams?id=bpmn_missing", bytes.NewReader(body))
	w = httptest.NewRecorder()
	s.handleDiagrams(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDiagramsSaveEmptyXML(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := postJSON(t, s.handleDiagrams, "/diagrams", DiagramRequest{Title: "empty", Xml: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDownload(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	saved, err := s.diagrams.Save(testBpmnXML, "Order / Fulfilment Process")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	s.handleDownload(w, httptest.NewRequest(http.MethodGet, "/diagrams/download?id="+saved.ID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/bpmn+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".bpmn")
	assert.Equal(t, testBpmnXML, w.Body.String())
}

func TestHandleDownloadMissingDiagram(t *testing.T) {
	s := newTestServer(t, &scriptedInvoker{})

	w := httptest.NewRecorder()
	s.handleDownload(w, httptest.NewRequest(http.MethodGet, "/diagrams/download?id=bpmn_missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	s.handleDownload(w, httptest.NewRequest(http.MethodGet, "/diagrams/download", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Order process", "Order-process.bpmn"},
		{"a/b\\c", "a-b-c.bpmn"},
		{"  ", "diagram.bpmn"},
		{"...", "diagram.bpmn"},
		{"already-safe_name.v2", "already-safe_name.v2.bpmn"},
	}

	for _, tt := range tests {
		if got := downloadFilename(tt.title); got != tt.expected {
			t.Errorf("downloadFilename(%q) = %q, want %q", tt.title, got, tt.expected)
		}
	}
}
