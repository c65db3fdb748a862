package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-recommender/internal/llm"
)

type fakeClient struct {
	respond func(prompt string) (string, error)
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.respond(prompt)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.respond(prompt)
}

func (f *fakeClient) Close() error { return nil }

func modelReply(candidate string) string {
	return `{"key_strengths": ["x"], "key_strengths_score": 5, "key_strengths_explanation": "e", ` +
		`"experience_score": 4, "experience_explanation": "e", ` +
		`"skills_match_score": 3, "skills_match_explanation": "e", ` +
		`"potential_concerns": ["c"], "recommendation": "Hire", ` +
		fmt.Sprintf(`"candidate_name": %q, `, candidate) +
		`"job_title": "Backend Engineer", "department": "Engineering", ` +
		`"overall_score": 4, "overall_explanation": "e", ` +
		`"custom_considerations": [{"field": "gpa", "instruction": "i", "applied": true, "impact": "none"}], ` +
		`"gpa": 3.8, "gpa_score": 4, "gpa_explanation": "ok"}`
}

func newTestServer(respond func(prompt string) (string, error)) *Server {
	return New(Config{Addr: ":0"}, &fakeClient{respond: respond}, nil)
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluations", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleEvaluate(t *testing.T) {
	s := newTestServer(func(string) (string, error) {
		return modelReply("Ada Lovelace"), nil
	})

	req := multipartRequest(t,
		map[string]string{
			"job_title":       "Backend Engineer",
			"department":      "Engineering",
			"job_description": "We need Go and SQL expertise.",
			"fields":          `{"fields": [{"name": "gpa", "kind": "float"}]}`,
		},
		[]formFile{{"resumes", "ada.txt", "Ada Lovelace. 8 years of Go."}},
	)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		JobTitle string             `json:"job_title"`
		Results  []evaluationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Backend Engineer", resp.JobTitle)
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].OK)
	assert.Equal(t, "ada.txt", resp.Results[0].Source)
	assert.Equal(t, "Ada Lovelace", resp.Results[0].CandidateName)
	assert.Equal(t, "Hire", resp.Results[0].Recommendation)
	require.NotNil(t, resp.Results[0].OverallScore)
	assert.Equal(t, 4.0, *resp.Results[0].OverallScore)
}

func TestHandleEvaluateMissingJobTitle(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := multipartRequest(t,
		map[string]string{"job_description": "desc"},
		[]formFile{{"resumes", "a.txt", "text"}},
	)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_title")
}

func TestHandleEvaluateNoResumes(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := multipartRequest(t,
		map[string]string{"job_title": "SRE", "job_description": "desc"},
		nil,
	)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one resume")
}

func TestHandleEvaluateBadDescriptors(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := multipartRequest(t,
		map[string]string{
			"job_title":       "SRE",
			"job_description": "desc",
			"fields":          `{"fields": [{"name": "gpa", "kind": "decimal"}]}`,
		},
		[]formFile{{"resumes", "a.txt", "text"}},
	)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEvaluateUnreadableUploadIsIsolated(t *testing.T) {
	s := newTestServer(func(string) (string, error) {
		return modelReply("Candidate"), nil
	})

	req := multipartRequest(t,
		map[string]string{
			"job_title":       "Backend Engineer",
			"job_description": "desc",
			"fields":          `{"fields": [{"name": "gpa", "kind": "float"}]}`,
		},
		[]formFile{
			{"resumes", "good.txt", "fine resume"},
			{"resumes", "bad.rtf", "{\\rtf1}"},
		},
	)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Results []evaluationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].OK)
	assert.False(t, resp.Results[1].OK)
	assert.Equal(t, "bad.rtf", resp.Results[1].Source)
	assert.Contains(t, resp.Results[1].Error, "unsupported file type")
}

func TestHandlePrecheck(t *testing.T) {
	s := newTestServer(func(prompt string) (string, error) {
		return "summary text", nil
	})

	body := `{"job_title": "SRE", "job_description": "Keep things up.", "fields": [{"name": "gpa", "kind": "float"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/precheck", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "summary text")
	assert.Contains(t, rec.Body.String(), `"gpa"`)
}

func TestHandlePrecheckMissingFields(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := httptest.NewRequest(http.MethodPost, "/v1/precheck", bytes.NewReader([]byte(`{"job_title": "SRE"}`)))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_description")
}

func TestHandleListEvaluationsNoStore(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := httptest.NewRequest(http.MethodGet, "/v1/evaluations", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleGetEvaluationInvalidID(t *testing.T) {
	s := New(Config{Addr: ":0"}, &fakeClient{respond: func(string) (string, error) { return "", nil }}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/evaluations/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	// Store check comes first when the server runs without a database.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(func(string) (string, error) { return "", nil })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
