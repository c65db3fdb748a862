package server

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/descriptors"
	"github.com/jonathan/resume-recommender/internal/evaluate"
	"github.com/jonathan/resume-recommender/internal/extract"
	"github.com/jonathan/resume-recommender/internal/fetch"
	"github.com/jonathan/resume-recommender/internal/types"
)

// maxUploadBytes bounds the multipart form size for evaluation requests.
const maxUploadBytes = 32 << 20

// evaluationResult is the wire form of one evaluation envelope.
type evaluationResult struct {
	ID             uuid.UUID      `json:"id"`
	Source         string         `json:"source"`
	OK             bool           `json:"ok"`
	CandidateName  string         `json:"candidate_name,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	OverallScore   *float64       `json:"overall_score,omitempty"`
	Record         map[string]any `json:"record,omitempty"`
	Error          string         `json:"error,omitempty"`
	RawResponse    string         `json:"raw_response,omitempty"`
	CleanedText    string         `json:"cleaned_text,omitempty"`
}

func resultFromEvaluation(ev *types.Evaluation) evaluationResult {
	result := evaluationResult{
		ID:     ev.ID,
		Source: ev.Source,
		OK:     ev.OK(),
	}
	if ev.Err != nil {
		// Failed evaluations keep the model text so the caller can inspect
		// what could not be recovered.
		result.Error = ev.Err.Error()
		result.RawResponse = ev.RawResponse
		result.CleanedText = ev.CleanedText
		return result
	}
	score := ev.Record.OverallScore()
	result.CandidateName = ev.Record.CandidateName()
	result.Recommendation = ev.Record.Recommendation()
	result.OverallScore = &score
	result.Record = ev.Record.Map()
	return result
}

// handleEvaluate evaluates a batch of uploaded resumes against one job.
//
// Multipart form fields:
//
//	job_title       required
//	department      optional
//	job_description text of the posting (exclusive with job_url)
//	job_url         URL to fetch the posting from (exclusive with job_description)
//	fields          optional descriptor document, inline value or uploaded file
//	resumes         one or more resume files (pdf, docx, txt, md)
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}

	job, err := s.jobFromForm(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	fields, err := fieldsFromForm(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resumes := r.MultipartForm.File["resumes"]
	if len(resumes) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "at least one resume file is required")
		return
	}

	evaluator, err := evaluate.New(s.client, job, fields)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Extraction failures become failed envelopes so one unreadable upload
	// cannot abort the batch.
	failed := make(map[int]*types.Evaluation)
	var docs []evaluate.Document
	var docIndex []int
	for i, header := range resumes {
		text, err := readResume(header)
		if err != nil {
			failed[i] = &types.Evaluation{ID: uuid.New(), Source: header.Filename, Err: err}
			continue
		}
		docs = append(docs, evaluate.Document{Source: header.Filename, Text: text})
		docIndex = append(docIndex, i)
	}

	evaluated := evaluator.Batch(r.Context(), docs, s.parallelism)

	ordered := make([]*types.Evaluation, len(resumes))
	for i, ev := range evaluated {
		ordered[docIndex[i]] = ev
	}
	for i, ev := range failed {
		ordered[i] = ev
	}

	results := make([]evaluationResult, len(ordered))
	for i, ev := range ordered {
		results[i] = resultFromEvaluation(ev)
		if s.db != nil {
			if err := s.db.SaveEvaluation(r.Context(), job.Title, job.Department, ev); err != nil {
				log.Printf("Failed to persist evaluation %s: %v", ev.ID, err)
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_title":  job.Title,
		"department": job.Department,
		"results":    results,
	})
}

// precheckRequest is the JSON body for POST /v1/precheck.
type precheckRequest struct {
	JobTitle       string                  `json:"job_title"`
	Department     string                  `json:"department"`
	JobDescription string                  `json:"job_description"`
	Fields         []types.FieldDescriptor `json:"fields,omitempty"`
}

// handlePrecheck runs the pre-evaluation configuration checks.
func (s *Server) handlePrecheck(w http.ResponseWriter, r *http.Request) {
	var req precheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.JobTitle == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_title is required")
		return
	}
	if req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	job := evaluate.Job{Title: req.JobTitle, Department: req.Department, Description: req.JobDescription}
	evaluator, err := evaluate.New(s.client, job, req.Fields)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := evaluator.Precheck(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListEvaluations lists persisted evaluations, newest first.
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filters := db.EvaluationFilters{
		JobTitle:       r.URL.Query().Get("job_title"),
		Recommendation: r.URL.Query().Get("recommendation"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filters.Limit = n
	}

	evaluations, err := s.db.ListEvaluations(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"evaluations": evaluations})
}

// handleGetEvaluation retrieves one persisted evaluation by ID.
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid evaluation id")
		return
	}

	stored, err := s.db.GetEvaluation(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "evaluation not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// jobFromForm builds the Job from the multipart form, fetching the posting
// when only a URL was provided.
func (s *Server) jobFromForm(r *http.Request) (evaluate.Job, error) {
	job := evaluate.Job{
		Title:       strings.TrimSpace(r.FormValue("job_title")),
		Department:  strings.TrimSpace(r.FormValue("department")),
		Description: strings.TrimSpace(r.FormValue("job_description")),
	}
	jobURL := strings.TrimSpace(r.FormValue("job_url"))

	if job.Title == "" {
		return job, &ErrBadRequest{Field: "job_title", Message: "required"}
	}
	if job.Description != "" && jobURL != "" {
		return job, &ErrBadRequest{Field: "job_description", Message: "exclusive with job_url"}
	}
	if job.Description == "" && jobURL == "" {
		return job, &ErrBadRequest{Field: "job_description", Message: "job_description or job_url is required"}
	}

	if jobURL != "" {
		text, err := fetch.JobDescription(r.Context(), jobURL, nil)
		if err != nil {
			return job, err
		}
		job.Description = text
	}
	return job, nil
}

// fieldsFromForm parses the optional custom field descriptor document, either
// inline in the "fields" form value or as an uploaded file.
func fieldsFromForm(r *http.Request) ([]types.FieldDescriptor, error) {
	if inline := strings.TrimSpace(r.FormValue("fields")); inline != "" {
		return descriptors.ParseJSON([]byte(inline), "fields")
	}

	uploads := r.MultipartForm.File["fields"]
	if len(uploads) == 0 {
		return nil, nil
	}

	header := uploads[0]
	file, err := header.Open()
	if err != nil {
		return nil, &ErrBadRequest{Field: "fields", Message: "failed to open upload: " + err.Error()}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrBadRequest{Field: "fields", Message: "failed to read upload: " + err.Error()}
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".yaml", ".yml":
		return descriptors.ParseYAML(data, header.Filename)
	default:
		return descriptors.ParseJSON(data, header.Filename)
	}
}

// readResume opens one uploaded resume and extracts its text.
func readResume(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", &ErrBadRequest{Field: "resumes", Message: "failed to open " + header.Filename}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", &ErrBadRequest{Field: "resumes", Message: "failed to read " + header.Filename}
	}
	return extract.FromBytes(header.Filename, data)
}
