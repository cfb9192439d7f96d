package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codeberg.org/snonux/lingosheet/internal"
	"codeberg.org/snonux/lingosheet/internal/batch"
	"codeberg.org/snonux/lingosheet/internal/chat"
	"codeberg.org/snonux/lingosheet/internal/history"
	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type translateRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type translateResponse struct {
	Messages []chat.Message `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type jobsResponse struct {
	Jobs []history.Job `json:"jobs"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxMessageBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Message too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	if err := s.translator.Ready(); err != nil {
		log.Printf("chat request rejected: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	language := s.language(req.Language)
	messages, err := chat.Exchange(r.Context(), s.translator, req.Message, language)
	if err != nil {
		status := http.StatusInternalServerError
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			log.Printf("upstream error from %s: %v (body: %s)", upstream.Provider, upstream.Err, upstream.Body)
			if upstream.StatusCode >= 400 {
				status = upstream.StatusCode
			}
		} else {
			log.Printf("chat translation failed: %v", err)
		}
		writeError(w, status, "Failed to get AI response")
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{Messages: messages})
}

func (s *Server) handleTranslateBatch(w http.ResponseWriter, r *http.Request) {
	if err := s.translator.Ready(); err != nil {
		log.Printf("batch request rejected: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	maxUpload := s.config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	tooLarge := fmt.Sprintf("File too large. Please upload a file smaller than %s", formatBytes(maxUpload))

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, tooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUpload {
		writeError(w, http.StatusBadRequest, tooLarge)
		return
	}

	language := s.language(r.FormValue("language"))
	log.Printf("Received file: %s, size: %d, language: %s", header.Filename, header.Size, language)

	rows, err := sheet.Read(file)
	if err != nil {
		log.Printf("spreadsheet parsing error: %v", err)
		if errors.Is(err, sheet.ErrNoSheets) {
			writeError(w, http.StatusBadRequest, "Invalid Excel file or no sheets found")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse Excel file: %v", err))
		return
	}

	start := time.Now()
	pipeline := batch.NewPipeline(s.translator, s.batchConfig)
	report := pipeline.Run(r.Context(), rows, language)
	if report.Truncated() {
		log.Printf("File has %d rows, only the first %d were processed", report.InputRows, report.Processed())
	}

	output, err := sheet.Write(report.Pairs())
	if err != nil {
		log.Printf("failed to write spreadsheet: %v", err)
		writeError(w, http.StatusInternalServerError, "Error processing Excel file")
		return
	}

	jobID := internal.GenerateJobID(header.Filename)
	s.recordJob(r, history.Job{
		ID:        jobID,
		FileName:  header.Filename,
		Language:  language,
		Provider:  s.translator.ProviderName(),
		InputRows: report.InputRows,
		Processed: report.Processed(),
		Dropped:   report.Dropped,
		Failed:    report.Count(batch.StatusFailed),
		Duration:  time.Since(start),
	})

	h := w.Header()
	h.Set("Content-Type", xlsxContentType)
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="translated_%s"`, outputName(header.Filename)))
	h.Set("X-Job-ID", jobID)
	h.Set("X-Rows-Total", strconv.Itoa(report.InputRows))
	h.Set("X-Rows-Processed", strconv.Itoa(report.Processed()))
	h.Set("X-Rows-Dropped", strconv.Itoa(report.Dropped))
	h.Set("X-Rows-Failed", strconv.Itoa(report.Count(batch.StatusFailed)))
	if report.Truncated() {
		h.Set("X-Truncation-Notice", fmt.Sprintf("File has %d rows; only the first %d were translated", report.InputRows, report.Processed()))
	}
	h.Set("Content-Length", strconv.Itoa(len(output)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output); err != nil {
		log.Printf("failed to send spreadsheet: %v", err)
	}
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if s.jobs == nil {
		writeJSON(w, http.StatusOK, jobsResponse{Jobs: []history.Job{}})
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), history.DefaultListLimit)
	jobs, err := s.jobs.List(r.Context(), limit)
	if err != nil {
		log.Printf("failed to list jobs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobsResponse{Jobs: jobs})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s.translator.ProviderName()})
}

func (s *Server) recordJob(r *http.Request, job history.Job) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.Record(r.Context(), job); err != nil {
		log.Printf("failed to record job %s: %v", job.ID, err)
	}
}

func (s *Server) language(requested string) string {
	if lang := strings.TrimSpace(requested); lang != "" {
		return lang
	}
	return s.config.DefaultLanguage
}

func outputName(uploaded string) string {
	name := internal.SanitizeFilename(uploaded)
	if name == "" {
		return "spreadsheet.xlsx"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func parseInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	num, err := strconv.Atoi(val)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

func formatBytes(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	if n >= 1<<10 && n%(1<<10) == 0 {
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
