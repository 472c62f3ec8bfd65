package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"leadenrich/internal/browser"
	"leadenrich/internal/inference"
	"leadenrich/internal/notification"
	"leadenrich/internal/pipeline"
	"leadenrich/internal/storage"
	"leadenrich/internal/workspace"
)

// serverDeps holds the shared, read-only dependencies every HTTP handler
// needs, adapted from the teacher's Dashboard struct (internal/dashboard/
// dashboard.go) which threads a *storage.Storage the same way.
type serverDeps struct {
	workspace *workspace.Manager
	llmClient *inference.Client
	proxies   []browser.Proxy
	notifier  *notification.Notifier
	ledger    *storage.Storage

	mu   sync.Mutex
	jobs map[string]*jobDescriptor
	log  *eventLog
}

// jobDescriptor is what upload() hands back: enough for analyze() to locate
// the staged file and run the scraper against it (§6 HTTP boundary).
type jobDescriptor struct {
	JobID        string `json:"job_id"`
	UserID       string `json:"user_id"`
	StagingPath  string `json:"staging_path"`
	OriginalName string `json:"original_name"`
	TabType      string `json:"tab_type"`
	NotifyEmail  string `json:"notify_email,omitempty"`
}

func (d *serverDeps) recordJob(j *jobDescriptor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.jobs == nil {
		d.jobs = make(map[string]*jobDescriptor)
	}
	d.jobs[j.JobID] = j
}

func (d *serverDeps) lookupJob(id string) (*jobDescriptor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	j, ok := d.jobs[id]
	return j, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": err.Error()})
}

// handleUpload implements upload(file, tab_type) -> job descriptor. No
// scraping happens here; the file is only staged into the user's uploads
// directory.
func (d *serverDeps) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		userID = "default"
	}
	tabType := r.FormValue("tab_type")
	notifyEmail := r.FormValue("notify_email")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Errorf("missing file: %w", err))
		return
	}
	defer file.Close()

	uploadsDir, err := d.workspace.UploadsDir(userID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	dest := filepath.Join(uploadsDir, header.Filename)
	out, err := os.Create(dest)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	jobID := fmt.Sprintf("%s_%d", userID, len(d.jobs)+1)
	job := &jobDescriptor{
		JobID:        jobID,
		UserID:       userID,
		StagingPath:  dest,
		OriginalName: header.Filename,
		TabType:      tabType,
		NotifyEmail:  notifyEmail,
	}
	d.recordJob(job)
	if d.ledger != nil {
		if err := d.ledger.CreateJob(storage.Job{ID: jobID, UserID: userID, OriginalName: header.Filename, JobType: tabType}); err != nil {
			d.logEvent(fmt.Sprintf("ledger: failed to record job %s: %v", jobID, err))
		}
	}
	d.logEvent(fmt.Sprintf("uploaded %s for user %s (tab=%s)", header.Filename, userID, tabType))

	writeJSON(w, http.StatusOK, job)
}

// handleAnalyze implements analyze(filepath, analysis_type, max_records) ->
// download URL. Runs the full pipeline and returns where the merged output
// landed.
func (d *serverDeps) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		JobID        string `json:"job_id"`
		AnalysisType string `json:"analysis_type"`
		MaxRecords   int    `json:"max_records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	descriptor, ok := d.lookupJob(req.JobID)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Errorf("unknown job_id %q", req.JobID))
		return
	}

	maxRecords := req.MaxRecords
	if maxRecords <= 0 {
		maxRecords = 100
	}

	job := pipeline.Job{
		UserID:       descriptor.UserID,
		InputPath:    descriptor.StagingPath,
		OriginalName: descriptor.OriginalName,
		Type:         pipeline.JobType(req.AnalysisType),
		MaxRecords:   maxRecords,
		LLMClient:    d.llmClient,
		Workspace:    d.workspace,
		ProxyPool:    d.proxies,
		Concurrency:  1,
	}

	if d.ledger != nil {
		if err := d.ledger.UpdateStatus(req.JobID, "running"); err != nil {
			d.logEvent(fmt.Sprintf("ledger: failed to mark job %s running: %v", req.JobID, err))
		}
	}

	d.logEvent(fmt.Sprintf("analyze started for job %s (%s)", req.JobID, req.AnalysisType))
	result, err := pipeline.Run(r.Context(), job)
	if err != nil {
		d.logEvent(fmt.Sprintf("analyze failed for job %s: %v", req.JobID, err))
		if d.ledger != nil {
			if uerr := d.ledger.UpdateStatus(req.JobID, "failed"); uerr != nil {
				d.logEvent(fmt.Sprintf("ledger: failed to mark job %s failed: %v", req.JobID, uerr))
			}
		}
		writeJSONError(w, http.StatusUnprocessableEntity, err)
		return
	}
	d.logEvent(fmt.Sprintf("analyze finished for job %s: %d/%d rows enriched", req.JobID, result.RowsEnriched, result.RowsIn))
	if d.ledger != nil {
		if err := d.ledger.CompleteJob(req.JobID, result.RowsIn, result.RowsEnriched, result.OutputPath); err != nil {
			d.logEvent(fmt.Sprintf("ledger: failed to complete job %s: %v", req.JobID, err))
		}
	}

	downloadURL := "/download?filename=" + filepath.Base(result.OutputPath)

	if d.notifier != nil && descriptor.NotifyEmail != "" {
		summary := notification.JobSummary{
			OriginalName: descriptor.OriginalName,
			DownloadURL:  downloadURL,
			RowsIn:       result.RowsIn,
			RowsEnriched: result.RowsEnriched,
			EligibleRows: result.EligibleRows,
			Confidence:   string(result.Confidence),
		}
		if err := d.notifier.SendJobCompletion(descriptor.NotifyEmail, summary); err != nil {
			d.logEvent(fmt.Sprintf("notification failed for job %s: %v", req.JobID, err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"download_url":  downloadURL,
		"rows_in":       result.RowsIn,
		"rows_enriched": result.RowsEnriched,
		"eligible_rows": result.EligibleRows,
		"confidence":    result.Confidence,
		"user_id":       descriptor.UserID,
	})
}

// handleDownload implements download(filename) -> file stream, then triggers
// the per-user batch-file cleanup (§4.11).
func (d *serverDeps) handleDownload(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		http.Error(w, "filename is required", http.StatusBadRequest)
		return
	}

	dir, err := d.workspace.ResultsDir(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	path := filepath.Join(dir, filepath.Base(filename))
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(filename))
	http.ServeFile(w, r, path)

	if err := d.workspace.CleanupAfterDownload(userID); err != nil {
		d.logEvent(fmt.Sprintf("cleanup failed for user %s: %v", userID, err))
	}
}

// handleTerminalFeed implements terminal_feed: an append-only event stream
// for observability, grounded on the teacher's handleAPIStatusChanges
// JSON-ledger pattern but generalized to a live log rather than a status
// ledger.
func (d *serverDeps) handleTerminalFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.log.Snapshot())
}

func (d *serverDeps) logEvent(msg string) {
	d.log.Append(msg)
}

// eventLog is a bounded, append-only ring of timestamped log lines backing
// the terminal_feed endpoint.
type eventLog struct {
	mu    sync.Mutex
	lines []eventLine
	cap   int
}

type eventLine struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

func newEventLog(capacity int) *eventLog {
	return &eventLog{cap: capacity}
}

func (l *eventLog) Append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, eventLine{Time: time.Now(), Message: msg})
	if len(l.lines) > l.cap {
		l.lines = l.lines[len(l.lines)-l.cap:]
	}
}

func (l *eventLog) Snapshot() []eventLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]eventLine, len(l.lines))
	copy(out, l.lines)
	return out
}
