// Command enrichctl is the CLI entrypoint for the lead-enrichment pipeline.
// Grounded on the teacher's cmd/main.go flag layout and switch-on-mode
// dispatch, generalized from the Spanish procurement scraper's fixed
// pipeline to the configurable job types of §6.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"leadenrich/internal/browser"
	"leadenrich/internal/inference"
	"leadenrich/internal/notification"
	"leadenrich/internal/pipeline"
	"leadenrich/internal/storage"
	"leadenrich/internal/workspace"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Path to the uploaded lead file (CSV/XLSX/XLS)")
		jobType    = flag.String("mode", "address", "Job type: address (owner search) or phone (people search)")
		userID     = flag.String("user", "default", "Opaque user identifier, scopes the workspace")
		workDir    = flag.String("workspace", "./workspace", "Root directory for uploads/results/temp")
		maxRecords = flag.Int("max-records", 100, "Maximum eligible rows to run through the external scraper")
		serve      = flag.Bool("serve", false, "Start the HTTP upload/analyze/download server")
		port       = flag.String("port", "8080", "HTTP port for --serve mode")
		llmModel   = flag.String("llm-model", "openrouter/auto", "Model identifier passed to the schema-inference client")
	)
	flag.Parse()

	ws, err := workspace.NewManager(*workDir)
	if err != nil {
		log.Fatalf("Failed to initialize workspace: %v", err)
	}

	stop := make(chan struct{})
	go ws.Janitor(stop)
	defer close(stop)

	proxies := browser.LoadProxiesFromEnv()

	var llmClient *inference.Client
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		llmClient = inference.NewClient(apiKey, *llmModel)
	} else {
		log.Println("enrichctl: no LLM_API_KEY set, schema inference will use the heuristic fallback for every job")
	}

	var notifier *notification.Notifier
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		notifier = notification.NewNotifier(smtpHost, os.Getenv("SMTP_PORT"), os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_FROM"))
	}

	ledger, err := storage.NewStorage(filepath.Join(*workDir, "jobs.db"))
	if err != nil {
		log.Fatalf("enrichctl: failed to open job ledger: %v", err)
	}
	defer ledger.Close()

	switch {
	case *serve:
		runServer(*port, ws, llmClient, proxies, notifier, ledger)

	case *inputPath != "":
		job := pipeline.Job{
			UserID:       *userID,
			InputPath:    *inputPath,
			OriginalName: filepath.Base(*inputPath),
			Type:         pipeline.JobType(*jobType),
			MaxRecords:   *maxRecords,
			LLMClient:    llmClient,
			Workspace:    ws,
			ProxyPool:    proxies,
			Concurrency:  1,
		}

		result, err := pipeline.Run(context.Background(), job)
		if err != nil {
			log.Fatalf("enrichctl: job failed: %v", err)
		}
		fmt.Printf("enriched %d/%d rows (%d eligible), output: %s\n", result.RowsEnriched, result.RowsIn, result.EligibleRows, result.OutputPath)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runServer starts the thin HTTP boundary of §6: upload, analyze, download,
// terminal_feed. Handlers are adapted from the teacher's internal/dashboard
// routes, repurposed from contract-status pages to job lifecycle endpoints.
func runServer(port string, ws *workspace.Manager, llmClient *inference.Client, proxies []browser.Proxy, notifier *notification.Notifier, ledger *storage.Storage) {
	mux := http.NewServeMux()
	deps := &serverDeps{workspace: ws, llmClient: llmClient, proxies: proxies, notifier: notifier, ledger: ledger, log: newEventLog(500)}

	mux.HandleFunc("/upload", deps.handleUpload)
	mux.HandleFunc("/analyze", deps.handleAnalyze)
	mux.HandleFunc("/download", deps.handleDownload)
	mux.HandleFunc("/terminal_feed", deps.handleTerminalFeed)

	addr := ":" + port
	log.Printf("enrichctl: serving on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("enrichctl: server failed: %v", err)
	}
}
