// Package pipeline orchestrates the full enrichment job: read, infer,
// apply, scrape, validate, merge. Grounded on the teacher's cmd/main.go
// sequential stage wiring and its --serve mode's long-running-job model,
// generalized to the concurrent multi-tenant §5 scheduling model.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tebeka/selenium"

	"leadenrich/internal/applier"
	"leadenrich/internal/assessor"
	"leadenrich/internal/browser"
	"leadenrich/internal/inference"
	"leadenrich/internal/merge"
	"leadenrich/internal/peoplesearch"
	"leadenrich/internal/phonevalidate"
	"leadenrich/internal/reader"
	"leadenrich/internal/workspace"
)

// JobType selects which external scraper a job runs, per §6's upload tab
// types and §2's data-flow split.
type JobType string

const (
	JobOwnerSearch JobType = "address"
	JobPhoneSearch JobType = "phone"
)

// Job describes one enrichment run: one input file, one user workspace,
// one scraper mode, capped at MaxRecords eligible rows (§6 analyze()).
type Job struct {
	UserID        string
	InputPath     string
	OriginalName  string
	Type          JobType
	MaxRecords    int
	LLMClient     *inference.Client
	PhoneClassify phonevalidate.Classifier
	Workspace     *workspace.Manager
	ProxyPool     []browser.Proxy
	Concurrency   int // scraper contexts run in parallel per job; default 1
}

// Result is what a completed job reports back through the HTTP boundary
// (§6 analyze() -> download URL).
type Result struct {
	OutputPath      string
	RowsIn          int
	RowsEnriched    int
	Confidence      inference.Confidence
	SkippedDisk     bool
	EligibleRows    int
	ScraperAttempts int
}

// Run executes one job end to end. The only fatal errors are
// ErrInputUnreadable and failures to write the staging or output file;
// every other failure is absorbed per §7's propagation policy and the job
// still produces an output file pointing at the user's original data.
func Run(ctx context.Context, job Job) (*Result, error) {
	readResult, err := reader.Read(job.InputPath)
	if err != nil {
		log.Printf("pipeline: %s: %v", job.InputPath, err)
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	sample := sampleJSON(readResult.Rows, 20)
	formula := inference.Derive(ctx, job.LLMClient, readResult.Columns, sample, len(readResult.Rows), toStringRows(readResult.Rows))
	confidence := formula.Confidence
	if confidence == inference.ConfidenceLow {
		log.Printf("pipeline: %s: %v (heuristic fallback engaged)", job.InputPath, ErrInferenceFailure)
	}

	standardized := applier.Apply(readResult.Rows, formula)

	eligible := 0
	for i := range standardized {
		if standardized[i].Eligible {
			eligible++
		}
	}

	stagingPath, err := writeStagingFile(job.Workspace, job.UserID, standardized)
	if err != nil {
		return nil, fmt.Errorf("pipeline: write staging file: %w", err)
	}
	log.Printf("pipeline: staged %d rows (%d eligible) to %s", len(standardized), eligible, stagingPath)

	concurrency := job.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var result *Result
	switch job.Type {
	case JobOwnerSearch:
		result, err = runOwnerSearch(ctx, job, standardized, concurrency)
	case JobPhoneSearch:
		result, err = runPhoneSearch(ctx, job, standardized, concurrency)
	default:
		err = fmt.Errorf("pipeline: unknown job type %q", job.Type)
	}
	if err != nil {
		log.Printf("pipeline: scraper stage failed, falling back to unchanged output: %v", err)
		outPath, werr := writeUnchangedOutput(job.Workspace, job.UserID, job.OriginalName, readResult)
		if werr != nil {
			return nil, fmt.Errorf("pipeline: irrecoverable disk error: %w", werr)
		}
		return &Result{OutputPath: outPath, RowsIn: len(readResult.Rows), EligibleRows: eligible, Confidence: confidence}, nil
	}

	result.RowsIn = len(readResult.Rows)
	result.EligibleRows = eligible
	result.Confidence = confidence
	return result, nil
}

func runOwnerSearch(ctx context.Context, job Job, rows []applier.StandardizedRow, concurrency int) (*Result, error) {
	sem := make(chan struct{}, concurrency)
	resultsCh := make(chan assessor.OwnerRecord, len(rows))
	attempts := 0

	for i := range rows {
		row := rows[i]
		if job.MaxRecords > 0 && attempts >= job.MaxRecords {
			break
		}
		if !row.Eligible {
			continue
		}
		attempts++

		sem <- struct{}{}
		go func(r applier.StandardizedRow) {
			defer func() { <-sem }()
			bctx, err := browser.New(job.ProxyPool)
			if err != nil {
				log.Printf("pipeline: owner search: browser context failed for row %d: %v", r.OriginalIndex, err)
				resultsCh <- assessor.OwnerRecord{OriginalIndex: r.OriginalIndex, State: assessor.StateError}
				return
			}
			defer bctx.Close()

			driver := &assessorDriverAdapter{ctx: bctx}
			rec := assessor.LookupOwner(ctx, driver, assessorSearchURL, r.OriginalIndex, r.SearchFormat, r.Eligible)
			resultsCh <- rec
			browser.InterQueryDelay()
		}(row)
	}
	for i := 0; i < cap(sem); i++ {
		sem <- struct{}{}
	}
	close(resultsCh)

	var owners []assessor.OwnerRecord
	for rec := range resultsCh {
		owners = append(owners, rec)
	}

	targets := toMergeTargets(rows)
	var records []merge.ScrapedRecord
	enriched := 0
	for _, o := range owners {
		if o.State != assessor.StateParcel || len(o.Owners) == 0 {
			continue
		}
		enriched++
		for _, name := range o.Owners {
			records = append(records, merge.ScrapedRecord{
				OriginalIndex: o.OriginalIndex,
				Name:          name,
				Columns:       map[string]string{"Owner_Name": name},
			})
		}
	}

	attached := merge.Merge(targets, records)
	outPath, err := writeMergedOutput(job.Workspace, job.UserID, job.OriginalName, targets, attached, []string{"Owner_Name"})
	if err != nil {
		return nil, err
	}

	return &Result{OutputPath: outPath, RowsEnriched: enriched, ScraperAttempts: attempts}, nil
}

func runPhoneSearch(ctx context.Context, job Job, rows []applier.StandardizedRow, concurrency int) (*Result, error) {
	sem := make(chan struct{}, concurrency)
	resultsCh := make(chan *peoplesearch.PhoneRecord, len(rows))
	attempts := 0

	for i := range rows {
		row := rows[i]
		if job.MaxRecords > 0 && attempts >= job.MaxRecords {
			break
		}
		if !row.Eligible || row.HasExistingPhone {
			continue
		}
		attempts++

		sem <- struct{}{}
		go func(r applier.StandardizedRow) {
			defer func() { <-sem }()
			bctx, err := browser.New(job.ProxyPool)
			if err != nil {
				log.Printf("pipeline: phone search: browser context failed for row %d: %v", r.OriginalIndex, err)
				resultsCh <- nil
				return
			}
			defer bctx.Close()

			first, last := splitName(r.CleanedName)
			driver := &peopleSearchDriverAdapter{ctx: bctx}
			rec, found, err := peoplesearch.LookupPhones(ctx, driver, r.OriginalIndex, first, last, r.City, r.State, r.SearchFormat)
			if err != nil || !found {
				resultsCh <- nil
				browser.InterQueryDelay()
				return
			}
			resultsCh <- rec
			browser.InterQueryDelay()
		}(row)
	}
	for i := 0; i < cap(sem); i++ {
		sem <- struct{}{}
	}
	close(resultsCh)

	var phoneRecords []*peoplesearch.PhoneRecord
	for rec := range resultsCh {
		if rec != nil {
			phoneRecords = append(phoneRecords, rec)
		}
	}

	pairs := make([]phonevalidate.Pair, len(phoneRecords))
	primaries := make([]string, len(phoneRecords))
	secondaries := make([]string, len(phoneRecords))
	for i, r := range phoneRecords {
		pairs[i] = phonevalidate.Pair{Primary: r.PrimaryPhone, Secondary: r.SecondaryPhone}
		primaries[i] = r.PrimaryPhone
		secondaries[i] = r.SecondaryPhone
	}

	primaryLabels := phonevalidate.ValidateBatch(ctx, job.PhoneClassify, primaries)
	secondaryLabels := phonevalidate.ValidateBatch(ctx, job.PhoneClassify, secondaries)

	exploded := phonevalidate.Explode(pairs, primaryLabels, secondaryLabels)

	targets := toMergeTargets(rows)
	var records []merge.ScrapedRecord
	for _, row := range exploded {
		records = append(records, merge.ScrapedRecord{
			OriginalIndex: phoneRecords[row.SourceIndex].OriginalIndex,
			Columns:       map[string]string{"Phone_Number": row.PhoneNumber},
		})
	}

	attached := merge.Merge(targets, records)
	outPath, err := writeMergedOutput(job.Workspace, job.UserID, job.OriginalName, targets, attached, []string{"Phone_Number"})
	if err != nil {
		return nil, err
	}

	return &Result{OutputPath: outPath, RowsEnriched: len(exploded), ScraperAttempts: attempts}, nil
}

func toMergeTargets(rows []applier.StandardizedRow) []merge.Target {
	targets := make([]merge.Target, len(rows))
	for i, r := range rows {
		targets[i] = merge.Target{
			OriginalIndex: r.OriginalIndex,
			Columns: map[string]string{
				"cleaned_name":   r.CleanedName,
				"street_address": r.StreetAddress,
				"city":           r.City,
				"state":          r.State,
			},
		}
	}
	return targets
}

// splitName splits a §4.2-cleaned "FIRST LAST" name into its two tokens.
func splitName(cleaned string) (first, last string) {
	parts := strings.Fields(cleaned)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func toStringRows(rows []reader.RawRow) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		values := make([]string, len(row))
		for j, c := range row {
			values[j] = c.Value
		}
		out[i] = values
	}
	return out
}

func sampleJSON(rows []reader.RawRow, n int) string {
	if n > len(rows) {
		n = len(rows)
	}
	sample := rows[:n]
	var repr []map[string]string
	for _, row := range sample {
		m := make(map[string]string, len(row))
		for _, c := range row {
			m[c.Column] = c.Value
		}
		repr = append(repr, m)
	}
	return toJSONBestEffort(repr)
}

// toJSONBestEffort marshals v, returning "[]" instead of an error since a
// malformed sample must never block schema inference (it only degrades the
// AI-assisted step to its heuristic fallback).
func toJSONBestEffort(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

const assessorSearchURL = "https://bcpa.net/recInfo.asp"

// assessorDriverAdapter and peopleSearchDriverAdapter wrap a browser.Context
// as the narrow Driver interfaces assessor/peoplesearch expect, isolating
// them from the selenium API surface.
type assessorDriverAdapter struct {
	ctx *browser.Context
}

func (a *assessorDriverAdapter) Navigate(ctx context.Context, url string) error {
	return a.ctx.Driver.Get(url)
}

func (a *assessorDriverAdapter) SubmitSearch(ctx context.Context, searchFormat string) error {
	el, err := a.ctx.Driver.FindElement(selenium.ByName, "situsAddress")
	if err != nil {
		return err
	}
	if err := el.SendKeys(searchFormat); err != nil {
		return err
	}
	return el.SendKeys(selenium.EnterKey)
}

func (a *assessorDriverAdapter) PageHTML(ctx context.Context) (string, error) {
	return a.ctx.Driver.PageSource()
}

type peopleSearchDriverAdapter struct {
	ctx        *browser.Context
	lastStatus int
}

func (p *peopleSearchDriverAdapter) SubmitQuery(ctx context.Context, first, last, city, state string) error {
	if err := fillField(p.ctx, "fname", first); err != nil {
		return err
	}
	if err := fillField(p.ctx, "lname", last); err != nil {
		return err
	}
	if city != "" {
		if err := fillField(p.ctx, "citystatezip", city+", "+state); err != nil {
			return err
		}
	}
	el, err := p.ctx.Driver.FindElement(selenium.ByName, "lname")
	if err != nil {
		return err
	}
	p.lastStatus = 200
	return el.SendKeys(selenium.EnterKey)
}

func (p *peopleSearchDriverAdapter) ResultHTML(ctx context.Context) (string, error) {
	return p.ctx.Driver.PageSource()
}

func (p *peopleSearchDriverAdapter) StatusCode() int {
	return p.lastStatus
}

func fillField(ctx *browser.Context, name, value string) error {
	el, err := ctx.Driver.FindElement(selenium.ByName, name)
	if err != nil {
		return err
	}
	return el.SendKeys(value)
}
