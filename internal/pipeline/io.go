package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leadenrich/internal/applier"
	"leadenrich/internal/merge"
	"leadenrich/internal/reader"
	"leadenrich/internal/workspace"
)

// writeStagingFile writes the post-formula staging table to the user's temp
// directory, named per §6's "Staging after formula" canonical pattern.
func writeStagingFile(ws *workspace.Manager, uid string, rows []applier.StandardizedRow) (string, error) {
	dir, err := ws.TempDir(uid)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("phone_ready_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: create staging file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"original_index", "cleaned_name", "street_address", "city", "state", "has_existing_phone", "existing_primary", "existing_secondary", "eligible"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.OriginalIndex),
			r.CleanedName,
			r.StreetAddress,
			r.City,
			r.State,
			fmt.Sprintf("%t", r.HasExistingPhone),
			r.ExistingPrimary,
			r.ExistingSecondary,
			fmt.Sprintf("%t", r.Eligible),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	return path, nil
}

// writeMergedOutput writes one row per target (one per attached record when
// several attach) to results/<uid>/Merged_<original-basename>.csv. Each row
// carries the standardized columns original_index, cleaned_name,
// street_address, city and state, plus the newly attached columns (named by
// newColumns, in order). The user's other original columns are not written,
// and input rows that the applier dropped do not appear.
func writeMergedOutput(ws *workspace.Manager, uid, originalName string, targets []merge.Target, attaches []merge.Attach, newColumns []string) (string, error) {
	dir, err := ws.ResultsDir(uid)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, merge.OutputFilename(filepath.Base(originalName)))

	byTarget := make(map[int][]merge.Attach, len(attaches))
	for _, a := range attaches {
		if a.TargetIdx < 0 {
			continue
		}
		byTarget[a.TargetIdx] = append(byTarget[a.TargetIdx], a)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: create merged output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	baseColumns := []string{"original_index", "cleaned_name", "street_address", "city", "state"}
	if err := w.Write(append(append([]string{}, baseColumns...), newColumns...)); err != nil {
		return "", err
	}

	for i, t := range targets {
		attachesForRow := byTarget[i]
		values := []string{
			fmt.Sprintf("%d", t.OriginalIndex),
			t.Columns["cleaned_name"],
			t.Columns["street_address"],
			t.Columns["city"],
			t.Columns["state"],
		}
		if len(attachesForRow) == 0 {
			for range newColumns {
				values = append(values, "")
			}
			if err := w.Write(values); err != nil {
				return "", err
			}
			continue
		}
		for _, a := range attachesForRow {
			row := append([]string{}, values...)
			for _, col := range newColumns {
				row = append(row, a.Record.Columns[col])
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	return path, nil
}

// writeUnchangedOutput writes the user's original rows back out verbatim
// (with unchanged phone columns), used when a scraper stage fails --
// per §7's "a job that produces zero enriched rows still returns a download
// URL pointing to the user's original data" contract.
func writeUnchangedOutput(ws *workspace.Manager, uid, originalName string, rr *reader.Result) (string, error) {
	dir, err := ws.ResultsDir(uid)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, merge.OutputFilename(filepath.Base(originalName)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: create unchanged output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(rr.Columns); err != nil {
		return "", err
	}
	for _, row := range rr.Rows {
		record := make([]string, len(rr.Columns))
		for i, col := range rr.Columns {
			record[i] = row.Get(col)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	return path, nil
}
