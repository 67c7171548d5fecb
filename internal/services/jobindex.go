package services

import (
	"context"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	// DescriptionColumn is the required text column in every job source
	// file; files without it contribute nothing to the index.
	DescriptionColumn = "Full Job Description"
	TitleColumn       = "Title"
)

type embeddingGenerator interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// JobRecord is one job posting row. Extra keeps every source column so
// optional fields (required skills, location, ...) survive into match
// results.
type JobRecord struct {
	Title       string
	Description string
	Extra       map[string]string
}

// JobIndex pairs job records with their embeddings, positionally
// aligned: records[i] corresponds to embeddings[i]. It is built once at
// startup and read-only afterwards, so request handlers read it without
// locking.
type JobIndex struct {
	dataDir   string
	cachePath string
	embedder  embeddingGenerator

	records    []JobRecord
	embeddings [][]float32
	loaded     atomic.Bool
}

func NewJobIndex(dataDir, cacheFilename string, embedder embeddingGenerator) *JobIndex {
	return &JobIndex{
		dataDir:   dataDir,
		cachePath: filepath.Join(dataDir, cacheFilename),
		embedder:  embedder,
	}
}

// Load discovers tabular source files, loads every row, and produces one
// embedding per row, reusing the on-disk cache when it matches. It must
// complete before the service reports ready. An empty data directory
// yields an empty index, not an error.
func (j *JobIndex) Load(ctx context.Context) error {
	records, err := j.loadRecords()
	if err != nil {
		return fmt.Errorf("failed to load job records: %w", err)
	}

	if len(records) == 0 {
		log.Println("⚠️  No valid job data found, index is empty")
		j.records = nil
		j.embeddings = nil
		j.loaded.Store(true)
		return nil
	}

	embeddings, err := j.loadCache(len(records))
	if err != nil {
		log.Printf("🔄 Embedding cache unusable (%v), recomputing %d embeddings\n", err, len(records))

		embeddings = make([][]float32, 0, len(records))
		for i, record := range records {
			emb, err := j.embedder.GenerateEmbedding(ctx, record.Description)
			if err != nil {
				return fmt.Errorf("failed to embed job %d: %w", i, err)
			}
			embeddings = append(embeddings, emb)
		}

		if err := j.saveCache(embeddings); err != nil {
			// A failed cache write only costs recomputation next start.
			log.Printf("⚠️  Failed to persist embedding cache: %v\n", err)
		}
	} else {
		log.Printf("✅ Loaded %d embeddings from cache\n", len(embeddings))
	}

	j.records = records
	j.embeddings = embeddings
	j.loaded.Store(true)

	log.Printf("✅ Job index ready with %d postings\n", len(records))
	return nil
}

// Loaded reports whether initialization has completed, empty or not.
func (j *JobIndex) Loaded() bool {
	return j.loaded.Load()
}

// Ready reports whether the index is loaded and non-empty.
func (j *JobIndex) Ready() bool {
	return j.loaded.Load() && len(j.records) > 0
}

func (j *JobIndex) Len() int {
	if !j.loaded.Load() {
		return 0
	}
	return len(j.records)
}

func (j *JobIndex) Records() []JobRecord {
	return j.records
}

func (j *JobIndex) Embeddings() [][]float32 {
	return j.embeddings
}

// loadRecords concatenates all non-empty tabular files in the data
// directory, preserving file-then-row order. Files without the required
// description column are skipped with a log line.
func (j *JobIndex) loadRecords() ([]JobRecord, error) {
	csvFiles, err := filepath.Glob(filepath.Join(j.dataDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list csv files: %w", err)
	}
	xlsxFiles, err := filepath.Glob(filepath.Join(j.dataDir, "*.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("failed to list xlsx files: %w", err)
	}

	files := append(csvFiles, xlsxFiles...)
	sort.Strings(files)

	var records []JobRecord
	for _, file := range files {
		var rows [][]string
		var readErr error

		if strings.EqualFold(filepath.Ext(file), ".xlsx") {
			rows, readErr = readXLSX(file)
		} else {
			rows, readErr = readCSV(file)
		}

		if readErr != nil {
			log.Printf("⚠️  Skipping unreadable file %s: %v\n", file, readErr)
			continue
		}
		if len(rows) < 2 {
			log.Printf("⚠️  Skipping empty file: %s\n", file)
			continue
		}

		fileRecords, ok := rowsToRecords(rows)
		if !ok {
			log.Printf("⚠️  Skipping %s: missing %q column\n", file, DescriptionColumn)
			continue
		}

		records = append(records, fileRecords...)
	}

	return records, nil
}

func rowsToRecords(rows [][]string) ([]JobRecord, bool) {
	header := rows[0]

	descCol := -1
	for i, name := range header {
		if strings.TrimSpace(name) == DescriptionColumn {
			descCol = i
			break
		}
	}
	if descCol == -1 {
		return nil, false
	}

	records := make([]JobRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		extra := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				extra[strings.TrimSpace(name)] = row[i]
			}
		}

		record := JobRecord{
			Title:       extra[TitleColumn],
			Description: extra[DescriptionColumn],
			Extra:       extra,
		}
		if record.Title == "" {
			record.Title = "N/A"
		}

		records = append(records, record)
	}

	return records, true
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	return reader.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	return f.GetRows(sheets[0])
}

// loadCache deserializes the embedding cache. Any decode failure or a
// length mismatch against the loaded records is reported as an error and
// treated by Load as a cache miss.
func (j *JobIndex) loadCache(wantLen int) ([][]float32, error) {
	f, err := os.Open(j.cachePath)
	if err != nil {
		return nil, fmt.Errorf("cache not readable: %w", err)
	}
	defer f.Close()

	var embeddings [][]float32
	if err := gob.NewDecoder(f).Decode(&embeddings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}

	if len(embeddings) != wantLen {
		return nil, fmt.Errorf("%w: holds %d vectors, index has %d records",
			ErrCacheCorrupt, len(embeddings), wantLen)
	}

	return embeddings, nil
}

func (j *JobIndex) saveCache(embeddings [][]float32) error {
	// Write to a unique temp file first so a crash mid-write never
	// leaves a truncated cache behind.
	tmpPath := fmt.Sprintf("%s.%s.tmp", j.cachePath, uuid.New().String())

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(embeddings); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode embeddings: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpPath, j.cachePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move cache into place: %w", err)
	}

	return nil
}
