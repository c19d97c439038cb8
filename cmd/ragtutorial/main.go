// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command ragtutorial walks the managed RAG workflow end to end: create a
// corpus, stage and import documents, run a retrieval query, and ask a Gemini
// model a question grounded in the corpus.
//
// Usage:
//
//	ragtutorial -project my-project -bucket my-staging-bucket -file ./docs/intro.txt
//
// Configuration comes from flags, with GOOGLE_CLOUD_PROJECT and
// GOOGLE_CLOUD_LOCATION as fallbacks (a .env file is honored when present).
// Every step blocks until the service responds; any failure halts the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/go-a2a/rag-go/generation"
	"github.com/go-a2a/rag-go/pkg/logging"
	"github.com/go-a2a/rag-go/rag"
	"github.com/go-a2a/rag-go/staging"
)

var defaultPrompt = heredoc.Doc(`
	You are a careful assistant. Answer the question using only the
	information retrieved from the attached document corpus. If the corpus
	does not contain the answer, say so.

	Question: What does the uploaded documentation say about retrieval?
`)

var (
	project   = flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "Google Cloud project ID")
	location  = flag.String("location", envOr("GOOGLE_CLOUD_LOCATION", "us-central1"), "Google Cloud location")
	corpus    = flag.String("corpus", "", "existing corpus resource name (created when empty)")
	corpusDN  = flag.String("corpus-name", "rag-go tutorial corpus", "display name for a newly created corpus")
	embedding = flag.String("embedding-model", rag.DefaultEmbeddingModel, "publisher embedding model for a new corpus")

	files  = flag.String("file", "", "comma-separated local files to stage and import")
	bucket = flag.String("bucket", os.Getenv("RAG_STAGING_BUCKET"), "Cloud Storage bucket for staging local files")
	gcs    = flag.String("gcs", "", "comma-separated gs:// URIs or prefixes to import")
	drive  = flag.String("drive", "", "comma-separated Google Drive resource IDs to import")

	chunkSize    = flag.Int("chunk-size", 512, "import chunk size in tokens")
	chunkOverlap = flag.Int("chunk-overlap", 100, "import chunk overlap in tokens")
	embeddingQPM = flag.Int("max-embedding-qpm", 0, "max embedding requests per minute during import (0 = service default)")

	query     = flag.String("query", "What does the documentation say about retrieval?", "retrieval query text")
	topK      = flag.Int("topk", rag.DefaultTopK, "retrieval top-k")
	threshold = flag.Float64("threshold", rag.DefaultDistanceThreshold, "retrieval vector distance threshold")

	model   = flag.String("model", generation.DefaultModel, "Gemini model for the grounded generation call")
	prompt  = flag.String("prompt", defaultPrompt, "prompt for the grounded generation call")
	asJSON  = flag.Bool("json", false, "print retrieved contexts as JSON")
	cleanup = flag.Bool("cleanup", false, "delete the created corpus and staged objects on exit")
	verbose = flag.Bool("v", false, "verbose logging")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var (
	heading = color.New(color.FgGreen, color.Bold).SprintFunc()
	accent  = color.New(color.FgCyan).SprintFunc()
	dimmed  = color.New(color.Faint).SprintFunc()
)

func main() {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()
	flag.Parse()

	ctx := context.Background()
	logger := logging.NewLogger(os.Stderr, *verbose)
	ctx = logging.NewContext(ctx, logger)

	if err := run(ctx); err != nil {
		color.Red("ragtutorial: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *project == "" {
		return errors.New("-project or GOOGLE_CLOUD_PROJECT is required")
	}

	logger := logging.FromContext(ctx)

	// Step 1: a client bound to the project and region.
	svc, err := rag.NewService(ctx, *project, *location, rag.WithLogger(logger))
	if err != nil {
		return err
	}
	defer svc.Close()

	// Step 2: create the corpus, or reuse one by resource name.
	corpusName := *corpus
	if corpusName == "" {
		created, err := svc.CreateCorpus(ctx, &rag.Corpus{
			DisplayName: *corpusDN,
			Description: "Created by the rag-go tutorial",
			Backend: &rag.VectorDBConfig{
				EmbeddingModel: &rag.EmbeddingModelConfig{PublisherModel: *embedding},
				ManagedDB:      &rag.ManagedDBConfig{},
			},
		})
		if err != nil {
			return err
		}
		corpusName = created.Name
		fmt.Printf("%s %s\n", heading("Corpus:"), accent(corpusName))
		if *cleanup {
			defer func() {
				if err := svc.DeleteCorpus(ctx, corpusName, true); err != nil {
					logger.Warn("corpus cleanup failed", "name", corpusName, "error", err)
				}
			}()
		}
	} else {
		fmt.Printf("%s %s %s\n", heading("Corpus:"), accent(corpusName), dimmed("(existing)"))
	}

	// Step 3: stage local files, then import everything.
	chunking := &rag.ChunkingConfig{
		ChunkSize:    int32(*chunkSize),
		ChunkOverlap: int32(*chunkOverlap),
	}
	gcsURIs := split(*gcs)

	if localFiles := split(*files); len(localFiles) > 0 {
		if *bucket == "" {
			return errors.New("-bucket or RAG_STAGING_BUCKET is required to import local files")
		}
		stager, err := staging.NewStager(ctx, *bucket, staging.WithLogger(logger))
		if err != nil {
			return err
		}
		defer stager.Close()
		if *cleanup {
			defer func() {
				if err := stager.Cleanup(ctx); err != nil {
					logger.Warn("staging cleanup failed", "error", err)
				}
			}()
		}

		staged, err := stager.StageAll(ctx, localFiles)
		if err != nil {
			return err
		}
		gcsURIs = append(gcsURIs, staged...)
	}

	if len(gcsURIs) > 0 {
		result, err := svc.ImportFiles(ctx, corpusName, &rag.ImportConfig{
			GCS:                        &rag.GCSSource{URIs: gcsURIs},
			Chunking:                   chunking,
			MaxEmbeddingRequestsPerMin: int32(*embeddingQPM),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s imported %d, failed %d\n", heading("Import (GCS):"), result.ImportedCount, result.FailedCount)
	}
	if driveIDs := split(*drive); len(driveIDs) > 0 {
		result, err := svc.ImportFiles(ctx, corpusName, &rag.ImportConfig{
			Drive:                      &rag.DriveSource{ResourceIDs: driveIDs},
			Chunking:                   chunking,
			MaxEmbeddingRequestsPerMin: int32(*embeddingQPM),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s imported %d, failed %d\n", heading("Import (Drive):"), result.ImportedCount, result.FailedCount)
	}

	// Step 4: retrieval query against the corpus.
	contexts, err := svc.RetrieveContexts(ctx, &rag.Query{
		Text:              *query,
		TopK:              int32(*topK),
		DistanceThreshold: *threshold,
	}, rag.Resource{Corpus: corpusName})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s %q\n", heading("Retrieval:"), *query)
	if *asJSON {
		out, err := sonic.MarshalIndent(contexts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal contexts: %w", err)
		}
		fmt.Println(string(out))
	} else {
		for i, c := range contexts {
			fmt.Printf("%s %s\n", accent(fmt.Sprintf("[%d] distance=%.3f", i+1, c.Distance)), dimmed(c.SourceDisplayName))
			fmt.Println(strings.TrimSpace(c.Text))
		}
		if len(contexts) == 0 {
			fmt.Println(dimmed("(no contexts above the threshold)"))
		}
	}

	// Step 5: grounded generation with the corpus attached as a retrieval tool.
	gen, err := generation.NewGenerator(ctx, *project, *location, *model, generation.WithLogger(logger))
	if err != nil {
		return err
	}
	tool := generation.RetrievalTool([]rag.Resource{{Corpus: corpusName}}, int32(*topK), *threshold)

	answer, err := gen.Generate(ctx, *prompt, tool)
	if err != nil {
		return err
	}

	// Step 6: the grounded answer.
	fmt.Printf("\n%s\n%s\n", heading("Answer:"), answer)
	return nil
}
