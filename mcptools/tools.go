package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lawscape-backend/models"
	"lawscape-backend/service"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Finder runs a dependency search
type Finder interface {
	FindWithDependencies(ctx context.Context, req service.FindRequest) (*service.FindResult, error)
}

// JobGetter reads ingest jobs
type JobGetter interface {
	GetJob(ctx context.Context, id uuid.UUID) (*models.IngestJob, error)
}

// FindInput is the input schema of find_legal_documents
type FindInput struct {
	Word        string  `json:"word" jsonschema:"search words, e.g. a law name or a phrase from a judgment"`
	Limit       int     `json:"limit,omitempty" jsonschema:"maximum number of hits (default 1000)"`
	CancelScore *float64 `json:"cancel_score,omitempty" jsonschema:"minimum relevance score between 0 and 1 (default 0.5)"`
	Rewrite     bool    `json:"rewrite,omitempty" jsonschema:"rewrite a natural language question into search words first"`
}

// DocumentView is one hit as returned to MCP clients
type DocumentView struct {
	Type      string                `json:"type"`
	ID        string                `json:"id"`
	Name      string                `json:"name,omitempty"`
	Text      string                `json:"text"`
	Score     *float64              `json:"score,omitempty"`
	Article   *models.ArticleIndex  `json:"article,omitempty"`
	Precedent *models.PrecedentInfo `json:"precedent,omitempty"`
}

// RecordView is one identity with its reference edges
type RecordView struct {
	ID       string         `json:"id"`
	Contents []DocumentView `json:"contents"`
	Parents  []string       `json:"parents"`
	Children []string       `json:"children"`
}

// FindOutput is the output schema of find_legal_documents
type FindOutput struct {
	Query   string       `json:"query"`
	Records []RecordView `json:"records"`
}

// JobInput is the input schema of get_ingest_job
type JobInput struct {
	JobID string `json:"job_id" jsonschema:"ingest job id returned by POST /api/documents"`
}

// JobView is an ingest job as returned to MCP clients
type JobView struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Source        string `json:"source"`
	PrimaryKey    string `json:"primary_key"`
	DocumentCount int    `json:"document_count"`
	ErrorMessage  string `json:"error_message,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
}

// NewServer creates an MCP server exposing the search tools. jobs may be nil.
func NewServer(finder Finder, jobs JobGetter, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lawscape",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_legal_documents",
		Description: "Search Japanese laws and precedents and show which results cite which (parents are cited documents, children are citing documents)",
	}, NewFindHandler(finder))

	if jobs != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "get_ingest_job",
			Description: "Get the status of a document ingest job",
		}, NewJobHandler(jobs))
	}

	return server
}

// NewFindHandler returns the find_legal_documents tool handler.
// Pass the returned function to mcp.AddTool.
func NewFindHandler(finder Finder) func(context.Context, *mcp.CallToolRequest, FindInput) (*mcp.CallToolResult, FindOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
		if input.Limit < 0 {
			return nil, FindOutput{}, fmt.Errorf("%w: %d", models.ErrInvalidLimit, input.Limit)
		}

		result, err := finder.FindWithDependencies(ctx, service.FindRequest{
			Word:        input.Word,
			Limit:       input.Limit,
			CancelScore: input.CancelScore,
			Rewrite:     input.Rewrite,
		})
		if err != nil {
			return nil, FindOutput{}, err
		}

		return nil, toFindOutput(result), nil
	}
}

// NewJobHandler returns the get_ingest_job tool handler.
// Pass the returned function to mcp.AddTool.
func NewJobHandler(jobs JobGetter) func(context.Context, *mcp.CallToolRequest, JobInput) (*mcp.CallToolResult, JobView, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input JobInput) (*mcp.CallToolResult, JobView, error) {
		id, err := uuid.Parse(input.JobID)
		if err != nil {
			return nil, JobView{}, fmt.Errorf("invalid job id %q", input.JobID)
		}

		job, err := jobs.GetJob(ctx, id)
		if errors.Is(err, service.ErrJobNotFound) {
			return nil, JobView{}, fmt.Errorf("ingest job %s not found", id)
		}
		if err != nil {
			return nil, JobView{}, err
		}

		return nil, toJobView(job), nil
	}
}

func toFindOutput(result *service.FindResult) FindOutput {
	out := FindOutput{
		Query:   result.Query,
		Records: make([]RecordView, 0, len(result.Records)),
	}
	for _, rec := range result.Records {
		view := RecordView{
			ID:       rec.ID,
			Contents: make([]DocumentView, 0, len(rec.Contents)),
			Parents:  rec.Parents,
			Children: rec.Children,
		}
		for _, hit := range rec.Contents {
			view.Contents = append(view.Contents, toDocumentView(hit))
		}
		out.Records = append(out.Records, view)
	}
	return out
}

func toDocumentView(hit models.ScoredDocument) DocumentView {
	doc := hit.Document
	view := DocumentView{
		Type:  string(doc.Kind),
		ID:    doc.ID(),
		Text:  doc.Text(),
		Score: hit.Score,
	}
	switch doc.Kind {
	case models.KindLaw:
		view.Name = doc.Law.Name
		index := doc.Law.Index
		view.Article = &index
	case models.KindPrecedent:
		info := doc.Precedent.Info
		view.Precedent = &info
	}
	return view
}

func toJobView(job *models.IngestJob) JobView {
	view := JobView{
		ID:            job.ID.String(),
		Status:        string(job.Status),
		Source:        job.Source,
		PrimaryKey:    string(job.PrimaryKey),
		DocumentCount: job.DocumentCount,
		CreatedAt:     job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     job.UpdatedAt.Format(time.RFC3339),
	}
	if job.ErrorMessage != nil {
		view.ErrorMessage = *job.ErrorMessage
	}
	if job.CompletedAt != nil {
		view.CompletedAt = job.CompletedAt.Format(time.RFC3339)
	}
	return view
}
