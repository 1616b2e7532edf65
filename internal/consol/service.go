package consol

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// Report is a consolidation over resolved documents plus resolution
// metadata. Documents that failed to resolve are reported as warnings
// and excluded from the figures instead of failing the whole report.
type Report struct {
	Consolidation
	Requested int      `json:"requested_documents"`
	Resolved  int      `json:"resolved_documents"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Service resolves document references and builds consolidated reports.
type Service struct {
	repo        Repository
	concurrency int
}

// NewService constructs the consolidation service. concurrency bounds
// the parallel document fetches.
func NewService(repo Repository, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{repo: repo, concurrency: concurrency}
}

// BuildReport fetches every referenced document concurrently, then
// consolidates the ones that resolved. Individual fetch failures become
// warnings; the report only fails outright when the context is done or
// the service is misconfigured.
func (s *Service) BuildReport(ctx context.Context, refs []DocumentRef) (Report, error) {
	if s == nil || s.repo == nil {
		return Report{}, errors.New("consol: service not initialised")
	}
	for _, ref := range refs {
		if !ref.Type.Valid() {
			return Report{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, ref.Type)
		}
		if ref.ID <= 0 {
			return Report{}, fmt.Errorf("consol: invalid document id %d", ref.ID)
		}
	}

	documents := make([][]pricing.LineItem, len(refs))
	failures := make([]error, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			lines, err := s.repo.DocumentLines(gctx, ref)
			if err != nil {
				// Recorded per document; a lost document must not
				// abort the consolidation of the others.
				failures[i] = err
				return nil
			}
			documents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	resolved := make([][]pricing.LineItem, 0, len(refs))
	warnings := make([]string, 0)
	for i, ref := range refs {
		if failures[i] != nil {
			warnings = append(warnings, fmt.Sprintf("%s %d skipped: %v", ref.Type, ref.ID, failures[i]))
			continue
		}
		resolved = append(resolved, documents[i])
	}

	report := Report{
		Consolidation: Consolidate(resolved),
		Requested:     len(refs),
		Resolved:      len(resolved),
	}
	if len(warnings) > 0 {
		report.Warnings = warnings
	}
	return report, nil
}
