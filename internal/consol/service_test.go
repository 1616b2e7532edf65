package consol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

type fakeRepo struct {
	mu    sync.Mutex
	lines map[int64][]pricing.LineItem
	errs  map[int64]error
	calls int
}

func (f *fakeRepo) DocumentLines(ctx context.Context, ref DocumentRef) ([]pricing.LineItem, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.errs[ref.ID]; ok {
		return nil, err
	}
	lines, ok := f.lines[ref.ID]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", ref.Type, ref.ID, ErrDocumentNotFound)
	}
	return append([]pricing.LineItem(nil), lines...), nil
}

func TestBuildReportConsolidatesResolvedDocuments(t *testing.T) {
	repo := &fakeRepo{lines: map[int64][]pricing.LineItem{
		1: {item(10, "50", "3", "0", "5")},
		2: {item(10, "50", "4", "0", "5")},
	}}
	svc := NewService(repo, 2)

	report, err := svc.BuildReport(context.Background(), []DocumentRef{
		{Type: DocumentSalesInvoice, ID: 1},
		{Type: DocumentSalesInvoice, ID: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Requested)
	assert.Equal(t, 2, report.Resolved)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Lines, 1)
	assert.True(t, report.Lines[0].Quantity.Equal(dec("7")))
	assert.True(t, report.Totals.GrandTotal.Equal(dec("367.5")))
}

func TestBuildReportToleratesFailedDocuments(t *testing.T) {
	repo := &fakeRepo{
		lines: map[int64][]pricing.LineItem{
			1: {item(10, "50", "3", "0", "5")},
		},
		errs: map[int64]error{
			2: errors.New("upstream fetch failed"),
		},
	}
	svc := NewService(repo, 2)

	report, err := svc.BuildReport(context.Background(), []DocumentRef{
		{Type: DocumentSalesInvoice, ID: 1},
		{Type: DocumentSalesInvoice, ID: 2},
		{Type: DocumentSalesInvoice, ID: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Requested)
	assert.Equal(t, 1, report.Resolved)
	assert.Len(t, report.Warnings, 2)
	require.Len(t, report.Lines, 1)
	assert.True(t, report.Totals.GrandTotal.Equal(dec("157.5")))
}

func TestBuildReportEmptyDocumentContributesNothing(t *testing.T) {
	repo := &fakeRepo{lines: map[int64][]pricing.LineItem{
		1: {},
		2: {item(10, "10", "1", "0", "0")},
	}}
	svc := NewService(repo, 1)

	report, err := svc.BuildReport(context.Background(), []DocumentRef{
		{Type: DocumentSalesOrder, ID: 1},
		{Type: DocumentSalesOrder, ID: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Resolved)
	assert.Empty(t, report.Warnings)
	assert.True(t, report.Totals.GrandTotal.Equal(dec("10")))
}

func TestBuildReportRejectsUnknownType(t *testing.T) {
	svc := NewService(&fakeRepo{}, 1)
	_, err := svc.BuildReport(context.Background(), []DocumentRef{{Type: "PAYSLIP", ID: 1}})
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestBuildReportRejectsInvalidID(t *testing.T) {
	svc := NewService(&fakeRepo{}, 1)
	_, err := svc.BuildReport(context.Background(), []DocumentRef{{Type: DocumentSalesOrder, ID: 0}})
	require.Error(t, err)
}

func TestBuildReportNoDocuments(t *testing.T) {
	svc := NewService(&fakeRepo{}, 4)
	report, err := svc.BuildReport(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Requested)
	assert.Empty(t, report.Lines)
	assert.True(t, report.Totals.GrandTotal.IsZero())
}
