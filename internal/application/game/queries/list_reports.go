package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// ReportStore is the read side of a report sink. Both the in-memory
// sink and the persisting one satisfy it.
type ReportStore interface {
	CombatReports() []*fleet.CombatReport
	EspionageReports() []*fleet.EspionageReport
}

// ListReportsQuery lists combat and espionage reports, newest first
type ListReportsQuery struct {
	Limit int
}

// ReportView flattens both report kinds into one feed entry
type ReportView struct {
	ID          string
	Kind        string
	Coordinates shared.Coordinates
	Timestamp   time.Time
	Combat      *fleet.CombatReport
	Espionage   *fleet.EspionageReport
}

// ListReportsResponse carries the merged feed
type ListReportsResponse struct {
	Reports []ReportView
}

// ListReportsHandler handles the ListReports query
type ListReportsHandler struct {
	store ReportStore
}

// NewListReportsHandler creates a new ListReportsHandler
func NewListReportsHandler(store ReportStore) *ListReportsHandler {
	return &ListReportsHandler{store: store}
}

// Handle executes the ListReports query
func (h *ListReportsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListReportsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	views := make([]ReportView, 0)
	for _, r := range h.store.CombatReports() {
		views = append(views, ReportView{
			ID:          r.ID,
			Kind:        "COMBAT",
			Coordinates: r.Coordinates,
			Timestamp:   r.Timestamp,
			Combat:      r,
		})
	}
	for _, r := range h.store.EspionageReports() {
		views = append(views, ReportView{
			ID:          r.ID,
			Kind:        "ESPIONAGE",
			Coordinates: r.Coordinates,
			Timestamp:   r.Timestamp,
			Espionage:   r,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})

	if query.Limit > 0 && len(views) > query.Limit {
		views = views[:query.Limit]
	}

	return &ListReportsResponse{Reports: views}, nil
}
