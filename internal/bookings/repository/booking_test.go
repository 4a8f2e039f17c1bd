package repository

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	bookingserrors "github.com/shayzimm/yallambee-booking-app-backend/internal/bookings/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapFilter_Construction(t *testing.T) {
	propertyID := "64f1b2a3c4d5e6f7a8b9c0d2"
	excludeID := "64f1b2a3c4d5e6f7a8b9c0d3"

	filter, err := overlapFilter(propertyID, day(4), day(8), excludeID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter["property"] != propertyID {
		t.Errorf("expected property %s, got %v", propertyID, filter["property"])
	}

	startClause, ok := filter["start_date"].(bson.M)
	if !ok || !startClause["$lt"].(time.Time).Equal(day(8)) {
		t.Errorf("expected start_date $lt %v, got %v", day(8), filter["start_date"])
	}
	endClause, ok := filter["end_date"].(bson.M)
	if !ok || !endClause["$gt"].(time.Time).Equal(day(4)) {
		t.Errorf("expected end_date $gt %v, got %v", day(4), filter["end_date"])
	}

	wantID, _ := primitive.ObjectIDFromHex(excludeID)
	idClause, ok := filter["_id"].(bson.M)
	if !ok || idClause["$ne"] != wantID {
		t.Errorf("expected _id $ne %s, got %v", excludeID, filter["_id"])
	}

	statusClause, ok := filter["status"].(bson.M)
	if !ok || statusClause["$ne"] != model.StatusCancelled {
		t.Errorf("expected status $ne %s, got %v", model.StatusCancelled, filter["status"])
	}
}

func TestOverlapFilter_OmitsOptionalClauses(t *testing.T) {
	filter, err := overlapFilter("64f1b2a3c4d5e6f7a8b9c0d2", day(4), day(8), "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := filter["_id"]; present {
		t.Error("expected no _id clause without an exclude ID")
	}
	if _, present := filter["status"]; present {
		t.Error("expected no status clause when cancelled bookings block dates")
	}
}

func TestOverlapFilter_InvalidExcludeID(t *testing.T) {
	_, err := overlapFilter("64f1b2a3c4d5e6f7a8b9c0d2", day(4), day(8), "not-an-object-id", false)
	if !errors.Is(err, bookingserrors.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

// The filter's operators decide the overlap boundary, so the cases here
// apply the $lt/$gt bounds taken from the built filter to candidate
// ranges rather than re-deriving the comparison.
func TestOverlapFilter_BoundarySemantics(t *testing.T) {
	tests := []struct {
		name                 string
		queryStart, queryEnd time.Time
		candStart, candEnd   time.Time
		overlaps             bool
	}{
		{
			name:       "touching at query start does not overlap",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(1), candEnd: day(4),
			overlaps: false,
		},
		{
			name:       "touching at query end does not overlap",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(8), candEnd: day(11),
			overlaps: false,
		},
		{
			name:       "one day past the shared endpoint overlaps",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(7), candEnd: day(11),
			overlaps: true,
		},
		{
			name:       "candidate inside query overlaps",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(5), candEnd: day(6),
			overlaps: true,
		},
		{
			name:       "candidate containing query overlaps",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(1), candEnd: day(11),
			overlaps: true,
		},
		{
			name:       "identical range overlaps",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(4), candEnd: day(8),
			overlaps: true,
		},
		{
			name:       "disjoint before does not overlap",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(1), candEnd: day(2),
			overlaps: false,
		},
		{
			name:       "disjoint after does not overlap",
			queryStart: day(4), queryEnd: day(8),
			candStart: day(10), candEnd: day(12),
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := overlapFilter("64f1b2a3c4d5e6f7a8b9c0d2", tt.queryStart, tt.queryEnd, "", false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ltBound := filter["start_date"].(bson.M)["$lt"].(time.Time)
			gtBound := filter["end_date"].(bson.M)["$gt"].(time.Time)

			matched := tt.candStart.Before(ltBound) && tt.candEnd.After(gtBound)
			if matched != tt.overlaps {
				t.Errorf("candidate [%v, %v] against query [%v, %v]: expected overlap %v, got %v",
					tt.candStart, tt.candEnd, tt.queryStart, tt.queryEnd, tt.overlaps, matched)
			}
		})
	}
}
