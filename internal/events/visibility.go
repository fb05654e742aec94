package events

import (
	"time"

	"github.com/eventboard/backend/internal/models"
)

// Limit bounds for the public listing. A requested limit is clamped into
// [MinLimit, MaxLimit]; DefaultLimit applies when no limit is requested.
const (
	MinLimit     = 1
	MaxLimit     = 500
	DefaultLimit = 100
)

// isoLayout is a fixed-width UTC timestamp layout. Equal-width strings
// compare lexicographically in time order, so bucket classification can work
// on the serialized representation directly.
const isoLayout = "2006-01-02T15:04:05.000Z"

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ListFilter narrows the candidate set before bucketing. Unknown Window or
// Sort values are tolerated: no window pre-filter, store natural order.
type ListFilter struct {
	Category string
	Window   string // "open" | "upcoming" | "closed"
	Sort     string // "time" | "recent"
}

// ClampLimit clamps a requested limit into [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Doc is the serialized event shape returned by the public listing, with
// timestamps as fixed-width ISO-8601 UTC strings.
type Doc struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	PosterURL         *string `json:"poster_url,omitempty"`
	GoogleFormURL     *string `json:"google_form_url,omitempty"`
	Venue             string  `json:"venue"`
	EventStart        string  `json:"event_start"`
	EventEnd          *string `json:"event_end,omitempty"`
	RegistrationStart string  `json:"registration_start"`
	RegistrationEnd   string  `json:"registration_end"`
	Category          string  `json:"category"`
	OrganizationID    string  `json:"organization_id"`
	OrganizationName  string  `json:"organization_name"`
	Approved          bool    `json:"approved"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	IsOrgVerified     bool    `json:"is_org_verified"`
	CreatedAt         string  `json:"created_at"`
}

// ToDoc serializes an event for the public listing.
func ToDoc(e models.Event) Doc {
	d := Doc{
		ID:                e.ID.String(),
		Title:             e.Title,
		Description:       e.Description,
		PosterURL:         e.PosterURL,
		GoogleFormURL:     e.GoogleFormURL,
		Venue:             e.Venue,
		EventStart:        formatISO(e.EventStart),
		RegistrationStart: formatISO(e.RegistrationStart),
		RegistrationEnd:   formatISO(e.RegistrationEnd),
		Category:          e.Category,
		OrganizationID:    e.OrganizationID.String(),
		OrganizationName:  e.OrganizationName,
		Approved:          e.Approved,
		ApprovedBy:        e.ApprovedBy,
		IsOrgVerified:     e.IsOrgVerified,
		CreatedAt:         formatISO(e.CreatedAt),
	}
	if e.EventEnd != nil {
		end := formatISO(*e.EventEnd)
		d.EventEnd = &end
	}
	return d
}

// Buckets partitions a listing result by registration window relative to the
// query instant. Count is the size of the candidate set, computed before
// bucketing; the three predicates are evaluated independently per event, so
// bucket sizes may sum to more than Count.
type Buckets struct {
	Open     []Doc `json:"open"`
	Upcoming []Doc `json:"upcoming"`
	Closed   []Doc `json:"closed"`
	Count    int   `json:"count"`
}

// Bucket classifies each doc against now. An event lands in every bucket
// whose predicate holds:
//
//	open:     registration_start <= now <= registration_end
//	upcoming: registration_start > now
//	closed:   registration_end < now
//
// Membership is not mutually exclusive by construction; callers must not
// assume a partition.
func Bucket(docs []Doc, now time.Time) Buckets {
	nowStr := formatISO(now)
	b := Buckets{
		Open:     []Doc{},
		Upcoming: []Doc{},
		Closed:   []Doc{},
		Count:    len(docs),
	}
	for _, d := range docs {
		if d.RegistrationStart <= nowStr && nowStr <= d.RegistrationEnd {
			b.Open = append(b.Open, d)
		}
		if d.RegistrationStart > nowStr {
			b.Upcoming = append(b.Upcoming, d)
		}
		if d.RegistrationEnd < nowStr {
			b.Closed = append(b.Closed, d)
		}
	}
	return b
}
