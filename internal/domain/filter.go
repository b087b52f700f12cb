package domain

import "time"

// EnquiryFilter is the combinable predicate used by listings, counts and the
// follow-up scan. Nil or zero fields are unconstrained; set fields combine
// with AND.
type EnquiryFilter struct {
	Status        *EnquiryStatus
	InterestLevel *InterestLevel
	SalesPersonID *uint
	// Unassigned restricts to enquiries with no sales person. It is ignored
	// when SalesPersonID is set.
	Unassigned bool
	// ActiveOnly restricts status to ActiveStatuses.
	ActiveOnly bool
	// CreatedFrom and CreatedTo bound createdAt inclusively.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	// FollowUpFrom and FollowUpTo bound nextFollowUpAt inclusively. Either
	// bound being set excludes enquiries without a follow-up date.
	FollowUpFrom *time.Time
	FollowUpTo   *time.Time
	// Term is a case-insensitive substring matched against name, email,
	// phone and remarks. Blank matches everything.
	Term string
}

// ActivityFilter narrows the sales activity log.
type ActivityFilter struct {
	EnquiryID     *uint
	SalesPersonID *uint
	ActivityType  *ActivityType
	From          *time.Time
	To            *time.Time
	Term          string
}
