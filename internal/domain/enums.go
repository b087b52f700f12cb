package domain

import (
	"encoding/json"

	apperrors "enquirycrm/pkg/errors"
)

// EnquiryStatus is the lifecycle status of an enquiry.
type EnquiryStatus string

const (
	StatusNew                EnquiryStatus = "NEW"
	StatusInProgress         EnquiryStatus = "IN_PROGRESS"
	StatusInterested         EnquiryStatus = "INTERESTED"
	StatusFollowUp           EnquiryStatus = "FOLLOW_UP"
	StatusFollowUpScheduled  EnquiryStatus = "FOLLOW_UP_SCHEDULED"
	StatusSiteVisitScheduled EnquiryStatus = "SITE_VISIT_SCHEDULED"
	StatusSiteVisitCompleted EnquiryStatus = "SITE_VISIT_COMPLETED"
	StatusInventorySale      EnquiryStatus = "INVENTORY_SALE"
	StatusInventoryHold      EnquiryStatus = "INVENTORY_HOLD"
	StatusTokenReceived      EnquiryStatus = "TAKEN_RECEIVED"
	StatusToken              EnquiryStatus = "TOKEN"
	StatusBooked             EnquiryStatus = "BOOKED"
	StatusNotInterested      EnquiryStatus = "NOT_INTERESTED"
	StatusUnqualified        EnquiryStatus = "UNQUALIFIED"
	StatusClosedWon          EnquiryStatus = "CLOSED_WON"
	StatusClosedLost         EnquiryStatus = "CLOSED_LOST"
)

var enquiryStatuses = []EnquiryStatus{
	StatusNew, StatusInProgress, StatusInterested, StatusFollowUp, StatusFollowUpScheduled,
	StatusSiteVisitScheduled, StatusSiteVisitCompleted, StatusInventorySale, StatusInventoryHold,
	StatusTokenReceived, StatusToken, StatusBooked, StatusNotInterested, StatusUnqualified,
	StatusClosedWon, StatusClosedLost,
}

// ActiveStatuses returns the statuses treated as "active" by dashboard filters.
func ActiveStatuses() []EnquiryStatus {
	return []EnquiryStatus{StatusInProgress, StatusFollowUp, StatusFollowUpScheduled}
}

// IsActive reports whether s belongs to the active subset.
func (s EnquiryStatus) IsActive() bool {
	for _, a := range ActiveStatuses() {
		if s == a {
			return true
		}
	}
	return false
}

func (s EnquiryStatus) Valid() bool { return contains(enquiryStatuses, s) }

// ParseEnquiryStatus rejects any token outside the closed set.
func ParseEnquiryStatus(raw string) (EnquiryStatus, error) {
	return parseEnum(raw, "enquiry status", enquiryStatuses)
}

func (s *EnquiryStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, "enquiry status", enquiryStatuses)
}

// InterestLevel is the temperature of a lead.
type InterestLevel string

const (
	InterestHot  InterestLevel = "HOT"
	InterestWarm InterestLevel = "WARM"
	InterestCold InterestLevel = "COLD"
)

var interestLevels = []InterestLevel{InterestHot, InterestWarm, InterestCold}

func (l InterestLevel) Valid() bool { return contains(interestLevels, l) }

func ParseInterestLevel(raw string) (InterestLevel, error) {
	return parseEnum(raw, "interest level", interestLevels)
}

func (l *InterestLevel) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, l, "interest level", interestLevels)
}

// PropertyType classifies the kind of property the customer is after.
type PropertyType string

const (
	PropertyOneRK        PropertyType = "ONE_RK"
	PropertyOneBHK       PropertyType = "ONE_BHK"
	PropertyOneHalfBHK   PropertyType = "ONE_HALF_BHK"
	PropertyTwoBHK       PropertyType = "TWO_BHK"
	PropertyTwoHalfBHK   PropertyType = "TWO_HALF_BHK"
	PropertyThreeBHK     PropertyType = "THREE_BHK"
	PropertyThreeHalfBHK PropertyType = "THREE_HALF_BHK"
	PropertyFourBHK      PropertyType = "FOUR_BHK"
	PropertyFourBHKPlus  PropertyType = "FOUR_BHK_PLUS"
	PropertyVilla        PropertyType = "VILLA"
	PropertyPenthouse    PropertyType = "PENTHOUSE"
	PropertyDuplex       PropertyType = "DUPLEX"
	PropertyStudio       PropertyType = "STUDIO"
	PropertyCommercial   PropertyType = "COMMERCIAL"
	PropertyPlot         PropertyType = "PLOT"
)

var propertyTypes = []PropertyType{
	PropertyOneRK, PropertyOneBHK, PropertyOneHalfBHK, PropertyTwoBHK, PropertyTwoHalfBHK,
	PropertyThreeBHK, PropertyThreeHalfBHK, PropertyFourBHK, PropertyFourBHKPlus, PropertyVilla,
	PropertyPenthouse, PropertyDuplex, PropertyStudio, PropertyCommercial, PropertyPlot,
}

func (p PropertyType) Valid() bool { return contains(propertyTypes, p) }

func (p *PropertyType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, p, "property type", propertyTypes)
}

// BudgetRange is the customer's budget bracket.
type BudgetRange string

const (
	BudgetUnder5L  BudgetRange = "UNDER_5L"
	Budget5To10L   BudgetRange = "FIVE_TO_10L"
	Budget10To20L  BudgetRange = "TEN_TO_20L"
	Budget20To30L  BudgetRange = "TWENTY_TO_30L"
	Budget30To50L  BudgetRange = "THIRTY_TO_50L"
	Budget50To75L  BudgetRange = "FIFTY_TO_75L"
	Budget75LTo1Cr BudgetRange = "SEVENTY_FIVE_L_TO_1CR"
	Budget1To1_5Cr BudgetRange = "ONE_TO_1_5CR"
	Budget1_5To2Cr BudgetRange = "ONE_5_TO_2CR"
	Budget2To3Cr   BudgetRange = "TWO_TO_3CR"
	Budget3To5Cr   BudgetRange = "THREE_TO_5CR"
	BudgetAbove5Cr BudgetRange = "ABOVE_5CR"
)

var budgetRanges = []BudgetRange{
	BudgetUnder5L, Budget5To10L, Budget10To20L, Budget20To30L, Budget30To50L, Budget50To75L,
	Budget75LTo1Cr, Budget1To1_5Cr, Budget1_5To2Cr, Budget2To3Cr, Budget3To5Cr, BudgetAbove5Cr,
}

func (b BudgetRange) Valid() bool { return contains(budgetRanges, b) }

func (b *BudgetRange) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, b, "budget range", budgetRanges)
}

// LeadSource records where an enquiry came from.
type LeadSource string

const (
	SourceWebsite  LeadSource = "WEBSITE"
	SourceDigital  LeadSource = "DIGITAL"
	SourceReferral LeadSource = "REFERRAL"
	SourceWalkin   LeadSource = "WALKIN"
	SourceCC       LeadSource = "CC"
	SourceCP       LeadSource = "CP"
	SourceOther    LeadSource = "OTHER"
)

var leadSources = []LeadSource{
	SourceWebsite, SourceDigital, SourceReferral, SourceWalkin, SourceCC, SourceCP, SourceOther,
}

func (s LeadSource) Valid() bool { return contains(leadSources, s) }

func (s *LeadSource) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, "lead source", leadSources)
}

// ActivityType classifies a logged sales activity.
type ActivityType string

const (
	ActivityCall      ActivityType = "CALL"
	ActivityEmail     ActivityType = "EMAIL"
	ActivityMeeting   ActivityType = "MEETING"
	ActivitySiteVisit ActivityType = "SITE_VISIT"
	ActivityFollowUp  ActivityType = "FOLLOW_UP"
	ActivityNote      ActivityType = "NOTE"
	ActivityOther     ActivityType = "OTHER"
)

var activityTypes = []ActivityType{
	ActivityCall, ActivityEmail, ActivityMeeting, ActivitySiteVisit, ActivityFollowUp,
	ActivityNote, ActivityOther,
}

func (t ActivityType) Valid() bool { return contains(activityTypes, t) }

func ParseActivityType(raw string) (ActivityType, error) {
	return parseEnum(raw, "activity type", activityTypes)
}

func (t *ActivityType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, "activity type", activityTypes)
}

// UserRole is the only authorization concept the service knows about.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleCRMAdmin   UserRole = "CRM_ADMIN"
	RoleSales      UserRole = "SALES"
)

var userRoles = []UserRole{RoleSuperAdmin, RoleCRMAdmin, RoleSales}

func (r UserRole) Valid() bool { return contains(userRoles, r) }

func (r *UserRole) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, r, "user role", userRoles)
}

func contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](raw, kind string, values []T) (T, error) {
	v := T(raw)
	if !contains(values, v) {
		var zero T
		return zero, apperrors.Validation("unknown %s %q", kind, raw)
	}
	return v, nil
}

func unmarshalEnum[T ~string](b []byte, dst *T, kind string, values []T) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return apperrors.Validation("%s must be a string", kind)
	}
	v, err := parseEnum(raw, kind, values)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
