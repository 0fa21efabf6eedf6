package constants

import (
	"database/sql/driver"
	"fmt"
)

// ComponentType mirrors the Postgres ENUM 'component_type'
type ComponentType string

const (
	ComponentBattery     ComponentType = "battery"
	ComponentInspection  ComponentType = "inspection"
	ComponentService     ComponentType = "service"
	ComponentEngine      ComponentType = "engine"
	ComponentFuselage    ComponentType = "fuselage"
	ComponentAvionics    ComponentType = "avionics"
	ComponentELT         ComponentType = "elt"
	ComponentPropeller   ComponentType = "propeller"
	ComponentLandingGear ComponentType = "landing_gear"
	ComponentOther       ComponentType = "other"
)

func (t ComponentType) String() string { return string(t) }

func (t *ComponentType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = ComponentType(v)
	case []byte:
		*t = ComponentType(v)
	default:
		return fmt.Errorf("ComponentType: cannot scan type %T", src)
	}
	return nil
}

func (t ComponentType) Value() (driver.Value, error) { return string(t), nil }

// ComponentStatus is the lifecycle state of a tracked component.
type ComponentStatus string

const (
	ComponentActive   ComponentStatus = "active"
	ComponentInactive ComponentStatus = "inactive"
	ComponentRemoved  ComponentStatus = "removed"
)

// Priority for component attention ordering. Empty means unset.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// VisitType mirrors the Postgres ENUM 'visit_type'
type VisitType string

const (
	VisitScheduled    VisitType = "Scheduled"
	VisitUnscheduled  VisitType = "Unscheduled"
	VisitInspection   VisitType = "Inspection"
	VisitRepair       VisitType = "Repair"
	VisitModification VisitType = "Modification"
)

func (t VisitType) String() string { return string(t) }

func (t *VisitType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = VisitType(v)
	case []byte:
		*t = VisitType(v)
	default:
		return fmt.Errorf("VisitType: cannot scan type %T", src)
	}
	return nil
}

func (t VisitType) Value() (driver.Value, error) { return string(t), nil }

// CredentialType categorises pilot credentials tracked for expiry.
type CredentialType string

const (
	CredentialMedical         CredentialType = "medical"
	CredentialFlightReview    CredentialType = "flight_review"
	CredentialRating          CredentialType = "rating"
	CredentialSoloEndorsement CredentialType = "solo_endorsement"
)

// MembershipStatus is the billing state of a membership.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipLapsed    MembershipStatus = "lapsed"
	MembershipCancelled MembershipStatus = "cancelled"
)

// EnrollmentStatus tracks a member's progress through a training course.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// LedgerKind splits account-statement entries into charges and payments.
type LedgerKind string

const (
	LedgerCharge  LedgerKind = "charge"
	LedgerPayment LedgerKind = "payment"
)
