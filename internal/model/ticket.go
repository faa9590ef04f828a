package model

import (
	"time"
)

type Category string

const (
	CategoryAccountAccess   Category = "account_access"
	CategoryTechnicalIssue  Category = "technical_issue"
	CategoryBillingQuestion Category = "billing_question"
	CategoryFeatureRequest  Category = "feature_request"
	CategoryBugReport       Category = "bug_report"
	CategoryOther           Category = "other"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Status string

const (
	StatusNew             Status = "new"
	StatusInProgress      Status = "in_progress"
	StatusWaitingCustomer Status = "waiting_customer"
	StatusResolved        Status = "resolved"
	StatusClosed          Status = "closed"
)

// Terminal reports whether a ticket in this status counts as resolved.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

type Source string

const (
	SourceWebForm Source = "web_form"
	SourceEmail   Source = "email"
	SourceAPI     Source = "api"
	SourceChat    Source = "chat"
	SourcePhone   Source = "phone"
)

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// Enumerations in declaration order. Validation tags below must list the same values.
var (
	Categories  = []Category{CategoryAccountAccess, CategoryTechnicalIssue, CategoryBillingQuestion, CategoryFeatureRequest, CategoryBugReport, CategoryOther}
	Priorities  = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	Statuses    = []Status{StatusNew, StatusInProgress, StatusWaitingCustomer, StatusResolved, StatusClosed}
	Sources     = []Source{SourceWebForm, SourceEmail, SourceAPI, SourceChat, SourcePhone}
	DeviceTypes = []DeviceType{DeviceDesktop, DeviceMobile, DeviceTablet}
)

// Metadata describes where a ticket came from.
type Metadata struct {
	Source     Source     `json:"source" validate:"required,oneof=web_form email api chat phone"`
	Browser    string     `json:"browser,omitempty"`
	DeviceType DeviceType `json:"device_type,omitempty" validate:"omitempty,oneof=desktop mobile tablet"`
}

// TicketInput is the validated shape of a ticket before it is stored.
type TicketInput struct {
	CustomerID    string    `json:"customer_id" validate:"required"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
	CustomerName  string    `json:"customer_name" validate:"required"`
	Subject       string    `json:"subject" validate:"min=1,max=200"`
	Description   string    `json:"description" validate:"min=10,max=2000"`
	Category      Category  `json:"category,omitempty" validate:"omitempty,oneof=account_access technical_issue billing_question feature_request bug_report other"`
	Priority      Priority  `json:"priority,omitempty" validate:"omitempty,oneof=urgent high medium low"`
	Status        Status    `json:"status" validate:"required,oneof=new in_progress waiting_customer resolved closed"`
	AssignedTo    *string   `json:"assigned_to"`
	Tags          []string  `json:"tags"`
	Metadata      *Metadata `json:"metadata,omitempty"`
}

// Ticket is a stored support ticket.
type Ticket struct {
	ID string `json:"id"`
	TicketInput
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// TicketUpdate carries a partial update. Nil fields are left untouched.
// AssignedToSet distinguishes an explicit null from an absent field.
type TicketUpdate struct {
	CustomerID    *string   `json:"customer_id,omitempty" validate:"omitempty,min=1"`
	CustomerEmail *string   `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerName  *string   `json:"customer_name,omitempty" validate:"omitempty,min=1"`
	Subject       *string   `json:"subject,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,min=10,max=2000"`
	Category      *Category `json:"category,omitempty" validate:"omitempty,oneof=account_access technical_issue billing_question feature_request bug_report other"`
	Priority      *Priority `json:"priority,omitempty" validate:"omitempty,oneof=urgent high medium low"`
	Status        *Status   `json:"status,omitempty" validate:"omitempty,oneof=new in_progress waiting_customer resolved closed"`
	AssignedTo    *string   `json:"assigned_to,omitempty"`
	AssignedToSet bool      `json:"-"`
	Tags          []string  `json:"tags,omitempty"`
	Metadata      *Metadata `json:"metadata,omitempty"`
}

// TicketFilter selects tickets by exact enum value. Empty fields match everything.
type TicketFilter struct {
	Category Category
	Priority Priority
	Status   Status
}

// Matches reports whether t passes every non-empty filter field.
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// Classification is the outcome of keyword classification for one ticket text.
type Classification struct {
	Category      Category `json:"category"`
	Priority      Priority `json:"priority"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
	KeywordsFound []string `json:"keywords_found"`
}
