package models

import "time"

// Job status values. Transitions are deliberately unrestricted: staff can
// move a job between any two statuses in any order.
const (
	StatusReceived     = "RECEIVED"
	StatusDiagnosed    = "DIAGNOSED"
	StatusInProgress   = "IN_PROGRESS"
	StatusWaitingParts = "WAITING_PARTS"
	StatusReady        = "READY"
	StatusCompleted    = "COMPLETED"
)

// Statuses lists all valid job statuses in display order.
var Statuses = []string{
	StatusReceived,
	StatusDiagnosed,
	StatusInProgress,
	StatusWaitingParts,
	StatusReady,
	StatusCompleted,
}

// Estimated repair time buckets shown on the drop-off form.
const (
	EstimateToday    = "TODAY"
	Estimate1To2Days = "1-2_DAYS"
	Estimate3To5Days = "3-5_DAYS"
	Estimate1Week    = "1_WEEK"
	Estimate2Weeks   = "2_WEEKS"
	Estimate3Weeks   = "3_WEEKS"
	Estimate1Month   = "1_MONTH"
	EstimateUnknown  = "UNKNOWN"
)

// Estimates lists all valid repair time estimates.
var Estimates = []string{
	EstimateToday,
	Estimate1To2Days,
	Estimate3To5Days,
	Estimate1Week,
	Estimate2Weeks,
	Estimate3Weeks,
	Estimate1Month,
	EstimateUnknown,
}

type RepairJob struct {
	ID                  int        `json:"id"`
	JobID               string     `json:"job_id"` // AJ-1001, AJ-1002, ...
	CustomerName        string     `json:"customer_name"`
	PhoneNumber         string     `json:"phone_number"`
	BikeDescription     string     `json:"bike_description"`
	Status              string     `json:"status"`
	EstimatedRepairTime string     `json:"estimated_repair_time"`
	RepairDetails       string     `json:"repair_details"`
	InternalNotes       string     `json:"internal_notes"`
	EstimatedCost       *float64   `json:"estimated_cost"`
	CreatedByUserID     *int       `json:"created_by_user_id"`          // SET NULL when the account is deleted
	CreatedByName       string     `json:"created_by_name,omitempty"`   // Denormalized for display
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ReadyNotifiedAt     *time.Time `json:"ready_notified_at"` // Set only on successful ready SMS
}

// ValidStatus reports whether s is one of the six job statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidEstimate reports whether e is a known repair time bucket.
func ValidEstimate(e string) bool {
	for _, v := range Estimates {
		if v == e {
			return true
		}
	}
	return false
}

var statusTags = map[string]string{
	StatusReceived:     "bg-blue-100 text-blue-800",
	StatusDiagnosed:    "bg-yellow-100 text-yellow-800",
	StatusInProgress:   "bg-orange-100 text-orange-800",
	StatusWaitingParts: "bg-purple-100 text-purple-800",
	StatusReady:        "bg-green-100 text-green-800",
	StatusCompleted:    "bg-gray-100 text-gray-800",
}

var statusLabels = map[string]string{
	StatusReceived:     "Received",
	StatusDiagnosed:    "Diagnosed",
	StatusInProgress:   "In Progress",
	StatusWaitingParts: "Waiting for Parts",
	StatusReady:        "Ready for Pickup",
	StatusCompleted:    "Completed",
}

// StatusTag returns the presentation class for a status, with a gray
// fallback for anything unmapped.
func StatusTag(status string) string {
	if tag, ok := statusTags[status]; ok {
		return tag
	}
	return "bg-gray-100 text-gray-800"
}

// StatusLabel returns the human readable label for a status.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// CreateJobRequest represents the drop-off form fields.
type CreateJobRequest struct {
	CustomerName        string `json:"customer_name"`
	PhoneNumber         string `json:"phone_number"`
	BikeDescription     string `json:"bike_description"`
	EstimatedRepairTime string `json:"estimated_repair_time"`
}

// UpdateJobRequest represents the staff job edit form.
type UpdateJobRequest struct {
	Status              string   `json:"status"`
	EstimatedRepairTime string   `json:"estimated_repair_time"`
	EstimatedCost       *float64 `json:"estimated_cost"`
	RepairDetails       string   `json:"repair_details"`
	InternalNotes       string   `json:"internal_notes"`
}

// QuickActionRequest represents a one-click status change from the dashboard.
type QuickActionRequest struct {
	Action string `json:"action"` // "mark_ready" or "mark_completed"
}

// TrackingView is the customer-facing projection of a job. Internal notes
// and staff details never leave the shop.
type TrackingView struct {
	JobID               string     `json:"job_id"`
	CustomerName        string     `json:"customer_name"`
	BikeDescription     string     `json:"bike_description"`
	Status              string     `json:"status"`
	StatusLabel         string     `json:"status_label"`
	StatusTag           string     `json:"status_tag"`
	EstimatedRepairTime string     `json:"estimated_repair_time"`
	RepairDetails       string     `json:"repair_details"`
	EstimatedCost       *float64   `json:"estimated_cost"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ReadyNotifiedAt     *time.Time `json:"ready_notified_at"`
}

// TrackingViewOf builds the public projection of a job.
func TrackingViewOf(j *RepairJob) *TrackingView {
	return &TrackingView{
		JobID:               j.JobID,
		CustomerName:        j.CustomerName,
		BikeDescription:     j.BikeDescription,
		Status:              j.Status,
		StatusLabel:         StatusLabel(j.Status),
		StatusTag:           StatusTag(j.Status),
		EstimatedRepairTime: j.EstimatedRepairTime,
		RepairDetails:       j.RepairDetails,
		EstimatedCost:       j.EstimatedCost,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
		ReadyNotifiedAt:     j.ReadyNotifiedAt,
	}
}
