package domain

import "time"

// ReputationSource identifies the kind of event that awarded points. The
// point values themselves are caller-supplied configuration, not domain
// rules.
type ReputationSource string

const (
	SourceUpvoteReceived    ReputationSource = "UPVOTE_RECEIVED"
	SourceDiscussionCreated ReputationSource = "DISCUSSION_CREATED"
	SourceReplyCreated      ReputationSource = "REPLY_CREATED"
	SourceResourceUpload    ReputationSource = "RESOURCE_UPLOAD"
	SourceBugReport         ReputationSource = "BUG_REPORT"
	SourceRuleViolation     ReputationSource = "RULE_VIOLATION"
	SourceAdminAdjustment   ReputationSource = "ADMIN_ADJUSTMENT"
)

// ReputationLog is an immutable point-award record. The log is the source
// of truth; the cached total on the user row is a derived projection.
type ReputationLog struct {
	ID         int64            `json:"id"`
	UserUID    string           `json:"user_uid"`
	SourceType ReputationSource `json:"source_type"`
	SourceID   string           `json:"source_id,omitempty"`
	Points     int32            `json:"points"`
	Reason     string           `json:"reason,omitempty"`
	CreatedOn  time.Time        `json:"created_on"`
}
