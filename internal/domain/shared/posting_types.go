package shared

// SourceType identifies which book of original entry produced a posting
const (
	SourceTypeJournal = "journal"
	SourceTypePayment = "payment"
	SourceTypeReceipt = "receipt"
)

// RejectionReason defines posting rejection categories
type RejectionReason string

const (
	RejectionReasonImbalanced    RejectionReason = "DEBITS_NOT_EQUAL_CREDITS"
	RejectionReasonInvalidLine   RejectionReason = "INVALID_LINE"
	RejectionReasonInvalidDate   RejectionReason = "INVALID_DATE"
	RejectionReasonDuplicate     RejectionReason = "DUPLICATE_ENTRY"
	RejectionReasonUnknownError  RejectionReason = "UNKNOWN_ERROR"
	RejectionReasonCommitFailure RejectionReason = "ENTRY_COMMIT_FAILED"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
