package domain_transfer

// Status is the externally visible outcome of one orchestration run.
type Status string

const (
	StatusCommitted             Status = "COMMITTED"
	StatusAborted               Status = "ABORTED"
	StatusDenied                Status = "DENIED"
	StatusManualReviewPending   Status = "MANUAL_REVIEW_PENDING"
	StatusRateUnavailable       Status = "RATE_UNAVAILABLE"
	StatusSchemeFailed          Status = "SCHEME_FAILED"
	StatusComplianceUnavailable Status = "COMPLIANCE_UNAVAILABLE"
	StatusCancelled             Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCommitted, StatusAborted, StatusDenied, StatusManualReviewPending,
		StatusRateUnavailable, StatusSchemeFailed, StatusComplianceUnavailable, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsSuccess() bool { return s == StatusCommitted }

// ReachedScheme reports whether a status can only be produced after the
// scheme answered a transfer request.
func (s Status) ReachedScheme() bool {
	return s == StatusCommitted || s == StatusAborted
}

// TransferState is the scheme-level terminal state of a settlement instruction.
type TransferState string

const (
	TransferStateCommitted TransferState = "COMMITTED"
	TransferStateAborted   TransferState = "ABORTED"
)

func (s TransferState) Valid() bool {
	return s == TransferStateCommitted || s == TransferStateAborted
}

// Stage names the orchestration step a run reached.
type Stage string

const (
	StageValidating        Stage = "VALIDATING"
	StageComplianceChecked Stage = "COMPLIANCE_CHECKED"
	StageRateResolved      Stage = "RATE_RESOLVED"
	StageQuoted            Stage = "QUOTED"
	StageTransferred       Stage = "TRANSFERRED"
	StageCompleted         Stage = "COMPLETED"
)
