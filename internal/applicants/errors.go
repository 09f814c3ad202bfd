package applicants

import (
	"context"
	"errors"

	"loan-eligibility-workers/internal/common/camunda"
	apperrors "loan-eligibility-workers/internal/common/errors"
)

// LookupError converts a FindByID failure into the job error the workers report.
func LookupError(ctx context.Context, applicantID string, err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.NewApplicantNotFoundError(applicantID)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.NewQueryTimeoutError("applicants.find_by_id").
			WithMetadata("applicantId", applicantID)
	case camunda.IsTransient(err):
		return apperrors.NewDatabaseConnectionFailedError(err).
			WithMetadata("applicantId", applicantID)
	default:
		return apperrors.NewProfileLookupFailedError(applicantID, err)
	}
}
