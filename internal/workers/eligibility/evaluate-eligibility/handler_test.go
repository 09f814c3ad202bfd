// internal/workers/eligibility/evaluate-eligibility/handler_test.go
package evaluateeligibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"loan-eligibility-workers/internal/applicants"
	apperrors "loan-eligibility-workers/internal/common/errors"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/internal/common/metrics"
	"loan-eligibility-workers/internal/eligibility"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const applicantQuery = `SELECT id, monthly_income, loan_amount, credit_score, existing_loans, education_level, email, phone\s+FROM applicants WHERE id = \$1`

var applicantColumns = []string{
	"id", "monthly_income", "loan_amount", "credit_score", "existing_loans", "education_level", "email", "phone",
}

func createTestConfig() *Config {
	return LoadConfig()
}

func createTestHandler(t *testing.T, finder applicants.Finder, config *Config) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	return NewHandler(config, finder, logger.NewTestLogger(t))
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func inlineProfile(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.StandardError {
	t.Helper()
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %T", err)
	assert.Equal(t, code, stdErr.Code)
	return stdErr
}

type finderFunc func(ctx context.Context, id string) (*applicants.Record, error)

func (f finderFunc) FindByID(ctx context.Context, id string) (*applicants.Record, error) {
	return f(ctx, id)
}

// jobClient serves complete commands whose Send returns sendErr.
type jobClient struct {
	worker.JobClient
	sendErr error
}

func (c jobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return completeCommand{sendErr: c.sendErr}
}

type completeCommand struct {
	commands.CompleteJobCommandStep2
	sendErr error
}

func (c completeCommand) JobKey(int64) commands.CompleteJobCommandStep2 {
	return c
}

func (c completeCommand) VariablesFromObject(interface{}) (commands.DispatchCompleteJobCommand, error) {
	return c, nil
}

func (c completeCommand) Send(context.Context) (*pb.CompleteJobResponse, error) {
	if c.sendErr != nil {
		return nil, c.sendErr
	}
	return &pb.CompleteJobResponse{}, nil
}

func createTestJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       42,
		Type:      TaskType,
		Retries:   3,
		Variables: variables,
	}}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_InlineProfile(t *testing.T) {
	tests := []struct {
		name           string
		profile        string
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:    "auto-rickshaw driver",
			profile: `{"monthlyIncome":18000,"loanAmount":200000,"creditScore":520,"existingLoans":1,"educationLevel":"10th Pass"}`,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 48, output.ApprovalProbability)
				assert.Equal(t, eligibility.RiskMedium, output.RiskCategory)
				assert.Equal(t, eligibility.BankFitModerate, output.BankFitCategory)
				assert.Len(t, output.EligibilityAssessment.RoadmapSteps, 4)
			},
		},
		{
			name:    "strong salaried applicant",
			profile: `{"monthlyIncome":85000,"loanAmount":500000,"creditScore":780,"existingLoans":0,"educationLevel":"Post Graduate"}`,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, eligibility.RiskLow, output.RiskCategory)
				assert.Equal(t, eligibility.BankFitGood, output.BankFitCategory)
			},
		},
		{
			name:    "zero income does not produce NaN",
			profile: `{"monthlyIncome":0,"loanAmount":100000,"creditScore":700,"existingLoans":0,"educationLevel":"Graduate"}`,
			validateOutput: func(t *testing.T, output *Output) {
				assert.GreaterOrEqual(t, output.ApprovalProbability, 10)
				assert.LessOrEqual(t, output.ApprovalProbability, 95)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, nil, nil)
			output, err := handler.Execute(context.Background(), &Input{
				ApplicantProfile: inlineProfile(t, tt.profile),
			})

			require.NoError(t, err)
			require.NotNil(t, output)
			assert.Equal(t, SourceInline, output.ProfileSource)
			assert.Equal(t, output.ApprovalProbability, output.EligibilityAssessment.ApprovalProbability)
			assert.Equal(t, output.RiskCategory, output.EligibilityAssessment.RiskCategory)
			assert.Len(t, output.EligibilityAssessment.RiskFactors, 4)
			assert.Len(t, output.EligibilityAssessment.RecommendedBanks, 3)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_Sample(t *testing.T) {
	handler := createTestHandler(t, nil, nil)

	output, err := handler.Execute(context.Background(), &Input{SampleID: "school-teacher"})

	require.NoError(t, err)
	assert.Equal(t, SourceSample, output.ProfileSource)
	assert.Equal(t, 60, output.ApprovalProbability)
	assert.Equal(t, eligibility.RiskMedium, output.RiskCategory)
	assert.Equal(t, eligibility.BankFitGood, output.BankFitCategory)

	sample, _ := eligibility.Sample("school-teacher")
	assert.Equal(t, sample.Profile, output.ApplicantProfile)
}

func TestHandler_Execute_InlineTakesPrecedence(t *testing.T) {
	handler := createTestHandler(t, finderFunc(func(context.Context, string) (*applicants.Record, error) {
		t.Fatal("finder must not be called when a profile is supplied inline")
		return nil, nil
	}), nil)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicantProfile: inlineProfile(t,
			`{"monthlyIncome":18000,"loanAmount":200000,"creditScore":520,"existingLoans":1,"educationLevel":"10th Pass"}`),
		SampleID:    "software-engineer",
		ApplicantID: "app-1",
	})

	require.NoError(t, err)
	assert.Equal(t, SourceInline, output.ProfileSource)
	assert.Equal(t, 48, output.ApprovalProbability)
}

// ==========================
// Applicant Lookup Tests
// ==========================

func TestHandler_Execute_ApplicantFromDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(applicantQuery).
		WithArgs("app-42").
		WillReturnRows(sqlmock.NewRows(applicantColumns).
			AddRow("app-42", 18000.0, 200000.0, 520, 1, "10th Pass", "ravi@example.com", nil))

	handler := createTestHandler(t, applicants.NewRepository(db), nil)
	output, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-42"})

	require.NoError(t, err)
	assert.Equal(t, SourceApplicant, output.ProfileSource)
	assert.Equal(t, 48, output.ApprovalProbability)
	assert.Equal(t, eligibility.EducationTenthPass, output.ApplicantProfile.EducationLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ApplicantCacheMissThenHit(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, client := setupRedis(t)

	mock.ExpectQuery(applicantQuery).
		WithArgs("app-7").
		WillReturnRows(sqlmock.NewRows(applicantColumns).
			AddRow("app-7", 85000.0, 500000.0, 780, 0, "Post Graduate", nil, "+919800000000"))

	finder := applicants.NewCachedFinder(applicants.NewRepository(db), client, 5*time.Minute, logger.NewNoOpLogger())
	handler := createTestHandler(t, finder, nil)

	first, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-7"})
	require.NoError(t, err)
	assert.True(t, mr.Exists(applicants.CacheKey("app-7")))

	second, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-7"})
	require.NoError(t, err)

	assert.Equal(t, first.EligibilityAssessment, second.EligibilityAssessment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ApplicantCacheReadFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, redisMock := redismock.NewClientMock()

	key := applicants.CacheKey("app-9")
	redisMock.ExpectGet(key).SetErr(errors.New("connection reset by peer"))
	mock.ExpectQuery(applicantQuery).
		WithArgs("app-9").
		WillReturnRows(sqlmock.NewRows(applicantColumns).
			AddRow("app-9", 30000.0, 300000.0, 650, 1, "Graduate", nil, nil))
	redisMock.Regexp().ExpectSet(key, `.*`, 5*time.Minute).SetErr(errors.New("connection reset by peer"))

	finder := applicants.NewCachedFinder(applicants.NewRepository(db), redisClient, 5*time.Minute, logger.NewTestLogger(t))
	handler := createTestHandler(t, finder, nil)

	output, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-9"})

	require.NoError(t, err)
	assert.Equal(t, SourceApplicant, output.ProfileSource)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		finder    applicants.Finder
		config    *Config
		code      apperrors.ErrorCode
		retryable bool
	}{
		{
			name:  "no profile source",
			input: &Input{},
			code:  apperrors.ErrCodeApplicantProfileMissing,
		},
		{
			name:  "malformed inline profile",
			input: &Input{ApplicantProfile: map[string]interface{}{"monthlyIncome": "a lot"}},
			code:  apperrors.ErrCodeInvalidApplicantProfile,
		},
		{
			name:  "unknown sample",
			input: &Input{SampleID: "astronaut"},
			code:  apperrors.ErrCodeSampleNotFound,
		},
		{
			name:   "samples disabled",
			input:  &Input{SampleID: "school-teacher"},
			config: &Config{Timeout: time.Second, Locale: eligibility.DefaultLocale, AllowSamples: false},
			code:   apperrors.ErrCodeSampleNotFound,
		},
		{
			name:  "applicant lookup without a store",
			input: &Input{ApplicantID: "app-1"},
			code:  apperrors.ErrCodeApplicantNotFound,
		},
		{
			name:  "applicant not found",
			input: &Input{ApplicantID: "app-1"},
			finder: finderFunc(func(context.Context, string) (*applicants.Record, error) {
				return nil, applicants.ErrNotFound
			}),
			code: apperrors.ErrCodeApplicantNotFound,
		},
		{
			name:  "applicant store failure",
			input: &Input{ApplicantID: "app-1"},
			finder: finderFunc(func(context.Context, string) (*applicants.Record, error) {
				return nil, errors.New("connection refused")
			}),
			code:      apperrors.ErrCodeDatabaseConnectionFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t, tt.finder, tt.config)
			output, err := handler.Execute(context.Background(), tt.input)

			assert.Nil(t, output)
			stdErr := requireCode(t, err, tt.code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(applicantQuery).
		WithArgs("app-3").
		WillReturnError(sql.ErrConnDone)

	handler := createTestHandler(t, applicants.NewRepository(db), nil)
	_, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-3"})

	requireCode(t, err, apperrors.ErrCodeProfileLookupFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DatabaseUnreachable(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(applicantQuery).
		WithArgs("app-3").
		WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	handler := createTestHandler(t, applicants.NewRepository(db), nil)
	_, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-3"})

	stdErr := requireCode(t, err, apperrors.ErrCodeDatabaseConnectionFailed)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "app-3", stdErr.Metadata["applicantId"])
	assert.Equal(t, "PROFILE_LOOKUP_FAILED", apperrors.ConvertToBPMNError(stdErr).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_QueryTimeout(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(applicantQuery).
		WithArgs("app-3").
		WillReturnError(context.DeadlineExceeded)

	handler := createTestHandler(t, applicants.NewRepository(db), nil)
	_, err := handler.Execute(context.Background(), &Input{ApplicantID: "app-3"})

	stdErr := requireCode(t, err, apperrors.ErrCodeQueryTimeout)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "PROFILE_LOOKUP_FAILED", apperrors.ConvertToBPMNError(stdErr).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NotFoundInDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(applicantQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	handler := createTestHandler(t, applicants.NewRepository(db), nil)
	_, err := handler.Execute(context.Background(), &Input{ApplicantID: "ghost"})

	requireCode(t, err, apperrors.ErrCodeApplicantNotFound)
}

// ==========================
// Job Lifecycle Tests
// ==========================

func TestHandler_Handle_Completion(t *testing.T) {
	tests := []struct {
		name          string
		sendErr       error
		wantCompleted float64
		wantFailed    float64
	}{
		{name: "completion sent", wantCompleted: 1},
		{name: "completion rejected", sendErr: errors.New("rpc error: code = Unavailable"), wantFailed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType))
			failed := testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(TaskType, metrics.CodeCompletionFailed))

			handler := createTestHandler(t, nil, nil)
			handler.Handle(jobClient{sendErr: tt.sendErr}, createTestJob(`{"sampleId":"auto-rickshaw-driver"}`))

			assert.Equal(t, completed+tt.wantCompleted, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType)))
			assert.Equal(t, failed+tt.wantFailed, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(TaskType, metrics.CodeCompletionFailed)))
		})
	}
}

// ==========================
// Serialization Tests
// ==========================

func TestOutput_JSONShape(t *testing.T) {
	handler := createTestHandler(t, nil, nil)
	output, err := handler.Execute(context.Background(), &Input{SampleID: "auto-rickshaw-driver"})
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, float64(48), vars["approvalProbability"])
	assert.Equal(t, "Medium", vars["riskCategory"])
	assert.Equal(t, "Moderate", vars["bankFitCategory"])
	assert.Equal(t, "sample", vars["profileSource"])

	assessment, ok := vars["eligibilityAssessment"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, assessment, "riskFactors")
	assert.Contains(t, assessment, "recommendedBanks")
	assert.Contains(t, assessment, "roadmapSteps")
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute_Sample(b *testing.B) {
	handler := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())
	input := &Input{SampleID: "auto-rickshaw-driver"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = handler.Execute(ctx, input)
	}
}
