package testutil

import (
	"errors"
	"testing"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertViolation checks that the violation list contains the expected kind.
func AssertViolation(t *testing.T, violations []models.RiskViolation, kind models.ViolationKind) {
	t.Helper()

	for _, v := range violations {
		if v.Kind == kind {
			return
		}
	}
	t.Errorf("expected violation %q, got %v", kind, kinds(violations))
}

// AssertNoViolation checks that the violation list does not contain the given kind.
func AssertNoViolation(t *testing.T, violations []models.RiskViolation, kind models.ViolationKind) {
	t.Helper()

	for _, v := range violations {
		if v.Kind == kind {
			t.Errorf("unexpected violation %q (message: %s)", kind, v.Message)
		}
	}
}

func kinds(violations []models.RiskViolation) []models.ViolationKind {
	result := make([]models.ViolationKind, len(violations))
	for i, v := range violations {
		result[i] = v.Kind
	}
	return result
}
