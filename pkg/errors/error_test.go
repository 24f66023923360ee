package errors

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStructuredErrorImplementsErrorInterface(t *testing.T) {
	err := New(TransferError, "Test error", "Test details", 123)

	// Check if it implements error interface
	var _ error = err

	// Check error message format
	expected := "[transfer_error] Test error: Test details"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestStructuredErrorJSON(t *testing.T) {
	err := New(ConnectionError, "JSON test", "Some details", 42)

	jsonStr, jsonErr := err.JSON()
	if jsonErr != nil {
		t.Fatalf("Failed to marshal error to JSON: %v", jsonErr)
	}

	// Parse it back to check fields
	var parsed map[string]interface{}
	if unmarshalErr := json.Unmarshal([]byte(jsonStr), &parsed); unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", unmarshalErr)
	}

	if parsed["type"] != string(ConnectionError) {
		t.Errorf("type = %q, want %q", parsed["type"], ConnectionError)
	}
	if parsed["message"] != "JSON test" {
		t.Errorf("message = %q, want %q", parsed["message"], "JSON test")
	}
	if parsed["details"] != "Some details" {
		t.Errorf("details = %q, want %q", parsed["details"], "Some details")
	}
	if parsed["code"] != float64(42) {
		t.Errorf("code = %v, want %v", parsed["code"], 42)
	}
	if parsed["timestamp"] == "" {
		t.Error("timestamp should not be empty")
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("connection refused")
	err := Wrap(underlying, ConnectionError, "Could not connect", ErrDialFailed)

	if err.Type != ConnectionError {
		t.Errorf("Type = %q, want %q", err.Type, ConnectionError)
	}
	if err.Details != "connection refused" {
		t.Errorf("Details = %q, want %q", err.Details, "connection refused")
	}
	if err.Code != ErrDialFailed {
		t.Errorf("Code = %d, want %d", err.Code, ErrDialFailed)
	}

	// Wrapping nil leaves details empty
	errNil := Wrap(nil, SystemError, "No cause", 1)
	if errNil.Details != "" {
		t.Errorf("Details for nil cause = %q, want empty", errNil.Details)
	}
}

func TestIsType(t *testing.T) {
	err := New(VerificationError, "Size mismatch", "", ErrRemoteSizeMismatch)

	if !IsType(err, VerificationError) {
		t.Error("IsType() should match the error's own type")
	}
	if IsType(err, TransferError) {
		t.Error("IsType() should not match a different type")
	}
	if IsType(errors.New("plain"), VerificationError) {
		t.Error("IsType() should not match a plain error")
	}
}

func TestGetErrorMessage(t *testing.T) {
	if msg := GetErrorMessage(ErrRemoteSizeMismatch); msg == "" || msg == "Unknown error." {
		t.Errorf("GetErrorMessage(ErrRemoteSizeMismatch) = %q, want a standardized message", msg)
	}
	if msg := GetErrorMessage(-1); msg != "Unknown error." {
		t.Errorf("GetErrorMessage(-1) = %q, want %q", msg, "Unknown error.")
	}
}
