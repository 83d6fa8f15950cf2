package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDanglingReference, "pathway %d points at stop %d", 12, 404)

	if err.Code != ErrCodeDanglingReference {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDanglingReference)
	}
	if want := "DANGLING_REFERENCE: pathway 12 points at stop 404"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	hostErr := errors.New("host went away")
	err := Wrap(ErrCodeTimeout, hostErr, "operation %s", "op-1")

	if want := "TIMEOUT: operation op-1: host went away"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if errors.Unwrap(err) != hostErr {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), hostErr)
	}
	if !errors.Is(err, hostErr) {
		t.Error("errors.Is(err, hostErr) = false")
	}
}

func TestIs(t *testing.T) {
	busy := New(ErrCodeBusy, "stop 5 has a pending edit")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Direct", busy, ErrCodeBusy, true},
		{"OtherCode", busy, ErrCodeTimeout, false},
		{"FmtWrapped", fmt.Errorf("delete stop 5: %w", busy), ErrCodeBusy, true},
		{"OuterCodeWins", Wrap(ErrCodeTimeout, busy, "retry"), ErrCodeTimeout, true},
		{"InnerCodeHidden", Wrap(ErrCodeTimeout, busy, "retry"), ErrCodeBusy, false},
		{"PlainError", errors.New("boom"), ErrCodeBusy, false},
		{"Nil", nil, ErrCodeBusy, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"Dangling", New(ErrCodeDanglingReference, "x"), ErrCodeDanglingReference},
		{"Unsupported", fmt.Errorf("pdf: %w", New(ErrCodeUnsupported, "no converter")), ErrCodeUnsupported},
		{"InvalidID", New(ErrCodeInvalidID, "station abc"), ErrCodeInvalidID},
		{"Plain", errors.New("plain"), ""},
		{"Nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Busy", New(ErrCodeBusy, "stop 5 has a pending edit"), "stop 5 has a pending edit"},
		{"Dangling", New(ErrCodeDanglingReference, "pathway 3 ends at unknown stop 9"), "pathway 3 ends at unknown stop 9"},
		{"WrappedKeepsOwnMessage", Wrap(ErrCodeNotFound, errors.New("no documents"), "station 7"), "station 7"},
		{"Plain", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
