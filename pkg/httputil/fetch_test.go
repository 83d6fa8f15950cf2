package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errFlaky := errors.New("flaky")

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, true, 1, false},
		{"recovers", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
		{"permanent", 5, false, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return &RetryableError{Err: errFlaky}
					}
					return errFlaky
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != errFlaky {
				t.Errorf("err = %#v, want unwrapped errFlaky", err)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Second, func() error {
		return &RetryableError{Err: errors.New("x")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBackoffCap(t *testing.T) {
	b := Backoff{Attempts: 4, Delay: time.Millisecond, Max: 2 * time.Millisecond}
	var stamps []time.Time
	err := b.Do(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		return Transient(errors.New("down"))
	})
	if err == nil || err.Error() != "down" {
		t.Fatalf("err = %v, want unwrapped \"down\"", err)
	}
	if len(stamps) != 4 {
		t.Errorf("calls = %d, want 4", len(stamps))
	}
}

func TestTransientNil(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
}

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("floor plan"))
		case "/flaky":
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte("second time"))
		case "/big":
			w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		body, err := Fetch(ctx, srv.Client(), srv.URL+"/ok", 1024)
		if err != nil || string(body) != "floor plan" {
			t.Errorf("Fetch = %q, %v", body, err)
		}
	})

	t.Run("retries 5xx", func(t *testing.T) {
		body, err := Fetch(ctx, srv.Client(), srv.URL+"/flaky", 1024)
		if err != nil || string(body) != "second time" {
			t.Errorf("Fetch = %q, %v", body, err)
		}
	})

	t.Run("404 is permanent", func(t *testing.T) {
		_, err := Fetch(ctx, srv.Client(), srv.URL+"/missing", 1024)
		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
			t.Errorf("err = %v, want 404 StatusError", err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		if _, err := Fetch(ctx, srv.Client(), srv.URL+"/big", 16); err == nil {
			t.Error("expected size limit error")
		}
	})
}
