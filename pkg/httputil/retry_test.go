package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cserrors "github.com/matzehuels/cardspace/pkg/errors"
)

func TestRetry(t *testing.T) {
	offline := cserrors.New(cserrors.ErrCodeNetwork, "sheet host unreachable")
	gone := cserrors.New(cserrors.ErrCodeNotFound, "sheet unpublished")

	tests := []struct {
		name      string
		failures  []error // returned by successive calls, then nil
		attempts  int
		wantCalls int
		wantCode  cserrors.Code
	}{
		{"first try", nil, 3, 1, ""},
		{"network then success", []error{offline, offline}, 3, 3, ""},
		{"not found is permanent", []error{gone}, 3, 1, cserrors.ErrCodeNotFound},
		{"plain error is permanent", []error{errors.New("csv: bad header")}, 3, 1, ""},
		{"attempts exhausted", []error{offline, offline, offline}, 2, 2, cserrors.ErrCodeNetwork},
		{"zero attempts still calls once", []error{offline}, 0, 1, cserrors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			wantErr := tt.wantCalls <= len(tt.failures)
			if (err != nil) != wantErr {
				t.Fatalf("err = %v, want error: %v", err, wantErr)
			}
			if got := cserrors.GetCode(err); err != nil && got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error {
		return cserrors.New(cserrors.ErrCodeNetwork, "status 503")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("name,image\n"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/busy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/forbidden", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()

	body, err := Fetch(ctx, srv.Client(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch(/ok) error: %v", err)
	}
	if string(body) != "name,image\n" {
		t.Errorf("Fetch(/ok) = %q", body)
	}

	tests := []struct {
		path      string
		code      cserrors.Code
		retryable bool
	}{
		{"/missing", cserrors.ErrCodeNotFound, false},
		{"/busy", cserrors.ErrCodeNetwork, true},
		{"/broken", cserrors.ErrCodeNetwork, true},
		{"/forbidden", cserrors.ErrCodeUpstream, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Fetch(ctx, srv.Client(), srv.URL+tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := cserrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
			if got := retryable(err); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}
