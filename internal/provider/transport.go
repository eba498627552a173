package provider

import (
	"context"
	"net/http"
)

type statusRecorderKey struct{}

// statusRecorder holds the HTTP status of the provider response for one adapter call.
type statusRecorder struct {
	code int
}

func withStatusRecorder(ctx context.Context) (context.Context, *statusRecorder) {
	rec := &statusRecorder{}
	return context.WithValue(ctx, statusRecorderKey{}, rec), rec
}

type statusTransport struct {
	next http.RoundTripper
}

func newStatusTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &statusTransport{next: next}
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if resp != nil {
		if rec, ok := req.Context().Value(statusRecorderKey{}).(*statusRecorder); ok {
			rec.code = resp.StatusCode
		}
	}
	return resp, err
}
