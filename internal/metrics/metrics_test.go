package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/insights":               "/insights",
		"/users/42":               "/users/{id}",
		"/users/42/insights":      "/users/{id}/insights",
		"/insights/run-rate/mute": "/insights/run-rate/mute",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
