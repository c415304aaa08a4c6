package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"192.0.2.1:8080", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.1", "192.0.2.1"},
		{"archive.local:8000", "archive.local"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParseHostNoPort(tt.in); got != tt.expected {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestFirstForwardedFor(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{" 203.0.113.7 ", "203.0.113.7"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FirstForwardedFor(tt.in); got != tt.expected {
			t.Errorf("FirstForwardedFor(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		expected   string
	}{
		{
			name:     "remote addr without proxy",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7"},
			expected: "192.0.2.1",
		},
		{
			name:       "cloudflare header first",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.2", "X-Forwarded-For": "203.0.113.7"},
			trustProxy: true,
			expected:   "198.51.100.2",
		},
		{
			name:       "forwarded for",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			trustProxy: true,
			expected:   "203.0.113.7",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			trustProxy: true,
			expected:   "203.0.113.9",
		},
		{
			name:       "trusted but no headers",
			trustProxy: true,
			expected:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.0.2.1 ", "2001:db8::/32", "not-an-ip", ""})
	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}

	tests := []struct {
		ip       string
		expected bool
	}{
		{"10.1.2.3", true},
		{"192.0.2.1", true},
		{"192.0.2.2", false},
		{"::ffff:10.0.0.1", true},
		{"2001:db8::42", true},
		{"2001:db9::1", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.expected {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.expected)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil).IsEmpty() = false, want true")
	}
}
