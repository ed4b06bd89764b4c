package issuer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucabelezal/cardlimit-service/internal/config"
	"github.com/sirupsen/logrus"
)

const validPolicyXML = `<?xml version="1.0" encoding="utf-8"?>
<LimitPolicy>
	<MinLimit>50000</MinLimit>
	<MaxLimit>1000000</MaxLimit>
</LimitPolicy>`

func TestParsePolicy(t *testing.T) {
	policy, err := parsePolicy([]byte(validPolicyXML))
	if err != nil {
		t.Fatalf("parsePolicy: %v", err)
	}
	if policy.MinAllowedLimit != 50000 {
		t.Errorf("min = %d, want 50000", policy.MinAllowedLimit)
	}
	if policy.MaxAllowedLimit != 1000000 {
		t.Errorf("max = %d, want 1000000", policy.MaxAllowedLimit)
	}
}

func TestParsePolicy_Invalid(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"not xml", "{}"},
		{"missing root", `<Other/>`},
		{"missing max", `<LimitPolicy><MinLimit>1</MinLimit></LimitPolicy>`},
		{"non numeric", `<LimitPolicy><MinLimit>abc</MinLimit><MaxLimit>2</MaxLimit></LimitPolicy>`},
		{"min above max", `<LimitPolicy><MinLimit>10</MinLimit><MaxLimit>2</MaxLimit></LimitPolicy>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePolicy([]byte(tt.xml)); err == nil {
				t.Error("parsePolicy returned nil error")
			}
		})
	}
}

func TestFetchLimitPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(validPolicyXML))
	}))
	defer srv.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.Config{IssuerURL: srv.URL}, log)

	policy, err := client.FetchLimitPolicy()
	if err != nil {
		t.Fatalf("FetchLimitPolicy: %v", err)
	}
	if policy.MinAllowedLimit != 50000 || policy.MaxAllowedLimit != 1000000 {
		t.Errorf("policy = %+v", policy)
	}
}

func TestFetchLimitPolicy_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.Config{IssuerURL: srv.URL}, log)

	if _, err := client.FetchLimitPolicy(); err == nil {
		t.Error("FetchLimitPolicy returned nil error on 500")
	}
}
