package translator

import "testing"

func TestGoogleClientOptions(t *testing.T) {
	if opts := googleClientOptions(ServiceConfig{}); len(opts) != 0 {
		t.Errorf("empty config must yield no options, got %d", len(opts))
	}

	opts := googleClientOptions(ServiceConfig{
		Credentials: "/tmp/creds.json",
		ProjectID:   "my-project",
	})
	if len(opts) != 2 {
		t.Errorf("expected credentials and quota project options, got %d", len(opts))
	}

	if opts := googleClientOptions(ServiceConfig{ProjectID: "my-project"}); len(opts) != 1 {
		t.Errorf("expected only the quota project option, got %d", len(opts))
	}
}
