//go:build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

// restartStorefront bounces the storefront container so the next reads come
// from whatever the KV backend persisted.
func restartStorefront(t *testing.T, ctx context.Context) {
	t.Helper()

	service := getenv("E2E_COMPOSE_SERVICE", "storefront")
	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", service)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart %s failed: %v\n%s", service, err, string(out))
	}
}
