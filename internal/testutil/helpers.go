// Package testutil holds helpers shared by tests that need a real kernel.
package testutil

import (
	"os"
	"testing"

	"grimm.is/vethpair/internal/brand"
)

// RequireVM skips the test if the VETHPAIR_VM_TEST environment variable is not set.
// This ensures that tests requiring real kernel capabilities (rtnetlink,
// CAP_NET_ADMIN, network namespaces) only run in the proper environment.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv(brand.VMTestEnv()) == "" {
		t.Skipf("Skipping test: requires %s environment", brand.VMTestEnv())
	}
}
