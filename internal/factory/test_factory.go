package factory

import (
	"time"

	"github.com/mfreitas/storegate/internal/dependencies/mocks"
	"github.com/mfreitas/storegate/internal/services/token"
	"github.com/mfreitas/storegate/internal/storage/memory"
	"github.com/mfreitas/storegate/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Uploads go to the given directory (pass t.TempDir()).
func NewTestApp(uploadDir string) (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	cfg := Config{
		TokenConfig: token.Config{
			Secret:        "test-secret",
			TokenDuration: 2 * time.Hour,
			Issuer:        "storegate-test",
		},
	}
	cfg.FilesConfig.Dir = uploadDir

	app, err := newWithDependencies(store, mockClock, cfg, testutil.NopLogger())
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}, nil
}
