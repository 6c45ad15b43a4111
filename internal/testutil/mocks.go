// Package testutil provides shared test doubles for packages that sit on
// top of the kernel engine.
package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/cogpy/agent-neuro/pkg/kernel"
)

// MockEstimator is a scriptable implementation of kernel.FitnessEstimator.
type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Estimate(candidate *kernel.Kernel, incumbent float64) float64 {
	args := m.Called(candidate, incumbent)
	return args.Get(0).(float64)
}
