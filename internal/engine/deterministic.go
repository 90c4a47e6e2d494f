package engine

import "time"

// seedFunc supplies a seed when the caller leaves ScenarioConfig.Seed at its
// zero value. Tests override it with SetSeedFunc for reproducible fixtures;
// nothing in the kernel itself ever calls the shared global rand source.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the fallback seed source. Intended for tests.
func SetSeedFunc(f func() int64) { seedFunc = f }

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return seedFunc()
	}
	return seed
}
