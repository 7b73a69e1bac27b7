//go:build !debug

package sat

// checkModel is a no-op in release builds; see debug.go.
func (s *Solver) checkModel(model []bool) {}
