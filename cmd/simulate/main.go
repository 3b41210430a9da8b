// Standalone harness: runs the feedback-loop simulation against an
// in-memory engine and prints how the recommendations converge.
package main

import "github.com/studypilot/backend/internal/simulation"

func main() {
	simulation.SimulateWork()
}
