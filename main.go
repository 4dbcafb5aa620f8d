// Package main is the entry point for the injurymetrics CLI tool, which loads
// player-injury datasets and computes injury-impact performance metrics.
package main

import "github.com/pable/injury-metrics/cmd"

func main() {
	cmd.Execute()
}
