package main

import (
	"fmt"

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/lexload"
	"github.com/analyticase/casegraph/internal/simload"
)

// runInputs holds the loaded adapter records for one integration run.
type runInputs struct {
	lexNodes []lexload.Record
	lexEdges []lexload.EdgeRecord
	adNodes  []simload.Record
	adEdges  []simload.EdgeRecord
}

// loadRunInputs loads the legal framework and simulation output, with flag
// values taking precedence over configured defaults. An empty simulation
// file falls back to the built-in sample scenario.
func loadRunInputs(cfg *config.Config, lexDir, simFile string) (*runInputs, error) {
	if lexDir == "" {
		lexDir = cfg.Inputs.LexDir
	}
	if simFile == "" {
		simFile = cfg.Inputs.SimFile
	}

	in := &runInputs{}

	if lexDir != "" {
		var err error
		in.lexNodes, in.lexEdges, err = lexload.LoadDir(lexDir)
		if err != nil {
			return nil, fmt.Errorf("load legal framework: %w", err)
		}
	}

	var output *simload.Output
	if simFile != "" {
		var err error
		output, err = simload.LoadFile(simFile)
		if err != nil {
			return nil, fmt.Errorf("load simulation output: %w", err)
		}
	} else {
		output = simload.SampleScenario()
	}
	in.adNodes, in.adEdges = output.Records()

	return in, nil
}
