package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/finance"
)

func TestBuiltInScenarios_ParseAndProject(t *testing.T) {
	// Every catalogue entry must parse, validate, and run to completion
	// with its default termination.
	f := factory.NewRequestFactory()
	engine := &finance.Engine{}

	for _, scenario := range scenarios {
		t.Run(scenario.ID, func(t *testing.T) {
			req, err := f.ParseRequest(scenario.RequestJSON)
			require.NoError(t, err)
			require.NoError(t, req.Validate())

			cont, err := f.BuildContinue(scenario.Termination)
			require.NoError(t, err)

			resp, err := engine.Project(req, cont)
			require.NoError(t, err)
			require.False(t, resp.ProjectionEndDate.IsZero())
		})
	}
}

func TestFindScenario(t *testing.T) {
	require.NotNil(t, findScenario("debt-snowball"))
	require.Nil(t, findScenario("no-such-scenario"))
}
