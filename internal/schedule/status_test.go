package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransition_HappyPaths(t *testing.T) {
	require.NoError(t, Transition(StatusScheduled, StatusInProgress, false))
	require.NoError(t, Transition(StatusScheduled, StatusCancelled, false))
	require.NoError(t, Transition(StatusInProgress, StatusCancelled, false))
	require.NoError(t, Transition(StatusInProgress, StatusCompleted, true))
}

func TestTransition_CompleteRequiresReport(t *testing.T) {
	err := Transition(StatusInProgress, StatusCompleted, false)

	var perr *PreconditionError
	require.ErrorAs(t, err, &perr)
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	targets := []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

	for _, from := range []Status{StatusCompleted, StatusCancelled} {
		for _, to := range targets {
			err := Transition(from, to, true)

			var terr *InvalidTransitionError
			require.ErrorAs(t, err, &terr, "%s -> %s must be rejected", from, to)
			require.Equal(t, from, terr.From)
			require.Equal(t, to, terr.To)
		}
	}
}

func TestTransition_UnsupportedEdges(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusScheduled},
		{StatusInProgress, StatusScheduled},
		{StatusInProgress, StatusInProgress},
	}

	for _, tc := range cases {
		err := Transition(tc.from, tc.to, true)

		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr, "%s -> %s must be rejected", tc.from, tc.to)
	}
}

func TestStatus_Terminal(t *testing.T) {
	require.False(t, StatusScheduled.Terminal())
	require.False(t, StatusInProgress.Terminal())
	require.True(t, StatusCompleted.Terminal())
	require.True(t, StatusCancelled.Terminal())
}
