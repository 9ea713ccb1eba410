package api

import (
	"fairval/internal/domain"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_statusForError(t *testing.T) {
	t.Run("error kinds map to 4xx", func(t *testing.T) {
		cases := map[error]int{
			domain.ErrUnknownTicker:         http.StatusNotFound,
			domain.ErrNoSolutionInRange:     http.StatusUnprocessableEntity,
			domain.ErrUpstreamFetch:         http.StatusFailedDependency,
			domain.ErrInvalidParameter:      http.StatusBadRequest,
			domain.ErrInvalidTerminalGrowth: http.StatusBadRequest,
			domain.ErrDegenerateInput:       http.StatusBadRequest,
			domain.ErrInsufficientHistory:   http.StatusBadRequest,
		}
		for err, expected := range cases {
			require.Equal(t, expected, statusForError(err))
		}
	})

	t.Run("wrapped errors still map", func(t *testing.T) {
		err := fmt.Errorf("%w: INFY.NS", domain.ErrUnknownTicker)
		require.Equal(t, http.StatusNotFound, statusForError(err))
	})

	t.Run("unexpected errors are 500s", func(t *testing.T) {
		require.Equal(t, http.StatusInternalServerError, statusForError(fmt.Errorf("boom")))
	})
}
