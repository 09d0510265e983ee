package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"beautyboosters/services/schedule"

	"github.com/stretchr/testify/assert"
)

func TestDropErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{schedule.ErrNoDropTarget, http.StatusUnprocessableEntity},
		{schedule.ErrUnknownToken, http.StatusNotFound},
		{schedule.ErrSourceNotFound, http.StatusNotFound},
		{schedule.ErrSourceHasNoJob, http.StatusUnprocessableEntity},
		{schedule.ErrTargetNotFound, http.StatusUnprocessableEntity},
		{schedule.ErrSameSlot, http.StatusUnprocessableEntity},
		{fmt.Errorf("move: %w", schedule.ErrTargetUnavailable), http.StatusConflict},
		{errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, msg := dropError(tc.err)
		assert.Equal(t, tc.want, status, tc.err.Error())
		assert.NotEmpty(t, msg)
	}
}
