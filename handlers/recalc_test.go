package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalcMode(t *testing.T) {
	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{query: "", want: "preview"},
		{query: "mode=preview", want: "preview"},
		{query: "mode=commit", want: "commit"},
		{query: "mode=dryrun", wantErr: true},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run("?"+tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tour/tours/1/recalc?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mode, err := recalcMode(c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}
