package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gourav1008/NotesApp/internal/apperr"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestBlocked(t *testing.T) {
	resp := Blocked("account has been blocked, please contact support")
	assert.Equal(t, StatusError, resp.Status)
	assert.True(t, resp.IsBlocked)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		fallback    string
		wantMessage string
		wantBlocked bool
	}{
		{
			name:        "domain error yields own message",
			err:         apperr.NotFound("note not found"),
			fallback:    "internal error",
			wantMessage: "note not found",
		},
		{
			name:        "blocked rejection carries flag",
			err:         apperr.Blocked(),
			fallback:    "internal error",
			wantMessage: "account has been blocked, please contact support",
			wantBlocked: true,
		},
		{
			name:        "internal error masked by fallback message",
			err:         errors.New("pq: connection refused"),
			fallback:    "failed to read note",
			wantMessage: "failed to read note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := FromError(tt.err, tt.fallback)
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.Equal(t, tt.wantBlocked, resp.IsBlocked)
		})
	}
}
