package promptutils

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestHandlePromptError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedErr error
		contains    string
	}{
		{name: "no error"},
		{name: "ctrl-c", err: promptui.ErrInterrupt, expectedErr: ErrInterrupted},
		{name: "ctrl-d", err: promptui.ErrEOF, expectedErr: ErrInterrupted},
		{name: "other failure", err: errors.New("tty closed"), contains: "prompt failed: tty closed"},
	}

	p := &RealPrompter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.HandlePromptError(tt.err)
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.contains != "":
				assert.EqualError(t, err, tt.contains)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	assert.Error(t, required("   "))
	assert.NoError(t, required("admin"))
}
