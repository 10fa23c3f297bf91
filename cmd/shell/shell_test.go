package shell

import (
	"bytes"
	"errors"
	"testing"

	mock_consolectl "github.com/BerryBytes/consolectl/tests/mock"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestServeCmd(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedAddr  string
		runErr        error
		expectedError string
	}{
		{name: "configured address", args: []string{}, expectedAddr: ""},
		{name: "listen flag", args: []string{"--listen", "127.0.0.1:9000"}, expectedAddr: "127.0.0.1:9000"},
		{name: "server failure", args: []string{"-l", ":1"}, expectedAddr: ":1", runErr: errors.New("address in use"), expectedError: "shell stopped: address in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := mock_consolectl.NewMockRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), tt.expectedAddr).Return(tt.runErr)

			cmd := NewShellCommands(runner)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append([]string{"serve"}, tt.args...))

			err := cmd.Execute()
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}
