package devices

import (
	"bytes"
	"errors"
	"testing"

	mock_consolectl "github.com/BerryBytes/consolectl/tests/mock"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestDeleteCmd(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		mockSetup      func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter)
		expectedOutput string
		expectedError  string
	}{
		{
			name: "confirmed delete",
			args: []string{"d1", "d2"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				p.EXPECT().PromptForConfirmation("Delete 2 device(s): d1, d2").Return(true)
				c.EXPECT().DeleteDevices(gomock.Any(), []string{"d1", "d2"}).Return(nil)
			},
			expectedOutput: "Deleted 2 device(s).",
		},
		{
			name: "declined",
			args: []string{"d1"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				p.EXPECT().PromptForConfirmation(gomock.Any()).Return(false)
			},
			expectedOutput: "Aborted.",
		},
		{
			name: "backend failure",
			args: []string{"d1", "--yes"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				c.EXPECT().DeleteDevices(gomock.Any(), []string{"d1"}).Return(errors.New("device locked"))
			},
			expectedError: "failed to delete devices: device locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockConsole := mock_consolectl.NewMockConsole(ctrl)
			mockPrompter := mock_consolectl.NewMockPrompter(ctrl)
			tt.mockSetup(mockConsole, mockPrompter)

			cmd := DeleteCmd(mockConsole, mockPrompter)
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, out.String(), tt.expectedOutput)
		})
	}
}
