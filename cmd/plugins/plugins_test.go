package plugins

import (
	"bytes"
	"errors"
	"testing"

	"github.com/BerryBytes/consolectl/models"
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
			args: []string{"iothub"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				p.EXPECT().PromptForConfirmation("Delete plugin iothub").Return(true)
				c.EXPECT().DeletePlugin(gomock.Any(), "iothub").
					Return(&models.DeletePluginData{Plugin: models.PluginDetail{ID: "iothub", Status: "DELETED"}}, nil)
			},
			expectedOutput: "Plugin iothub deleted (status DELETED).",
		},
		{
			name: "declined",
			args: []string{"iothub"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				p.EXPECT().PromptForConfirmation(gomock.Any()).Return(false)
			},
			expectedOutput: "Aborted.",
		},
		{
			name: "yes flag skips confirmation",
			args: []string{"iothub", "--yes"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				c.EXPECT().DeletePlugin(gomock.Any(), "iothub").
					Return(&models.DeletePluginData{Plugin: models.PluginDetail{ID: "iothub"}}, nil)
			},
			expectedOutput: "Plugin iothub deleted",
		},
		{
			name: "backend failure",
			args: []string{"iothub", "-y"},
			mockSetup: func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {
				c.EXPECT().DeletePlugin(gomock.Any(), "iothub").Return(nil, errors.New("plugin busy"))
			},
			expectedError: "failed to delete plugin iothub: plugin busy",
		},
		{
			name:          "missing id",
			args:          []string{},
			mockSetup:     func(c *mock_consolectl.MockConsole, p *mock_consolectl.MockPrompter) {},
			expectedError: "accepts 1 arg(s), received 0",
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
			cmd.SetErr(&bytes.Buffer{})
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

func TestInstallersCmd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsole := mock_consolectl.NewMockConsole(ctrl)
	mockConsole.EXPECT().ListRepoInstallers(gomock.Any(), []string{"tkeel", "broken", "empty"}).Return([]models.RepoInstallers{
		{Repo: "tkeel", Installers: []models.BriefInstallerInfo{{Name: "iothub", Version: "0.4.0", Installed: true}, {Name: "rule-manager", Version: "0.4.1"}}},
		{Repo: "broken", Installers: []models.BriefInstallerInfo{}, Err: errors.New("repo not found")},
		{Repo: "empty", Installers: []models.BriefInstallerInfo{}},
	})

	cmd := InstallersCmd(mockConsole)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"tkeel", "broken", "empty"})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "tkeel:\n  iothub 0.4.0 [installed]\n  rule-manager 0.4.1\n")
	assert.Contains(t, out.String(), "broken:\n  error: repo not found\n")
	assert.Contains(t, out.String(), "empty:\n  (no installers)\n")
}

func TestInstallersCmd_AllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsole := mock_consolectl.NewMockConsole(ctrl)
	mockConsole.EXPECT().ListRepoInstallers(gomock.Any(), []string{"broken"}).Return([]models.RepoInstallers{
		{Repo: "broken", Installers: []models.BriefInstallerInfo{}, Err: errors.New("repo not found")},
	})

	cmd := InstallersCmd(mockConsole)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"broken"})

	assert.EqualError(t, cmd.Execute(), "failed to list installers for all 1 repo(s)")
}
