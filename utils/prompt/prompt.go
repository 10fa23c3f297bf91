package promptutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

type Prompter interface {
	PromptRequired(label string) (string, error)
	PromptWithDefault(label, defaultValue string) (string, error)
	PromptPassword(label string) (string, error)
	PromptForConfirmation(prompt string) bool
}

type RealPrompter struct{}

var ErrInterrupted = errors.New("operation interrupted")

func NewPrompt() Prompter {
	return &RealPrompter{}
}

func (p *RealPrompter) HandlePromptError(err error) error {
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			fmt.Println("\nReceived termination signal. Exiting.")
			return ErrInterrupted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input is required")
	}
	return nil
}

func (p *RealPrompter) run(prompt promptui.Prompt) (string, error) {
	result, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

func (p *RealPrompter) PromptRequired(label string) (string, error) {
	return p.run(promptui.Prompt{
		Label:    label,
		Validate: required,
	})
}

// PromptWithDefault accepts an empty answer as defaultValue.
func (p *RealPrompter) PromptWithDefault(label, defaultValue string) (string, error) {
	return p.run(promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: true,
	})
}

func (p *RealPrompter) PromptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: required,
	}
	result, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return "", err
	}
	return result, nil
}

func (p *RealPrompter) PromptForConfirmation(prompt string) bool {
	promptInstance := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	result, err := promptInstance.Run()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(result), "y")
}
