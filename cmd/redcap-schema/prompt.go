package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-redcapschema/pkg/schema"
)

// prompter abstracts the terminal so the identity flow can be tested without
// a TTY.
type prompter interface {
	Input(ctx context.Context, message, help, def string, validator survey.Validator) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, help, def string, validator survey.Validator) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(validator)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", context.Canceled
		}
		return "", err
	}
	return out, nil
}

// promptIdentity asks for the schema name and description, offering the
// current values as defaults.
func promptIdentity(ctx context.Context, p prompter, name, description string) (string, string, error) {
	name, err := p.Input(ctx, "Schema name:", "Short identifier written to the \"name\" key.", name,
		survey.ComposeValidators(survey.Required, survey.MaxLength(schema.MaxNameLength)))
	if err != nil {
		return "", "", err
	}
	description, err = p.Input(ctx, "Schema description:", "Human readable summary of the dictionary.", description,
		survey.ComposeValidators(survey.Required, survey.MinLength(schema.MinDescriptionLength)))
	if err != nil {
		return "", "", err
	}
	return name, description, nil
}
