package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/resume-screener/internal/candidate"
)

const (
	PromptYes    = "Yes"
	PromptNo     = "No"
	PromptBack   = "back"
	PromptSubmit = "Submit"
	PromptCancel = "Cancel"

	PromptEditName       = "Edit name"
	PromptEditEmail      = "Edit email"
	PromptEditPhone      = "Edit phone"
	PromptEditEducation  = "Edit education level"
	PromptEditExperience = "Edit experience"
	PromptEditSkills     = "Edit skills"
)

var errExit = errors.New("exit requested")

// ask shows a free text prompt prefilled with the current value.
func ask(label, current string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
		Validate:  validate,
	}
	value, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func choose(label string, items []string) (string, error) {
	p := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}
	_, selected, err := p.Run()
	return selected, err
}

func confirm(label string) (bool, error) {
	selected, err := choose(label, []string{PromptYes, PromptNo})
	if err != nil {
		return false, err
	}
	return selected == PromptYes, nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value must not be empty")
	}
	return nil
}

// editProfile lets the applicant correct an extracted profile before it is stored.
// It returns errExit when the applicant cancels.
func editProfile(p candidate.Profile) (candidate.Profile, error) {
	for {
		fmt.Printf("\nName:       %s\nEmail:      %s\nPhone:      %s\nEducation:  %s\nExperience: %s\nSkills:     %s\n\n",
			p.Name, p.Email, p.Phone, p.EducationLevel, p.Experience, p.SkillList())

		action, err := choose("Review the extracted profile", []string{
			PromptSubmit,
			PromptEditName,
			PromptEditEmail,
			PromptEditPhone,
			PromptEditEducation,
			PromptEditExperience,
			PromptEditSkills,
			PromptCancel,
		})
		if err != nil {
			return p, err
		}

		switch action {
		case PromptSubmit:
			if err := p.Validate(); err != nil {
				fmt.Println(err)
				continue
			}
			return p, nil
		case PromptCancel:
			return p, errExit
		case PromptEditName:
			p.Name, err = ask("Name", p.Name, notEmpty)
		case PromptEditEmail:
			p.Email, err = ask("Email", p.Email, notEmpty)
		case PromptEditPhone:
			p.Phone, err = ask("Phone", p.Phone, notEmpty)
		case PromptEditEducation:
			p.EducationLevel, err = choose("Education level", append(append([]string{}, candidate.EducationLevels...), candidate.NotFound))
		case PromptEditExperience:
			p.Experience, err = ask("Experience", p.Experience, notEmpty)
		case PromptEditSkills:
			var raw string
			raw, err = ask("Skills (comma separated)", p.SkillList(), nil)
			if err == nil {
				p.Skills = candidate.ParseSkills(raw)
			}
		default:
			return p, fmt.Errorf("invalid action: %s", action)
		}
		if err != nil {
			return p, err
		}
	}
}
