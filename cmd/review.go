package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/store"
)

const (
	PromptInvite  = "Invite to interview"
	PromptOffer   = "Send offer"
	PromptReject  = "Reject"
	PromptSave    = "Save for later"
	PromptUnsave  = "Remove from saved"
	PromptDetails = "Show profile"
	PromptExit    = "exit"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Walk through a job's applications and move them along the hiring workflow",
	Run: func(cmd *cobra.Command, _ []string) {
		runReview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().String("job", "", "id of the job to review")
	reviewCmd.Flags().Bool("suspicious", false, "only review applications flagged as suspicious")

	reviewCmd.MarkFlagRequired("job")
}

func runReview(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	cfg := &screening.Config{
		ExcludeStatuses: []store.Status{store.StatusRejected, store.StatusOfferSent},
		Suspicion:       screening.SuspicionFlag,
	}
	if suspicious, _ := cmd.Flags().GetBool("suspicious"); suspicious {
		cfg.Suspicion = screening.SuspicionOnly
	}

	jobID := cmd.Flag("job").Value.String()

	for {
		queue, err := screenJob(e.ctx, e, s, jobID, cfg, store.Filter{})
		if err != nil {
			e.logger.Fatal("screening applications", zap.Error(err))
		}

		if len(queue) == 0 {
			e.logger.Info("exiting", zap.String("reason", "no applications left to review"))
			return
		}

		items := make([]string, 0, len(queue)+1)
		for _, c := range queue {
			items = append(items, reviewLabel(c))
		}

		selected, err := choose("Choose an application and press ENTER", append(items, PromptExit))
		if err != nil {
			e.logger.Fatal("exiting", zap.Error(err))
		}
		if selected == PromptExit {
			return
		}

		id := strings.Split(selected, " ")[0]
		candidate := (&screening.Candidates{Items: queue}).FindByID(id)
		if candidate == nil {
			e.logger.Fatal("exiting", zap.Error(fmt.Errorf("there is no such application id %s", id)))
		}

		if err := reviewCandidate(e, s, candidate); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			e.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func reviewLabel(c *screening.Candidate) string {
	p := c.Application.Profile
	label := fmt.Sprintf("%s %s <%s> / %s", c.ID(), p.Name, p.Email, c.Application.Status)
	if c.Score != nil {
		label += fmt.Sprintf(" / score %.2f", c.Score.Total)
	}
	if c.Suspicion != nil && c.Suspicion.Suspicious() {
		label += " / suspicious: " + c.Suspicion.Summary()
	}
	if c.Application.Saved {
		label += " / saved"
	}
	return label
}

// reviewCandidate runs the action menu for one application until the recruiter goes back.
func reviewCandidate(e *env, s *store.Store, c *screening.Candidate) error {
	log := logger.WithApplicationFields(e.logger, c.Application.JobID, c.ID())

	for {
		items := []string{PromptDetails}
		for _, next := range c.Application.Status.Next() {
			switch next {
			case store.StatusInterviewInvited:
				items = append(items, PromptInvite)
			case store.StatusOfferSent:
				items = append(items, PromptOffer)
			case store.StatusRejected:
				items = append(items, PromptReject)
			}
		}
		if c.Application.Saved {
			items = append(items, PromptUnsave)
		} else {
			items = append(items, PromptSave)
		}
		items = append(items, PromptBack, PromptExit)

		action, err := choose(reviewLabel(c), items)
		if err != nil {
			return err
		}

		switch action {
		case PromptBack:
			return nil
		case PromptExit:
			log.Info("exiting", zap.String("reason", "got exit from prompt"))
			return errExit
		case PromptDetails:
			p := c.Application.Profile
			fmt.Printf("\nName:       %s\nEmail:      %s\nPhone:      %s\nEducation:  %s\nExperience: %s\nSkills:     %s\n",
				p.Name, p.Email, p.Phone, p.EducationLevel, p.Experience, p.SkillList())
			if c.Score != nil {
				fmt.Printf("Score:      %.2f (matched: %s)\n", c.Score.Total, strings.Join(c.Score.MatchedSkills, ", "))
			}
			if c.Suspicion != nil {
				fmt.Printf("Suspicion:  %s\n", c.Suspicion.Summary())
			}
			fmt.Println()
		case PromptInvite:
			slot, err := askInterview()
			if err != nil {
				return err
			}
			app, err := s.UpdateStatus(e.ctx, c.ID(), store.StatusInterviewInvited, slot)
			if err != nil {
				return err
			}
			c.Application = app
			log.Info("interview scheduled", zap.String("date", slot.Date), zap.String("time", slot.Time))
		case PromptOffer, PromptReject:
			to := store.StatusOfferSent
			if action == PromptReject {
				to = store.StatusRejected
			}
			ok, err := confirm(fmt.Sprintf("%s for %s?", action, c.Application.Profile.Name))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			app, err := s.UpdateStatus(e.ctx, c.ID(), to, nil)
			if err != nil {
				return err
			}
			c.Application = app
			// Terminal statuses leave the queue.
			return nil
		case PromptSave, PromptUnsave:
			saved := action == PromptSave
			if err := s.SetSaved(e.ctx, c.ID(), saved); err != nil {
				return err
			}
			c.Application.Saved = saved
			log.Info("saved flag changed", zap.Bool("saved", saved))
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func askInterview() (*store.Interview, error) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)

	date, err := ask("Interview date (YYYY-MM-DD)", tomorrow, func(s string) error {
		_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
		return err
	})
	if err != nil {
		return nil, err
	}

	at, err := ask("Interview time (HH:MM)", "10:00", func(s string) error {
		_, err := time.Parse("15:04", strings.TrimSpace(s))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &store.Interview{Date: date, Time: at}, nil
}
