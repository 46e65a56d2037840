package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
	"repoact-notify/pkg/github"
)

const shortSHALen = 7

func (uc *implUseCase) workflowJobEvent(ctx context.Context, ev model.WebhookEvent, origin *originSession) (synthesis, error) {
	job := ev.WorkflowJob
	if ev.Action != model.ActionWaiting {
		return synthesis{}, fmt.Errorf("%w: workflow_job %s", notify.ErrUnhandledAction, ev.Action)
	}
	if ev.Deployment == nil {
		return synthesis{}, fmt.Errorf("%w: deployment", notify.ErrMissingRequiredField)
	}
	env := ev.Deployment.Environment

	client, err := origin.get(ctx)
	if err != nil {
		return synthesis{}, err
	}

	var (
		run     github.WorkflowRunDetails
		waiting github.WaitingContext
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		run, err = client.FetchWorkflowRunDetails(gctx, job.RunURL)
		return err
	})
	g.Go(func() error {
		var err error
		waiting, err = client.QueryWaitingContext(gctx, job.HeadSHA, env)
		return err
	})
	if err := g.Wait(); err != nil {
		return synthesis{}, fmt.Errorf("%w: workflow run %d: %w", notify.ErrOriginLookupFailed, job.RunID, err)
	}

	text, err := uc.render("workflow_job.waiting", textData{
		Sender:      ev.Sender.Login,
		URL:         run.HTMLURL,
		Workflow:    job.WorkflowName,
		RunNumber:   run.RunNumber,
		Job:         job.Name,
		Environment: env,
	})
	if err != nil {
		return synthesis{}, err
	}

	att := newAttachment(ev.Sender, notify.ColorPending)
	att.Title = fmt.Sprintf("[%s] %s #%d", ev.Repository.FullName, job.WorkflowName, run.RunNumber)
	att.TitleLink = run.HTMLURL
	att.Text = waiting.CommitMessage
	att.Fields = []notify.Field{
		{Title: "Environment", Value: environmentValue(ev.Deployment), Short: true},
		{Title: "Reviewers", Value: reviewersValue(waiting.Reviewers), Short: true},
		{Title: "Branch", Value: job.HeadBranch, Short: true},
		{Title: "Commit", Value: commitValue(job.HeadSHA, waiting.CommitterName), Short: true},
	}

	return synthesis{msg: notify.Message{Text: text, Attachment: att}}, nil
}

func environmentValue(d *model.DeploymentInfo) string {
	if d.URL == "" {
		return d.Environment
	}
	return fmt.Sprintf("<%s|%s>", d.URL, d.Environment)
}

func reviewersValue(reviewers []github.Reviewer) string {
	if len(reviewers) == 0 {
		return "-"
	}
	names := make([]string, 0, len(reviewers))
	for _, r := range reviewers {
		names = append(names, r.Display())
	}
	return strings.Join(names, ", ")
}

func commitValue(sha, committer string) string {
	if len(sha) > shortSHALen {
		sha = sha[:shortSHALen]
	}
	if committer == "" {
		return sha
	}
	return sha + " by " + committer
}
