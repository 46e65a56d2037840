package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
	"repoact-notify/internal/phrase"
	"repoact-notify/internal/route"
	"repoact-notify/pkg/github"
	"repoact-notify/pkg/log"
	"repoact-notify/pkg/secrets"
	"repoact-notify/pkg/signature"
	"repoact-notify/pkg/slack"
)

const webhookSecret = "hook-secret"

type mockRoutes struct {
	routes map[string]route.Route
}

func (m *mockRoutes) Get(ctx context.Context, routeID string) (route.Route, error) {
	r, ok := m.routes[routeID]
	if !ok {
		return route.Route{}, route.ErrRouteNotFound
	}
	return r, nil
}

type mockOrigin struct {
	mu sync.Mutex

	connectErr error
	flags      github.PullRequestFlags
	flagsErr   error
	run        github.WorkflowRunDetails
	runErr     error
	waiting    github.WaitingContext
	waitingErr error

	connects int
	prCalls  int
	runCalls int
	gqlCalls int
}

func (m *mockOrigin) Connect(ctx context.Context, cred github.AppCredentials, repo string) (notify.OriginClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connects++
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	return m, nil
}

func (m *mockOrigin) QueryPullRequestFlags(ctx context.Context, number int) (github.PullRequestFlags, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prCalls++
	return m.flags, m.flagsErr
}

func (m *mockOrigin) FetchWorkflowRunDetails(ctx context.Context, runURL string) (github.WorkflowRunDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCalls++
	return m.run, m.runErr
}

func (m *mockOrigin) QueryWaitingContext(ctx context.Context, sha, environment string) (github.WaitingContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gqlCalls++
	return m.waiting, m.waitingErr
}

type mockChat struct {
	sent  []slack.Message
	token string
	raw   string
	err   error
}

func (m *mockChat) PostMessage(ctx context.Context, token string, msg slack.Message) (string, error) {
	m.sent = append(m.sent, msg)
	m.token = token
	return m.raw, m.err
}

type fixture struct {
	uc     *implUseCase
	origin *mockOrigin
	chat   *mockChat
}

func newFixture(t *testing.T, sel phrase.Selector) *fixture {
	t.Helper()
	catalog, err := phrase.Default()
	if err != nil {
		t.Fatalf("phrase.Default: %v", err)
	}
	store := secrets.NewStatic(secrets.Bundle{
		SlackBotToken:           "xoxb-test",
		GitHubAppID:             "1",
		GitHubAppInstallationID: "2",
		GitHubWebhookSecret:     webhookSecret,
		GitHubAppPEM:            "pem",
	})
	routes := &mockRoutes{routes: map[string]route.Route{
		"r0": {ID: "r0", RepositoryFullPath: "octo/repo", ChannelID: "C100"},
	}}
	f := &fixture{origin: &mockOrigin{}, chat: &mockChat{raw: `{"ok":true}`}}
	f.uc = New(log.NewNop(), store, routes, f.origin, f.chat, catalog, sel)
	return f
}

func (f *fixture) deliver(t *testing.T, routeID, body string) (notify.DeliverOutput, error) {
	t.Helper()
	sig, err := signature.Compute(signature.ModeBody, []byte(body), "", []byte(webhookSecret))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return f.uc.Deliver(context.Background(), notify.DeliverInput{RouteID: routeID, Body: []byte(body), Signature: sig})
}

func (f *fixture) lastAttachment(t *testing.T) (slack.Message, map[string]string) {
	t.Helper()
	if len(f.chat.sent) != 1 {
		t.Fatalf("expected 1 chat call, got %d", len(f.chat.sent))
	}
	msg := f.chat.sent[0]
	if len(msg.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(msg.Attachments))
	}
	fields := map[string]string{}
	for _, fl := range msg.Attachments[0].Fields {
		fields[fl.Title] = fl.Value
	}
	return msg, fields
}

const (
	repoJSON   = `"repository":{"full_name":"octo/repo","html_url":"https://github.com/octo/repo"}`
	senderJSON = `"sender":{"login":"alice","avatar_url":"https://a/alice.png","html_url":"https://github.com/alice"}`
	userJSON   = `{"login":"bob","avatar_url":"https://a/bob.png","html_url":"https://github.com/bob"}`
)

func prPayload(action, merged string, draft bool, head, base, labels string) string {
	d := "false"
	if draft {
		d = "true"
	}
	return `{"action":"` + action + `",` + senderJSON + `,` + repoJSON + `,
	"pull_request":{"html_url":"https://github.com/octo/repo/pull/7","number":7,"title":"Login","user":` + userJSON + `,
	"body":"adds login","head":{"label":"` + head + `","ref":"x"},"base":{"label":"` + base + `","ref":"y"},
	"merged":` + merged + `,"draft":` + d + `,"labels":[` + labels + `]}}`
}

func issuePayload(action, state string, isPR bool, comment bool, labels string) string {
	pr := ""
	if isPR {
		pr = `,"pull_request":{"html_url":"https://github.com/octo/repo/pull/3"}`
	}
	cm := ""
	if comment {
		cm = `,"comment":{"html_url":"https://github.com/octo/repo/issues/3#c1","user":{"login":"carol","avatar_url":"https://a/carol.png","html_url":"https://github.com/carol"},"body":"LGTM"}`
	}
	return `{"action":"` + action + `",` + senderJSON + `,` + repoJSON + cm + `,
	"issue":{"html_url":"https://github.com/octo/repo/issues/3","number":3,"title":"Crash","user":` + userJSON + `,
	"state":"` + state + `","body":null,"labels":[` + labels + `]` + pr + `}}`
}

func TestDeliverRejections(t *testing.T) {
	t.Run("Invalid signature", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		body := issuePayload("opened", "open", false, false, "")
		out, err := f.uc.Deliver(context.Background(), notify.DeliverInput{RouteID: "r0", Body: []byte(body), Signature: "sha256=00"})
		if !errors.Is(err, notify.ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
		if out.State != notify.StateReceived || len(f.chat.sent) != 0 {
			t.Errorf("unexpected progress: %v, %d chat calls", out.State, len(f.chat.sent))
		}
	})

	t.Run("Unsigned ping", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.uc.Deliver(context.Background(), notify.DeliverInput{RouteID: "r0", Body: []byte("garbage"), Event: notify.EventPing})
		if !errors.Is(err, notify.ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("Signed ping", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		body := []byte(`{"zen":"Keep it logically awesome."}`)
		sig, _ := signature.Compute(signature.ModeBody, body, "", []byte(webhookSecret))
		out, err := f.uc.Deliver(context.Background(), notify.DeliverInput{RouteID: "r0", Body: body, Signature: sig, Event: notify.EventPing})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Skipped || out.Reason != "pong" || len(f.chat.sent) != 0 {
			t.Errorf("unexpected output: %+v, %d chat calls", out, len(f.chat.sent))
		}
	})

	t.Run("Malformed payload", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		out, err := f.deliver(t, "r0", `{"action":"deleted"}`)
		if !errors.Is(err, notify.ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload, got %v", err)
		}
		if out.State != notify.StateSignatureVerified {
			t.Errorf("expected signature_verified, got %v", out.State)
		}
	})

	t.Run("No resource", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.deliver(t, "r0", `{"action":"opened",`+senderJSON+`,`+repoJSON+`}`)
		if !errors.Is(err, notify.ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload, got %v", err)
		}
		if len(f.chat.sent) != 0 {
			t.Error("nothing should be posted")
		}
	})

	t.Run("Route not found", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		out, err := f.deliver(t, "r1", issuePayload("opened", "open", false, false, ""))
		if !errors.Is(err, notify.ErrRouteNotFound) {
			t.Fatalf("expected ErrRouteNotFound, got %v", err)
		}
		if len(f.chat.sent) != 0 {
			t.Errorf("expected zero chat calls, got %d", len(f.chat.sent))
		}
		if out.State != notify.StateParsed {
			t.Errorf("expected parsed, got %v", out.State)
		}
	})

	t.Run("Delivery failure", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.chat.err = slack.ErrPostFailed
		f.chat.raw = "boom"
		out, err := f.deliver(t, "r0", issuePayload("opened", "open", false, false, ""))
		if !errors.Is(err, notify.ErrDeliveryFailed) {
			t.Fatalf("expected ErrDeliveryFailed, got %v", err)
		}
		if out.State != notify.StateMessageBuilt || out.Response != "boom" {
			t.Errorf("unexpected output: %+v", out)
		}
	})
}

func TestDeliverPullRequest(t *testing.T) {
	t.Run("Closed with unknown merged queries once", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.origin.flags = github.PullRequestFlags{Merged: true}
		out, err := f.deliver(t, "r0", prPayload("closed", "null", false, "octo:dev", "octo:master", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.origin.prCalls != 1 {
			t.Errorf("expected exactly one flag lookup, got %d", f.origin.prCalls)
		}
		msg, fields := f.lastAttachment(t)
		if msg.Attachments[0].Color != notify.ColorMerged {
			t.Errorf("expected merged color, got %s", msg.Attachments[0].Color)
		}
		if !strings.HasPrefix(msg.Text, ":merge:") {
			t.Errorf("expected merge text, got %s", msg.Text)
		}
		if fields["Branch Flow"] != "Release Promotion (octo:dev => octo:master)" {
			t.Errorf("unexpected branch flow: %s", fields["Branch Flow"])
		}
		if out.State != notify.StateDelivered || out.Channel != "C100" {
			t.Errorf("unexpected output: %+v", out)
		}
		if f.chat.token != "xoxb-test" || msg.Channel != "C100" || !msg.AsUser || msg.UnfurlLinks || msg.UnfurlMedia {
			t.Errorf("unexpected chat request: token %s, %+v", f.chat.token, msg)
		}
	})

	t.Run("Closed with known merged makes no lookup", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		out, err := f.deliver(t, "r0", prPayload("closed", "true", false, "fix-a", "master", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.origin.connects != 0 || f.origin.prCalls != 0 {
			t.Errorf("expected zero lookups, got %d connects, %d calls", f.origin.connects, f.origin.prCalls)
		}
		if out.State != notify.StateDelivered {
			t.Errorf("expected delivered, got %v", out.State)
		}
	})

	t.Run("Closed unmerged", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.deliver(t, "r0", prPayload("closed", "false", false, "fix-a", "master", ""))
		msg, _ := f.lastAttachment(t)
		if msg.Attachments[0].Color != notify.ColorClosed {
			t.Errorf("expected closed color, got %s", msg.Attachments[0].Color)
		}
	})

	t.Run("Draft opened", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			f := newFixture(t, phrase.Fixed(i))
			_, err := f.deliver(t, "r0", prPayload("opened", "false", true, "ft-login", "dev", `{"name":"bug"},{"name":"a-fix"}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			msg, fields := f.lastAttachment(t)
			if !strings.HasPrefix(msg.Text, ":pr-draft: *alice") {
				t.Errorf("expected draft opened text, got %s", msg.Text)
			}
			if msg.Attachments[0].Color != notify.ColorDraft {
				t.Errorf("expected draft color, got %s", msg.Attachments[0].Color)
			}
			if fields["Branch Flow"] != "Stable Promotion (ft-login => dev)" {
				t.Errorf("unexpected branch flow: %s", fields["Branch Flow"])
			}
			if fields["Labelled"] != "a-fix,bug" {
				t.Errorf("unexpected labels: %s", fields["Labelled"])
			}
			if strings.Count(msg.Text, "\n") != 1 {
				t.Errorf("expected exactly one draft sentence, got %q", msg.Text)
			}
			if msg.Attachments[0].AuthorName != "bob" || msg.Attachments[0].Title != "[octo/repo]#7: Login" {
				t.Errorf("unexpected attachment: %+v", msg.Attachments[0])
			}
		}
	})

	t.Run("Draft reopened has no suffix", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.deliver(t, "r0", prPayload("reopened", "false", true, "ft-a", "dev", ""))
		msg, fields := f.lastAttachment(t)
		if strings.Contains(msg.Text, "\n") {
			t.Errorf("unexpected suffix: %q", msg.Text)
		}
		if _, ok := fields["Labelled"]; ok {
			t.Error("Labelled field must be absent without labels")
		}
	})

	t.Run("Unhandled action", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.deliver(t, "r0", prPayload("created", "false", false, "a", "b", ""))
		if !errors.Is(err, notify.ErrUnhandledAction) {
			t.Fatalf("expected ErrUnhandledAction, got %v", err)
		}
		if f.origin.connects != 0 || len(f.chat.sent) != 0 {
			t.Error("expected no lookups and no chat calls")
		}
	})

	t.Run("Lookup failure aborts", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.origin.flagsErr = github.ErrLookupFailed
		_, err := f.deliver(t, "r0", prPayload("closed", "null", false, "a", "b", ""))
		if !errors.Is(err, notify.ErrOriginLookupFailed) {
			t.Fatalf("expected ErrOriginLookupFailed, got %v", err)
		}
		if len(f.chat.sent) != 0 {
			t.Error("nothing should be posted")
		}
	})
}

func TestDeliverIssue(t *testing.T) {
	t.Run("Opened with labels", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		out, err := f.deliver(t, "r0", issuePayload("opened", "open", false, false, `{"name":"bug","url":"u1"},{"name":"a-fix","url":"u2"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		msg, fields := f.lastAttachment(t)
		if msg.Text != ":issue-o: *aliceさん* がissueを立てたよ！ :issue-o:" {
			t.Errorf("unexpected text: %s", msg.Text)
		}
		if fields["Labelled"] != "a-fix,bug" {
			t.Errorf("unexpected labels: %s", fields["Labelled"])
		}
		a := msg.Attachments[0]
		if a.Title != "[octo/repo]#3: Crash" || a.TitleLink != "https://github.com/octo/repo/issues/3" || a.Color != notify.ColorOpen {
			t.Errorf("unexpected attachment: %+v", a)
		}
		if out.State != notify.StateDelivered {
			t.Errorf("expected delivered, got %v", out.State)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.deliver(t, "r0", issuePayload("closed", "closed", false, false, ""))
		msg, fields := f.lastAttachment(t)
		if msg.Attachments[0].Color != notify.ColorClosed || len(fields) != 0 {
			t.Errorf("unexpected attachment: %+v", msg.Attachments[0])
		}
	})

	t.Run("Other action is skipped", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		out, err := f.deliver(t, "r0", issuePayload("created", "open", false, false, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Skipped || out.Reason != "unprocessed issue event" || len(f.chat.sent) != 0 {
			t.Errorf("expected a skip, got %+v", out)
		}
	})

	t.Run("Issue wins over pull request", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		body := strings.TrimSuffix(issuePayload("opened", "open", false, false, ""), "}") +
			`,"pull_request":{"html_url":"https://github.com/octo/repo/pull/7","number":7,"title":"Login","user":` + userJSON +
			`,"head":{"label":"a"},"base":{"label":"b"},"merged":null}}`
		if _, err := f.deliver(t, "r0", body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		msg, _ := f.lastAttachment(t)
		if msg.Attachments[0].Title != "[octo/repo]#3: Crash" || f.origin.connects != 0 {
			t.Errorf("expected the issue scenario, got %+v", msg.Attachments[0])
		}
	})
}

func TestDeliverIssueComment(t *testing.T) {
	tcs := map[string]struct {
		state   string
		isPR    bool
		flags   github.PullRequestFlags
		icon    string
		color   string
		lookups int
	}{
		"open issue":       {state: "open", icon: notify.IconIssueOpen, color: notify.ColorOpen},
		"closed issue":     {state: "closed", icon: notify.IconIssueClosed, color: notify.ColorClosed},
		"open pr":          {state: "open", isPR: true, icon: notify.IconPullRequest, color: notify.ColorOpenPR, lookups: 1},
		"open draft pr":    {state: "open", isPR: true, flags: github.PullRequestFlags{Draft: true}, icon: notify.IconDraft, color: notify.ColorDraft, lookups: 1},
		"closed merged pr": {state: "closed", isPR: true, flags: github.PullRequestFlags{Merged: true}, icon: notify.IconMerged, color: notify.ColorMerged, lookups: 1},
		"closed rejected":  {state: "closed", isPR: true, icon: notify.IconPRClosed, color: notify.ColorClosed, lookups: 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, phrase.Fixed(0))
			f.origin.flags = tc.flags
			out, err := f.deliver(t, "r0", issuePayload("created", tc.state, tc.isPR, true, `{"name":"bug"}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.origin.prCalls != tc.lookups {
				t.Errorf("expected %d lookups, got %d", tc.lookups, f.origin.prCalls)
			}
			msg, fields := f.lastAttachment(t)
			a := msg.Attachments[0]
			if a.Color != tc.color {
				t.Errorf("expected color %s, got %s", tc.color, a.Color)
			}
			if !strings.Contains(msg.Text, "|"+tc.icon+"#3(Crash)>") {
				t.Errorf("expected icon %s in %s", tc.icon, msg.Text)
			}
			if a.Title != "" || a.AuthorName != "carol" || a.Text != "LGTM" || len(fields) != 0 {
				t.Errorf("unexpected comment attachment: %+v", a)
			}
			if out.State != notify.StateDelivered {
				t.Errorf("expected delivered, got %v", out.State)
			}
		})
	}

	t.Run("Exact text", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(1))
		f.deliver(t, "r0", issuePayload("created", "open", false, true, ""))
		msg, _ := f.lastAttachment(t)
		want := "*aliceさん* が <https://github.com/octo/repo/issues/3|:issue-o:#3(Crash)> に<https://github.com/octo/repo/issues/3#c1|コメント>したよ～"
		if msg.Text != want {
			t.Errorf("expected %q, got %q", want, msg.Text)
		}
	})
}

func discussionPayload(action, state string, comment bool) string {
	cm := ""
	if comment {
		cm = `,"comment":{"html_url":"https://github.com/octo/repo/discussions/5#c2","user":` + userJSON + `,"body":"+1"}`
	}
	return `{"action":"` + action + `",` + senderJSON + `,` + repoJSON + cm + `,
	"discussion":{"html_url":"https://github.com/octo/repo/discussions/5","number":5,"title":"Roadmap","user":` + userJSON + `,"state":"` + state + `","body":"ideas"}}`
}

func TestDeliverDiscussion(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		if _, err := f.deliver(t, "r0", discussionPayload("created", "open", false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		msg, _ := f.lastAttachment(t)
		a := msg.Attachments[0]
		if a.Title != "[octo/repo]#5: Roadmap" || a.Color != notify.ColorOpen || a.Text != "ideas" {
			t.Errorf("unexpected attachment: %+v", a)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.deliver(t, "r0", discussionPayload("closed", "closed", false))
		msg, _ := f.lastAttachment(t)
		if msg.Attachments[0].Color != notify.ColorClosed {
			t.Errorf("expected closed color, got %s", msg.Attachments[0].Color)
		}
	})

	t.Run("Comment", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.deliver(t, "r0", discussionPayload("created", "open", true))
		msg, _ := f.lastAttachment(t)
		if !strings.Contains(msg.Text, notify.IconDiscussion+"#5(Roadmap)") || msg.Attachments[0].Title != "" {
			t.Errorf("unexpected comment message: %+v", msg)
		}
	})

	t.Run("Unhandled action", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.deliver(t, "r0", discussionPayload("opened", "open", false))
		if !errors.Is(err, notify.ErrUnhandledAction) {
			t.Fatalf("expected ErrUnhandledAction, got %v", err)
		}
	})
}

func workflowPayload(action string, deployment bool) string {
	dep := ""
	if deployment {
		dep = `,"deployment":{"environment":"production","url":"https://example.com"}`
	}
	return `{"action":"` + action + `",` + senderJSON + `,` + repoJSON + dep + `,
	"workflow_job":{"run_url":"https://api.github.com/repos/octo/repo/actions/runs/99","workflow_name":"Deploy","name":"release",
	"head_sha":"0123456789abcdef","head_branch":"master","run_id":99}}`
}

func TestDeliverWorkflowJob(t *testing.T) {
	t.Run("Waiting", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		f.origin.run = github.WorkflowRunDetails{RunNumber: 42, HTMLURL: "https://github.com/octo/repo/actions/runs/99"}
		f.origin.waiting = github.WaitingContext{
			CommitMessage: "Release v1",
			CommitterName: "Dana",
			Reviewers:     []github.Reviewer{{Kind: "User", Name: "Eve", Login: "eve"}, {Kind: "Team", Login: "ops"}},
		}
		out, err := f.deliver(t, "r0", workflowPayload("waiting", true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.origin.connects != 1 || f.origin.runCalls != 1 || f.origin.gqlCalls != 1 {
			t.Errorf("unexpected lookups: %+v", f.origin)
		}
		msg, fields := f.lastAttachment(t)
		a := msg.Attachments[0]
		if a.Title != "[octo/repo] Deploy #42" || a.Text != "Release v1" || a.Color != notify.ColorPending {
			t.Errorf("unexpected attachment: %+v", a)
		}
		if fields["Reviewers"] != "Eve (eve), @ops" || fields["Commit"] != "0123456 by Dana" || fields["Branch"] != "master" {
			t.Errorf("unexpected fields: %v", fields)
		}
		if fields["Environment"] != "<https://example.com|production>" {
			t.Errorf("unexpected environment: %s", fields["Environment"])
		}
		if !strings.Contains(msg.Text, "#42") || !strings.Contains(msg.Text, "release") {
			t.Errorf("unexpected text: %s", msg.Text)
		}
		if out.State != notify.StateDelivered {
			t.Errorf("expected delivered, got %v", out.State)
		}
	})

	t.Run("Waiting without deployment", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.deliver(t, "r0", workflowPayload("waiting", false))
		if !errors.Is(err, notify.ErrMissingRequiredField) {
			t.Fatalf("expected ErrMissingRequiredField, got %v", err)
		}
		if f.origin.connects != 0 || len(f.chat.sent) != 0 {
			t.Error("expected no lookups and no chat calls")
		}
	})

	t.Run("Lookup failure", func(t *testing.T) {
		tcs := map[string]func(o *mockOrigin){
			"connect":         func(o *mockOrigin) { o.connectErr = errors.New("token exchange 401") },
			"run details":     func(o *mockOrigin) { o.runErr = github.ErrLookupFailed },
			"waiting context": func(o *mockOrigin) { o.waitingErr = github.ErrGraphQL },
		}
		for name, mutate := range tcs {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t, phrase.Fixed(0))
				mutate(f.origin)
				out, err := f.deliver(t, "r0", workflowPayload("waiting", true))
				if !errors.Is(err, notify.ErrOriginLookupFailed) {
					t.Fatalf("expected ErrOriginLookupFailed, got %v", err)
				}
				if len(f.chat.sent) != 0 {
					t.Errorf("expected zero chat calls, got %d", len(f.chat.sent))
				}
				if out.State != notify.StateRouteResolved {
					t.Errorf("expected route_resolved, got %v", out.State)
				}
			})
		}
	})

	t.Run("Other action", func(t *testing.T) {
		f := newFixture(t, phrase.Fixed(0))
		_, err := f.deliver(t, "r0", workflowPayload("opened", true))
		if !errors.Is(err, notify.ErrUnhandledAction) {
			t.Fatalf("expected ErrUnhandledAction, got %v", err)
		}
	})
}

func TestLabelsField(t *testing.T) {
	if _, ok := labelsField(nil); ok {
		t.Error("expected no field for no labels")
	}
	f, ok := labelsField([]model.Label{{Name: "bug"}, {Name: "a-fix"}})
	if !ok || f.Value != "a-fix,bug" || f.Title != "Labelled" {
		t.Errorf("unexpected field: %+v", f)
	}
}
