package notify

// State is how far a delivery got through the pipeline.
type State int

const (
	StateReceived State = iota
	StateSignatureVerified
	StateParsed
	StateRouteResolved
	StateFieldsResolved
	StateMessageBuilt
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateSignatureVerified:
		return "signature_verified"
	case StateParsed:
		return "parsed"
	case StateRouteResolved:
		return "route_resolved"
	case StateFieldsResolved:
		return "fields_resolved"
	case StateMessageBuilt:
		return "message_built"
	case StateDelivered:
		return "delivered"
	}
	return "unknown"
}

// Attachment colors.
const (
	ColorOpen    = "#6cc644"
	ColorClosed  = "#bd2c00"
	ColorDraft   = "#6c737c"
	ColorOpenPR  = "#4078c0"
	ColorMerged  = "#6e5494"
	ColorPending = "#dbab09"
)

// Workspace emoji used as resource icons.
const (
	IconIssueOpen   = ":issue-o:"
	IconIssueClosed = ":issue-c:"
	IconPullRequest = ":pr:"
	IconDraft       = ":pr-draft:"
	IconPRClosed    = ":pr-closed:"
	IconMerged      = ":merge:"
	IconDiscussion  = ":speech_balloon:"
)

// Message is a chat notification before it is handed to Slack.
type Message struct {
	Channel    string
	Text       string
	Attachment *Attachment
}

type Attachment struct {
	Color      string
	AuthorName string
	AuthorLink string
	AuthorIcon string
	Title      string
	TitleLink  string
	Text       string
	Fields     []Field
}

type Field struct {
	Title string
	Value string
	Short bool
}

// --- UseCase Inputs/Outputs ---

// EventPing is the X-GitHub-Event GitHub sends when a hook is created.
const EventPing = "ping"

type DeliverInput struct {
	RouteID   string
	Body      []byte
	Signature string // X-Hub-Signature-256
	Event     string // X-GitHub-Event, optional
}

type DeliverOutput struct {
	State    State
	Skipped  bool
	Reason   string // set when Skipped
	Channel  string
	Text     string
	Response string // raw chat API response, logged only
}
