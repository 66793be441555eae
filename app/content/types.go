package content

// Wire values below must match stored records byte-for-byte.

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
)

type WorkflowStatus string

const (
	WorkflowDraft          WorkflowStatus = "Draft"
	WorkflowReadyForReview WorkflowStatus = "Ready for Review"
	WorkflowApproved       WorkflowStatus = "Approved"
	WorkflowPublished      WorkflowStatus = "Published"
)

// KanbanStages is the pipeline order used by board views.
var KanbanStages = []WorkflowStatus{
	WorkflowDraft,
	WorkflowReadyForReview,
	WorkflowApproved,
	WorkflowPublished,
}

// LegacyStatusMap translates historical free-text statuses to a pipeline stage.
var LegacyStatusMap = map[string]WorkflowStatus{
	"Draft":                   WorkflowDraft,
	"Approval required":       WorkflowReadyForReview,
	"Awaiting brand approval": WorkflowReadyForReview,
	"Awaiting SME approval":   WorkflowReadyForReview,
	"Awaiting visual":         WorkflowReadyForReview,
	"In Review":               WorkflowReadyForReview,
	"Approved":                WorkflowApproved,
	"Scheduled":               WorkflowApproved,
	"Published":               WorkflowPublished,
}

type AssetType string

const (
	AssetNone     AssetType = "No asset"
	AssetVideo    AssetType = "Video"
	AssetDesign   AssetType = "Design"
	AssetCarousel AssetType = "Carousel"
)

var AssetTypes = []AssetType{AssetNone, AssetVideo, AssetDesign, AssetCarousel}

// Status detail labels derived from status and checklist completion.
const (
	DetailBriefing          = "Briefing"
	DetailProduction        = "Production"
	DetailReadyForReview    = "Ready for review"
	DetailScheduled         = "Scheduled"
	DetailInternalsApproved = "Internals approved"
)

// Outcomes of RequiresApproval.
const (
	ApprovalRequired = "Approval required"
	ApprovalDraft    = "Draft"
)

type ChecklistItem struct {
	Key   string
	Label string
}

// ChecklistItems is the fixed production checklist. Order is for display only.
var ChecklistItems = []ChecklistItem{
	{Key: "assetCreated", Label: "Asset created"},
	{Key: "altTextWritten", Label: "Alt text written"},
	{Key: "linksChecked", Label: "Links checked"},
	{Key: "copyProofed", Label: "Copy proofed"},
	{Key: "tagsSet", Label: "Tags set"},
}

type Checklist map[string]bool

type Comment struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Body      string   `json:"body"`
	Mentions  []string `json:"mentions"`
	CreatedAt string   `json:"createdAt"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Analytics maps platform -> metric -> value.
type Analytics map[string]map[string]any

// Entry is the canonical content record.
type Entry struct {
	ID                 string            `json:"id"`
	Date               string            `json:"date"`
	Author             string            `json:"author"`
	Approvers          []string          `json:"approvers"`
	Platforms          []string          `json:"platforms"`
	Caption            string            `json:"caption"`
	PlatformCaptions   map[string]string `json:"platformCaptions"`
	FirstComment       string            `json:"firstComment"`
	Status             Status            `json:"status"`
	WorkflowStatus     WorkflowStatus    `json:"workflowStatus"`
	StatusDetail       string            `json:"statusDetail"`
	AssetType          AssetType         `json:"assetType"`
	Script             string            `json:"script,omitempty"`
	DesignCopy         string            `json:"designCopy,omitempty"`
	CarouselSlides     []string          `json:"carouselSlides,omitempty"`
	PreviewURL         string            `json:"previewUrl"`
	URL                string            `json:"url"`
	Campaign           string            `json:"campaign"`
	ContentPillar      string            `json:"contentPillar"`
	TestingFrameworkID string            `json:"testingFrameworkId,omitempty"`
	InfluencerID       string            `json:"influencerId,omitempty"`
	Links              []string          `json:"links"`
	Attachments        []Attachment      `json:"attachments"`
	Checklist          Checklist         `json:"checklist"`
	Comments           []Comment         `json:"comments"`
	Analytics          Analytics         `json:"analytics"`
	CreatedAt          string            `json:"createdAt"`
	UpdatedAt          string            `json:"updatedAt"`
	DeletedAt          string            `json:"deletedAt,omitempty"`
}

func (e *Entry) IsDeleted() bool {
	return e.DeletedAt != ""
}

type IdeaType string

const (
	IdeaPost     IdeaType = "Post"
	IdeaVideo    IdeaType = "Video"
	IdeaArticle  IdeaType = "Article"
	IdeaCampaign IdeaType = "Campaign"
	IdeaOther    IdeaType = "Other"
)

// IdeaTypes lists accepted idea types; the first member is the fallback.
var IdeaTypes = []IdeaType{IdeaPost, IdeaVideo, IdeaArticle, IdeaCampaign, IdeaOther}

type Idea struct {
	ID          string       `json:"id"`
	Type        IdeaType     `json:"type"`
	Title       string       `json:"title"`
	Notes       string       `json:"notes"`
	Links       []string     `json:"links"`
	Attachments []Attachment `json:"attachments"`
	CreatedBy   string       `json:"createdBy"`
	TargetMonth string       `json:"targetMonth,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

type SubmissionType string

const (
	SubmissionOwnAccount   SubmissionType = "My own account"
	SubmissionOtherAccount SubmissionType = "Someone else's account"
)

var SubmissionTypes = []SubmissionType{SubmissionOwnAccount, SubmissionOtherAccount}

type SubmissionStatus string

const (
	SubmissionDraft       SubmissionStatus = "Draft"
	SubmissionReadyToPost SubmissionStatus = "Ready to post"
	SubmissionPosted      SubmissionStatus = "Posted"
)

var SubmissionStatuses = []SubmissionStatus{SubmissionDraft, SubmissionReadyToPost, SubmissionPosted}

type LinkedInSubmission struct {
	ID             string           `json:"id"`
	SubmissionType SubmissionType   `json:"submissionType"`
	Status         SubmissionStatus `json:"status"`
	Title          string           `json:"title"`
	PostCopy       string           `json:"postCopy"`
	Comments       string           `json:"comments"`
	Owner          string           `json:"owner"`
	Submitter      string           `json:"submitter"`
	TargetDate     string           `json:"targetDate,omitempty"`
	Links          []string         `json:"links"`
	Attachments    []Attachment     `json:"attachments"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}

type FrameworkStatus string

const (
	FrameworkPlanned  FrameworkStatus = "Planned"
	FrameworkInFlight FrameworkStatus = "In flight"
	FrameworkComplete FrameworkStatus = "Complete"
)

var FrameworkStatuses = []FrameworkStatus{FrameworkPlanned, FrameworkInFlight, FrameworkComplete}

type TestingFramework struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Hypothesis string          `json:"hypothesis"`
	Audience   string          `json:"audience"`
	Metric     string          `json:"metric"`
	Duration   string          `json:"duration"`
	Status     FrameworkStatus `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  string          `json:"createdAt"`
}
