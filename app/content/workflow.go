package content

import (
	"strings"
)

// StatusDetail derives the pipeline label from approval status and checklist
// completion. It is recomputed on every normalization and never trusted from
// stored data.
func StatusDetail(status Status, checklist Checklist) string {
	done, total := ChecklistProgress(checklist)
	complete := total > 0 && done == total

	if status == StatusApproved {
		if complete {
			return DetailInternalsApproved
		}
		return DetailReadyForReview
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}

	switch {
	case done == 0:
		return DetailBriefing
	case ratio < 1.0/3.0:
		return DetailProduction
	case ratio < 1:
		return DetailReadyForReview
	default:
		return DetailScheduled
	}
}

// EntryStatusDetail is StatusDetail for a normalized entry.
func EntryStatusDetail(entry Entry) string {
	return StatusDetail(entry.Status, entry.Checklist)
}

// RequiresApproval gates the initial workflow stage of a newly submitted entry.
func RequiresApproval(approvers []string, assetType AssetType, previewURL string) string {
	for _, approver := range approvers {
		if strings.TrimSpace(approver) != "" {
			return ApprovalRequired
		}
	}
	if assetType != AssetNone && strings.TrimSpace(previewURL) == "" {
		return ApprovalRequired
	}
	return ApprovalDraft
}

// InitialWorkflowStatus maps the RequiresApproval outcome onto a pipeline stage.
func InitialWorkflowStatus(approvers []string, assetType AssetType, previewURL string) WorkflowStatus {
	if RequiresApproval(approvers, assetType, previewURL) == ApprovalRequired {
		return WorkflowReadyForReview
	}
	return WorkflowDraft
}

// ResolveWorkflowStatus maps a canonical or legacy status string onto a
// pipeline stage.
func ResolveWorkflowStatus(v any) (WorkflowStatus, bool) {
	if stage, ok := matchEnum(v, KanbanStages); ok {
		return stage, true
	}

	s := strings.TrimSpace(str(v))
	if s == "" {
		return "", false
	}
	if stage, ok := LegacyStatusMap[s]; ok {
		return stage, true
	}
	folded := fold(s)
	for legacy, stage := range LegacyStatusMap {
		if fold(legacy) == folded {
			return stage, true
		}
	}
	return "", false
}

func coerceStatus(v any) Status {
	if fold(str(v)) == fold(string(StatusApproved)) {
		return StatusApproved
	}
	return StatusPending
}

// workflowStatusOf resolves the stage from the raw workflowStatus, then the
// raw status, then the raw statusDetail; anything else is a Draft.
func workflowStatusOf(record map[string]any) WorkflowStatus {
	for _, key := range []string{"workflowStatus", "status", "statusDetail"} {
		if stage, ok := ResolveWorkflowStatus(record[key]); ok {
			return stage
		}
	}
	return WorkflowDraft
}
