package content

import (
	"strings"
)

func (n *Normalizer) Idea(raw any) *Idea {
	record, ok := toRecord(raw)
	if !ok {
		return nil
	}

	idea := &Idea{
		ID:          n.idOf(record["id"]),
		Type:        enumOrFirst(record["type"], IdeaTypes),
		Title:       trimmed(record["title"]),
		Notes:       str(record["notes"]),
		Links:       linkList(record["links"]),
		Attachments: attachmentList(record["attachments"], n.newID),
		CreatedBy:   trimmed(record["createdBy"]),
		TargetMonth: targetMonth(record["targetMonth"]),
		CreatedAt:   n.timestampOrNow(record["createdAt"]),
	}
	return idea
}

func (n *Normalizer) LinkedInSubmission(raw any) *LinkedInSubmission {
	record, ok := toRecord(raw)
	if !ok {
		return nil
	}

	submission := &LinkedInSubmission{
		ID:             n.idOf(record["id"]),
		SubmissionType: enumOrFirst(record["submissionType"], SubmissionTypes),
		Status:         enumOrFirst(record["status"], SubmissionStatuses),
		Title:          trimmed(record["title"]),
		PostCopy:       str(record["postCopy"]),
		Comments:       str(record["comments"]),
		Owner:          trimmed(record["owner"]),
		Submitter:      trimmed(record["submitter"]),
		TargetDate:     coerceDate(record["targetDate"]),
		Links:          linkList(record["links"]),
		Attachments:    attachmentList(record["attachments"], n.newID),
		CreatedAt:      n.timestampOrNow(record["createdAt"]),
		UpdatedAt:      coerceTimestamp(record["updatedAt"]),
	}
	if submission.UpdatedAt == "" {
		submission.UpdatedAt = submission.CreatedAt
	}
	return submission
}

// TestingFramework returns nil for non-objects and for frameworks with a
// blank name; a nameless framework is discarded rather than defaulted.
func (n *Normalizer) TestingFramework(raw any) *TestingFramework {
	record, ok := toRecord(raw)
	if !ok {
		return nil
	}

	name := trimmed(record["name"])
	if name == "" {
		return nil
	}

	return &TestingFramework{
		ID:         n.idOf(record["id"]),
		Name:       name,
		Hypothesis: str(record["hypothesis"]),
		Audience:   trimmed(record["audience"]),
		Metric:     trimmed(record["metric"]),
		Duration:   trimmed(record["duration"]),
		Status:     enumOrFirst(record["status"], FrameworkStatuses),
		Notes:      str(record["notes"]),
		CreatedAt:  n.timestampOrNow(record["createdAt"]),
	}
}

func (n *Normalizer) timestampOrNow(v any) string {
	if ts := coerceTimestamp(v); ts != "" {
		return ts
	}
	return formatTimestamp(n.now())
}

// targetMonth accepts YYYY-MM or any date and keeps the month part.
func targetMonth(v any) string {
	s := trimmed(v)
	if s == "" {
		return ""
	}
	if len(s) == len("2006-01") && strings.Count(s, "-") == 1 {
		if date := coerceDate(s + "-01"); date != "" {
			return date[:7]
		}
	}
	if date := coerceDate(s); date != "" {
		return date[:7]
	}
	return ""
}
