package dto

import (
	"time"

	"tracker/internal/domain/activity"
	"tracker/internal/domain/ticket"
	vo "tracker/internal/domain/ticket/valueobjects"
)

type TicketDTO struct {
	ID              uint       `json:"id"`
	Number          string     `json:"ticket_number"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Category        string     `json:"category"`
	CreatedBy       uint       `json:"created_by"`
	CreatorName     string     `json:"creator_name"`
	AssignedTo      *uint      `json:"assigned_to"`
	AssigneeName    string     `json:"assignee_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
}

type CommentDTO struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"user_id"`
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID           uint      `json:"id"`
	StoredName   string    `json:"filename"`
	OriginalName string    `json:"original_filename"`
	UploaderID   uint      `json:"uploaded_by"`
	UploaderName string    `json:"uploader_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type ActivityDTO struct {
	ID           uint      `json:"id"`
	TicketID     uint      `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	ActorID      uint      `json:"user_id"`
	ActorName    string    `json:"actor_name"`
	Action       string    `json:"action"`
	OldValue     *string   `json:"old_value"`
	NewValue     *string   `json:"new_value"`
	CreatedAt    time.Time `json:"created_at"`
}

// TicketDetailDTO is a ticket with its children. Comments are oldest first,
// activity newest first.
type TicketDetailDTO struct {
	Ticket      *TicketDTO      `json:"ticket"`
	Comments    []CommentDTO    `json:"comments"`
	Attachments []AttachmentDTO `json:"attachments"`
	Activity    []ActivityDTO   `json:"activity"`
}

type StatsDTO struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

type DashboardDTO struct {
	Stats          StatsDTO      `json:"stats"`
	MyAssigned     int64         `json:"my_assigned"`
	RecentTickets  []TicketDTO   `json:"recent_tickets"`
	RecentActivity []ActivityDTO `json:"recent_activity"`
}

// Names maps user IDs to display names.
type Names map[uint]string

func (n Names) Of(id uint) string {
	return n[id]
}

func ToTicketDTO(t *ticket.Ticket, names Names) *TicketDTO {
	if t == nil {
		return nil
	}
	out := &TicketDTO{
		ID:          t.ID(),
		Number:      t.Number(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		Category:    t.Category().String(),
		CreatedBy:   t.CreatorID(),
		CreatorName: names.Of(t.CreatorID()),
		AssignedTo:  t.AssigneeID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		ResolvedAt:  t.ResolvedAt(),
	}
	if id := t.AssigneeID(); id != nil {
		out.AssigneeName = names.Of(*id)
	}
	return out
}

func ToTicketDTOs(tickets []*ticket.Ticket, names Names) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, *ToTicketDTO(t, names))
	}
	return out
}

func ToCommentDTO(c *ticket.Comment, names Names) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		AuthorID:   c.AuthorID(),
		AuthorName: names.Of(c.AuthorID()),
		Content:    c.Content(),
		CreatedAt:  c.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment, names Names) AttachmentDTO {
	return AttachmentDTO{
		ID:           a.ID(),
		StoredName:   a.StoredName(),
		OriginalName: a.OriginalName(),
		UploaderID:   a.UploaderID(),
		UploaderName: names.Of(a.UploaderID()),
		UploadedAt:   a.UploadedAt(),
	}
}

func ToActivityDTO(r *activity.Record) ActivityDTO {
	e := r.Entry
	return ActivityDTO{
		ID:           e.ID(),
		TicketID:     e.TicketID(),
		TicketNumber: r.TicketNumber,
		ActorID:      e.ActorID(),
		ActorName:    r.ActorName,
		Action:       e.Action().String(),
		OldValue:     e.OldValue(),
		NewValue:     e.NewValue(),
		CreatedAt:    e.CreatedAt(),
	}
}

func ToActivityDTOs(records []*activity.Record) []ActivityDTO {
	out := make([]ActivityDTO, 0, len(records))
	for _, r := range records {
		out = append(out, ToActivityDTO(r))
	}
	return out
}

// StatsFromCounts folds per-status counts into StatsDTO.
func StatsFromCounts(counts map[vo.TicketStatus]int64) StatsDTO {
	s := StatsDTO{
		Open:       counts[vo.StatusOpen],
		InProgress: counts[vo.StatusInProgress],
		Resolved:   counts[vo.StatusResolved],
		Closed:     counts[vo.StatusClosed],
	}
	for _, n := range counts {
		s.Total += n
	}
	return s
}
