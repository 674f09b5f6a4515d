package ticket

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/domain/ticket"
	"tracker/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	AssignedTo  *uint  `json:"assigned_to"`
}

func (r *CreateTicketRequest) ToCommand(actor usecases.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:       actor,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		AssigneeID:  r.AssignedTo,
	}
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type ListTicketsRequest struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Assigned string `form:"assigned"`
	Search   string `form:"search"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

func (r *ListTicketsRequest) ToQuery(actor usecases.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:    actor,
		Status:   r.Status,
		Priority: r.Priority,
		Category: r.Category,
		Assigned: r.Assigned,
		Search:   r.Search,
		Limit:    r.Limit,
	}
}

// parseUpdateTicket decodes a PATCH body. A key that is absent leaves the
// field unchanged; "assigned_to" set to null or "" unassigns.
func parseUpdateTicket(body []byte, actor usecases.Actor, ticketID uint) (usecases.UpdateTicketCommand, error) {
	cmd := usecases.UpdateTicketCommand{Actor: actor, TicketID: ticketID}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return cmd, errors.NewValidationError("Invalid request body", err.Error())
	}

	var err error
	if cmd.Title, err = optionalString(fields, "title"); err != nil {
		return cmd, err
	}
	if cmd.Description, err = optionalString(fields, "description"); err != nil {
		return cmd, err
	}
	if cmd.Status, err = optionalString(fields, "status"); err != nil {
		return cmd, err
	}
	if cmd.Priority, err = optionalString(fields, "priority"); err != nil {
		return cmd, err
	}

	raw, ok := fields["assigned_to"]
	if !ok {
		return cmd, nil
	}
	cmd.Assignee, err = parseAssignee(raw)
	return cmd, err
}

func optionalString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.NewValidationError("Invalid request body", key+" must be a string")
	}
	return &s, nil
}

// parseAssignee accepts null, "", a number or a numeric string.
func parseAssignee(raw json.RawMessage) (ticket.AssigneeChange, error) {
	if isNull(raw) {
		return ticket.AssigneeChange{Set: true}, nil
	}

	var id uint
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == 0 {
			return ticket.AssigneeChange{Set: true}, nil
		}
		return ticket.AssigneeChange{Set: true, ID: &id}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ticket.AssigneeChange{}, errors.NewValidationError("Invalid request body", "assigned_to must be a user ID or null")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ticket.AssigneeChange{Set: true}, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return ticket.AssigneeChange{}, errors.NewValidationError("Invalid request body", "assigned_to must be a user ID or null")
	}
	parsed := uint(v)
	return ticket.AssigneeChange{Set: true, ID: &parsed}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
