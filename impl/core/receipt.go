package core

import (
	"context"
	"fmt"
	"log/slog"

	"votebot/bot/convo"
	"votebot/bot/vote"
)

// Receipt is the submission result the forms service reports back.
type Receipt struct {
	Username  string `json:"username" validate:"required"`
	FormClass string `json:"form_class"`
	Status    string `json:"status" validate:"required,oneof=success failure"`
	Reference string `json:"reference"`
	PDFURL    string `json:"pdf_url"`
}

// HandleReceipt applies a form submission result to the user's conversation:
// success closes out the dialogue on the processed step, a failed paper form
// parks it on incomplete, and a rejected online submission offers the paper
// fallback.
func (h *Handler) HandleReceipt(ctx context.Context, receipt Receipt) error {
	user, err := h.repo.GetUserByUsername(ctx, receipt.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", receipt.Username)
	}

	conversation, err := h.repo.GetRecentConversationByUser(ctx, user.UUID)
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("no conversation for user %s", receipt.Username)
	}

	var gotoStep convo.StepID
	switch {
	case receipt.Status == "success":
		user.SetSetting("submit_success", true)
		user.SetSetting("submit_form_type", receipt.FormClass)
		user.Complete = true

		conversation.Complete = true
		if err := h.repo.UpdateConversation(ctx, conversation); err != nil {
			return err
		}
		if h.hub != nil {
			h.hub.BroadcastConversationClosed(conversation.UUID)
		}
		gotoStep = vote.StepProcessed

	case receipt.FormClass == "NVRA":
		user.SetSetting("failed_pdf", true)
		user.SetSetting("failure_reference", receipt.Reference)
		gotoStep = vote.StepIncomplete

	default:
		user.SetSetting("failed_ovr", true)
		gotoStep = vote.StepSubmit
	}

	if err := h.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	h.log.Info("applied receipt",
		slog.String("username", receipt.Username),
		slog.String("status", receipt.Status),
		slog.String("goto", string(gotoStep)),
	)
	return h.engine.Goto(ctx, user.UUID, conversation, gotoStep)
}
