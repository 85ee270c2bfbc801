package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
	"gigwork-chat-app/usecase"
)

func (handler *WebSocketHandler) onMakeOffer(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.MakeOfferRequest
	if !handler.decode(client, data, &payload, dto.EventMakeOfferError) {
		return
	}
	outcome, err := handler.Offers.Propose(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventMakeOfferError, err)
		return
	}

	client.Send(dto.NewEvent(dto.EventOfferMadeSuccess, res.OfferState{
		Offer:       outcome.Chat.Offer,
		OfferStatus: outcome.Chat.OfferStatus,
	}))
	handler.notifyOffer(outcome, "offer_made",
		fmt.Sprintf("New offer of %.2f for \"%s\"", payload.OfferAmount, outcome.Job.Title))
}

func (handler *WebSocketHandler) onAcceptOffer(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.OfferDecisionRequest
	if !handler.decode(client, data, &payload, dto.EventOfferError) {
		return
	}
	outcome, err := handler.Offers.Accept(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventOfferError, err)
		return
	}

	handler.Hub.EmitRoom(payload.ChatID, dto.NewEvent(dto.EventOfferAccepted, res.OfferState{
		Offer:       outcome.Chat.Offer,
		OfferStatus: outcome.Chat.OfferStatus,
	}))
	handler.notifyOffer(outcome, "offer_accepted",
		fmt.Sprintf("Offer for \"%s\" was accepted", outcome.Job.Title))
}

func (handler *WebSocketHandler) onRejectOffer(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.OfferDecisionRequest
	if !handler.decode(client, data, &payload, dto.EventOfferError) {
		return
	}
	outcome, err := handler.Offers.Reject(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventOfferError, err)
		return
	}

	handler.Hub.EmitRoom(payload.ChatID, dto.NewEvent(dto.EventOfferRejected, res.OfferState{
		Offer:       outcome.Chat.Offer,
		OfferStatus: outcome.Chat.OfferStatus,
	}))
	handler.notifyOffer(outcome, "offer_rejected",
		fmt.Sprintf("Offer for \"%s\" was rejected", outcome.Job.Title))
}

func (handler *WebSocketHandler) onGetChatOffer(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.JoinChatRequest
	if !handler.decode(client, data, &payload, dto.EventOfferError) {
		return
	}
	state, err := handler.Offers.GetOffer(ctx, identity.UserID, payload.ChatID)
	if err != nil {
		handler.reportError(client, dto.EventOfferError, err)
		return
	}
	client.Send(dto.NewEvent(dto.EventChatOfferData, state))
}

func (handler *WebSocketHandler) notifyOffer(outcome *usecase.OfferOutcome, kind, message string) {
	amount := 0.0
	if outcome.Chat.Offer != nil {
		amount = *outcome.Chat.Offer
	}
	handler.Hub.EmitRoom(outcome.Chat.ID, dto.NewEvent(dto.EventOfferNotification, dto.OfferNotice{
		Type:        kind,
		Message:     message,
		OfferAmount: amount,
		JobTitle:    outcome.Job.Title,
		ChatID:      outcome.Chat.ID,
	}))
}
