/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-pairings/bcc"
	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"github.com/mikeb26/boylstonchessclub-pairings/uschess"
)

type TdSubCommand string

const (
	TdHelpCmd     TdSubCommand = "help"
	TdPairingsCmd TdSubCommand = "pairings"
	TdPredictCmd  TdSubCommand = "predict"
	TdUSCFCmd     TdSubCommand = "uscf"
)

func ephemeralResponse(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// codeBlockResponse wraps output in a code block for monospace formatting
// in Discord.
func codeBlockResponse(output string, broadcast bool) *discordgo.InteractionResponse {
	resp := ephemeralResponse(fmt.Sprintf("```\n%s```", truncateContent(output)))
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// subCmdOptions returns the options given to the invoked sub-command by
// name.
func subCmdOptions(
	inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {

	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		opts[opt.Name] = opt
	}

	return opts
}

func (b *bot) tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.tdHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := b.tdSubCmdHdlrs[TdSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, inter)
}

//go:embed help.md
var helpText string

func (b *bot) tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return ephemeralResponse(truncateContent(helpText))
}

// tdPairingsCmdHandler handles the /td pairings command to display posted
// pairings, or predicted ones before round 1 is posted
func (b *bot) tdPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := subCmdOptions(inter)
	eventOpt, ok := opts["eventid"]
	if !ok {
		log.Printf("discordbot.pairings: missing event ID")
		return ephemeralResponse("Please provide an event ID.")
	}
	eventID := eventOpt.IntValue()

	tourney, err := b.bcc.GetTournament(ctx, eventID)
	if err != nil {
		msg := fmt.Sprintf("Error fetching pairings for event %d: %v", eventID, err)
		log.Printf("discordbot.pairings: %v", msg)
		return ephemeralResponse(msg)
	}

	return codeBlockResponse(bcc.BuildPairingsOutput(tourney),
		opts["broadcast"] != nil && opts["broadcast"].BoolValue())
}

func (b *bot) tdPredictCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := subCmdOptions(inter)
	eventOpt, ok := opts["eventid"]
	if !ok {
		log.Printf("discordbot.predict: missing event ID")
		return ephemeralResponse("Please provide an event ID.")
	}
	eventID := eventOpt.IntValue()

	var pairOpts []dutch.Option
	if opts["black"] != nil && opts["black"].BoolValue() {
		pairOpts = append(pairOpts, dutch.WithInitialColour(dutch.Black))
	}

	detail, err := b.bcc.GetEventDetail(ctx, eventID)
	if err != nil {
		msg := fmt.Sprintf("Error fetching event %d: %v", eventID, err)
		log.Printf("discordbot.predict: %v", msg)
		return ephemeralResponse(msg)
	}
	tourney, err := bcc.PredictTournament(ctx, detail, pairOpts...)
	if err != nil {
		msg := fmt.Sprintf("Error predicting event %d: %v", eventID, err)
		log.Printf("discordbot.predict: %v", msg)
		return ephemeralResponse(msg)
	}

	return codeBlockResponse(bcc.BuildPairingsOutput(tourney),
		opts["broadcast"] != nil && opts["broadcast"].BoolValue())
}

// tdUSCFCmdHandler predicts the next round of one section of a USCF rated
// event from its crosstable
func (b *bot) tdUSCFCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := subCmdOptions(inter)
	eventOpt, ok := opts["eventid"]
	if !ok {
		log.Printf("discordbot.uscf: missing event ID")
		return ephemeralResponse("Please provide a USCF event ID.")
	}
	eventID := eventOpt.IntValue()

	tourney, err := b.uschess.FetchCrossTables(ctx, uschess.EventID(eventID))
	if err != nil {
		msg := fmt.Sprintf("Error fetching crosstables for event %d: %v",
			eventID, err)
		log.Printf("discordbot.uscf: %v", msg)
		return ephemeralResponse(msg)
	}

	var xt *uschess.CrossTable
	switch {
	case opts["section"] != nil:
		xt, err = tourney.Section(opts["section"].StringValue())
		if err != nil {
			return ephemeralResponse(err.Error())
		}
	case len(tourney.CrossTables) == 1:
		xt = tourney.CrossTables[0]
	default:
		var names []string
		for _, t := range tourney.CrossTables {
			names = append(names, t.SectionName)
		}
		return ephemeralResponse(fmt.Sprintf("Please provide a section: %v",
			strings.Join(names, ", ")))
	}

	prediction, err := uschess.PredictNextRound(ctx, xt)
	if err != nil {
		msg := fmt.Sprintf("Error predicting event %d: %v", eventID, err)
		log.Printf("discordbot.uscf: %v", msg)
		return ephemeralResponse(msg)
	}

	return codeBlockResponse(uschess.BuildPredictionOutput(prediction),
		opts["broadcast"] != nil && opts["broadcast"].BoolValue())
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
