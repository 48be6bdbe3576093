/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-pairings/bcc"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/uschess"
)

type TopLevelCommand string

const TdCmd TopLevelCommand = "td"

// Discord drops interactions that are not answered within 3 seconds.
const interactionTimeout = 3 * time.Second

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

type bot struct {
	cfg     *internal.BotConfig
	session *discordgo.Session
	bcc     *bcc.Client
	uschess *uschess.Client

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
	tdSubCmdHdlrs    map[TdSubCommand]CmdHandler
}

func newBot(cfg *internal.BotConfig, bccClient *bcc.Client,
	uscfClient *uschess.Client) *bot {

	b := &bot{
		cfg:     cfg,
		bcc:     bccClient,
		uschess: uscfClient,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		TdCmd: b.tdCmdHandler,
	}
	b.tdSubCmdHdlrs = map[TdSubCommand]CmdHandler{
		TdHelpCmd:     b.tdHelpCmdHandler,
		TdPairingsCmd: b.tdPairingsCmdHandler,
		TdPredictCmd:  b.tdPredictCmdHandler,
		TdUSCFCmd:     b.tdUSCFCmdHandler,
	}

	return b
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.cfg.PublicKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp = ephemeralResponse(fmt.Sprintf("unknown command '%v'", name))
			break
		}
		ctx, cancel := context.WithTimeout(r.Context(), interactionTimeout)
		defer cancel()
		resp = hdlr(ctx, &inter)
	default:
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)

	return hex.EncodeToString(hash[:]), nil
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func eventIDOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "eventid",
		Description: description,
		Required:    true,
	}
}

func tdCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Swiss pairing commands; try /td help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show usage for td",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPairingsCmd),
				Description: "Get posted pairings for an event, or predicted round 1 pairings",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("BCC event id of the tournament"),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPredictCmd),
				Description: "Predict round 1 pairings from an event's registrations",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("BCC event id of the tournament"),
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "black",
						Description: "Give the top seed black on board 1 (default is white)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdUSCFCmd),
				Description: "Predict the next round of a USCF rated event section",
				Options: []*discordgo.ApplicationCommandOption{
					eventIDOption("USCF rated event id"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "section",
						Description: "Section name (required when the event has several)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
		},
	}
}

func (b *bot) registerSlashCommands() {
	tdCmd := tdCommand()

	if b.cfg.CmdID == "" {
		cmd, err := b.session.ApplicationCommandCreate(b.cfg.AppID, "", tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
		return
	}

	hash, err := cmdHash(tdCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to hash cmd: %v", err)
		return
	}
	if hash == b.cfg.CmdHash {
		return
	}
	log.Printf("discordbot.reg: updating cmd reg; please set DISCORD_TD_CMD_HASH to %v",
		hash)

	cmd, err := b.session.ApplicationCommandEdit(b.cfg.AppID, "", b.cfg.CmdID,
		tdCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", tdCmd.Name, err)
		return
	}

	log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	cfg, err := internal.LoadBotConfig(os.Args[1:]...)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	httpClient := internal.NewCachedHttpClient(ctx, cfg.Cache)
	b := newBot(cfg, bcc.NewClient(httpClient), uschess.NewClient(ctx, cfg.Cache))
	b.session, err = discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("discordbot.main: Failed to initialize discord client: %v", err)
	}
	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.ListenAddr)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
