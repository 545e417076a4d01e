package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"twentyone/internal/config"
	"twentyone/internal/ws"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// turnData is the part of a play/hit/stand result the bot looks at.
type turnData struct {
	PlayerScore int    `json:"player_score"`
	Bust        bool   `json:"bust"`
	Outcome     string `json:"outcome"`
	Balance     int64  `json:"balance"`
}

type bot struct {
	conn *websocket.Conn
	cfg  config.BotConfig
	seq  int
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.WSURL).Msg("dial failed")
	}
	defer conn.Close()

	b := &bot{conn: conn, cfg: cfg}
	for i := 0; i < cfg.Rounds; i++ {
		outcome, balance, err := b.playRound()
		if err != nil {
			log.Error().Err(err).Int("round", i+1).Msg("round failed")
			return
		}
		log.Info().Int("round", i+1).Str("outcome", outcome).Int64("balance", balance).Msg("round_end")
	}
}

func (b *bot) send(text string) (ws.CommandResult, error) {
	b.seq++
	msg := ws.CommandMessage{
		Type:      ws.MsgCommand,
		RequestID: "bot_" + strconv.Itoa(b.seq),
		ChatID:    b.cfg.ChatID,
		UserID:    b.cfg.UserID,
		Text:      text,
	}
	if err := b.conn.WriteJSON(msg); err != nil {
		return ws.CommandResult{}, err
	}
	var res ws.CommandResult
	if err := b.conn.ReadJSON(&res); err != nil {
		return ws.CommandResult{}, err
	}
	if res.RequestID != msg.RequestID {
		return res, fmt.Errorf("reply for %q, expected %q", res.RequestID, msg.RequestID)
	}
	if !res.Ok {
		return res, errors.New(res.Error)
	}
	return res, nil
}

func decodeTurn(res ws.CommandResult) (turnData, error) {
	var d turnData
	raw, err := json.Marshal(res.Data)
	if err != nil {
		return d, err
	}
	err = json.Unmarshal(raw, &d)
	return d, err
}

// decide hits below standOn.
func decide(score, standOn int) string {
	if score < standOn {
		return "/hit"
	}
	return "/stand"
}

func (b *bot) playRound() (string, int64, error) {
	res, err := b.send(fmt.Sprintf("/play %d", b.cfg.Bet))
	if err != nil {
		return "", 0, err
	}
	turn, err := decodeTurn(res)
	if err != nil {
		return "", 0, err
	}
	for {
		cmd := decide(turn.PlayerScore, b.cfg.StandOn)
		res, err = b.send(cmd)
		if err != nil {
			return "", 0, err
		}
		log.Debug().Str("command", cmd).Str("text", res.Text).Msg("bot_turn")
		if turn, err = decodeTurn(res); err != nil {
			return "", 0, err
		}
		if cmd == "/stand" || turn.Bust {
			return turn.Outcome, turn.Balance, nil
		}
	}
}
