package main

import (
	"twentyone/internal/command"
	"twentyone/internal/game"
	"twentyone/internal/session"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func printTitle() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("2", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("1", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		return
	}
	pterm.Print(title)
	pterm.Info.Println("Commands: play <bet>, hit, stand, balance, quit")
}

// renderReply boxes a command reply, titled after the command and colored by
// how the game went.
func renderReply(r command.Reply) string {
	box := pterm.DefaultBox.WithHorizontalPadding(2)
	if r.Err != nil {
		return box.WithTitle(pterm.LightRed("|" + r.Error + "|")).WithTitleTopCenter().Sprint(r.Text)
	}
	title := pterm.LightYellow("|" + r.Command + "|")
	switch data := r.Data.(type) {
	case *session.HitResult:
		if data.Bust {
			title = pterm.LightRed("|BUST|")
		}
	case *session.StandResult:
		switch data.Outcome {
		case game.OutcomeWin:
			title = pterm.LightGreen("|WIN|")
		case game.OutcomePush:
			title = pterm.LightCyan("|PUSH|")
		default:
			title = pterm.LightRed("|LOSS|")
		}
	}
	return box.WithTitle(title).WithTitleTopCenter().Sprint(r.Text)
}
