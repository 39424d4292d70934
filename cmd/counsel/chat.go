package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stemsi/jinro-backend/internal/counsel"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/session"
	"github.com/stemsi/jinro-backend/internal/visual"
)

const (
	chatPrompt  = "나> "
	replyPrompt = "나 (네/아니요)> "
)

var chartDirFlag string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive counselling chat",
	Long: `Ask about universities, majors, admission and employment rates, or which
universities your 내신 grade reaches. Answers that have a table or chart
offer one; reply 네 or 아니요. Charts are saved as PNG files.

Type /home to start over, exit to quit.`,
	RunE: runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and exit",
	Example: `  counsel ask "서울대학교 알려줘"
  counsel ask --json "내신 2.5등급으로 갈 수 있는 대학"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	chatCmd.Flags().StringVar(&chartDirFlag, "chart-dir", ".", "Directory where chart PNGs are written")
	rootCmd.AddCommand(chatCmd, askCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.dataset(ctx)
	if err != nil {
		return err
	}
	hist, err := a.history()
	if err != nil {
		return err
	}

	resolver := visual.NewResolver(store, a.cfg.ChartsEnabled)
	charts := &chartWriter{dir: chartDirFlag}
	if a.cfg.ChartsEnabled {
		if charts.renderer, err = visual.NewPNGRenderer(a.cfg.ChartFontPath); err != nil {
			return err
		}
	}
	chat := service.NewChatService(counsel.NewResponder(store, nil), resolver, directHistory{hist}, a.log)

	p, err := newPrompter(os.Stdin, cmd.OutOrStdout(), chatPrompt)
	if err != nil {
		return err
	}
	defer p.Close()

	printWelcome(p, store.Stats())

	sess := session.New(uuid.NewString(), time.Now())
	for {
		line, err := p.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case isExit(line):
			fmt.Fprintln(p, "상담을 종료합니다. 좋은 하루 되세요!")
			return nil
		case line == "/home":
			sess = sess.Home(time.Now())
			p.SetPrompt(chatPrompt)
			printWelcome(p, store.Stats())
			continue
		}

		var turn model.ChatTurn
		sess, turn = chat.Handle(ctx, sess, line)
		for _, msg := range turn.Replies {
			printMessage(p, msg, charts)
		}
		if sess.AwaitingReply() {
			p.SetPrompt(replyPrompt)
		} else {
			p.SetPrompt(chatPrompt)
		}
	}
}

func printWelcome(w io.Writer, st model.DatasetStats) {
	fmt.Fprintln(w, "안녕하세요! 진로 상담 챗봇입니다.")
	fmt.Fprintf(w, "대학 %d곳, 학과 %d개, %d년 진학률 %.1f%% 자료로 답변합니다.\n",
		st.UniversityCount, st.MajorCount, st.LatestYear, st.LatestOverallRate)
	fmt.Fprintln(w, "예: \"서울대학교 알려줘\", \"컴퓨터공학과 취업률\", \"내신 2.3등급으로 갈 수 있는 대학\"")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.dataset(ctx)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	ans := counsel.NewResponder(store, nil).Respond(question)

	out := cmd.OutOrStdout()
	if jsonFlag {
		return printJSON(out, struct {
			Question     string     `json:"question"`
			Category     string     `json:"category,omitempty"`
			Response     string     `json:"response"`
			CanVisualize bool       `json:"can_visualize"`
			Kind         model.Kind `json:"kind,omitempty"`
		}{question, string(ans.Category), ans.Text, ans.CanVisualize, ans.Kind})
	}
	fmt.Fprintln(out, ans.Text)
	return nil
}
