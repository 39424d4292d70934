package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the 10-question aptitude quiz",
	Long: `Answer each question with A, B, C or D. The result names your personality
type with recommended majors and careers.`,
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// The quiz works without records; they only add major details.
	store, err := a.dataset(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("Dataset unavailable, result will omit major details")
		store = nil
	}

	p, err := newPrompter(os.Stdin, cmd.OutOrStdout(), "선택> ")
	if err != nil {
		return err
	}
	defer p.Close()

	engine := quiz.NewEngine(nil)
	for !engine.Complete() {
		q, _ := engine.Current()
		prog := engine.Progress()
		printQuestion(p, q, prog)

		line, err := p.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p, "적성검사를 중단했습니다.")
			return nil
		}
		if err != nil {
			return err
		}
		if isExit(line) {
			fmt.Fprintln(p, "적성검사를 중단했습니다.")
			return nil
		}

		choice := strings.ToUpper(strings.TrimSpace(line))
		if err := engine.Submit(choice); err != nil {
			fmt.Fprintln(p, "A, B, C, D 중 하나를 입력해주세요.")
		}
	}

	res, err := engine.Result(store)
	if err != nil {
		return err
	}
	if jsonFlag {
		return printJSON(p, res)
	}
	printQuizResult(p, res)
	return nil
}

func printQuestion(w io.Writer, q quiz.Question, prog quiz.Progress) {
	fmt.Fprintf(w, "\n[%d/%d] %s\n", prog.Answered+1, prog.Total, q.Text)
	for _, o := range q.Options {
		fmt.Fprintf(w, "  %s. %s\n", o.Key, o.Text)
	}
}

func printQuizResult(w io.Writer, res model.QuizResult) {
	fmt.Fprintf(w, "\n당신의 유형은 %s 입니다.\n", res.PrimaryType)
	fmt.Fprintln(w, res.Description)
	for _, c := range res.Counts {
		fmt.Fprintf(w, "  %s %s %d\n", c.Type, strings.Repeat("■", c.Count), c.Count)
	}
	fmt.Fprintf(w, "추천 학과: %s\n", strings.Join(res.RecommendedMajors, ", "))
	fmt.Fprintf(w, "추천 직업: %s\n", strings.Join(res.RecommendedCareers, ", "))
	for _, m := range res.MajorDetails {
		fmt.Fprintf(w, "  - %s (%s) 취업률 %.1f%%, 평균연봉 %d만원\n", m.Name, m.Field, m.Employment, m.AvgSalary)
	}
}
