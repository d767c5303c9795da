package commands

import (
	"context"
	"fmt"
)

type QuizCmd struct {
	List      QuizListCmd      `cmd:"" help:"List your quizzes"`
	Questions QuizQuestionsCmd `cmd:"" help:"Show a quiz's questions"`
}

type QuizListCmd struct{}

func (q *QuizListCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	result, err := services.CBT.ListQuizzes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quizzes: %w", err)
	}

	if len(result.Data) == 0 {
		fmt.Println("No quizzes")
		return nil
	}
	for _, quiz := range result.Data {
		status := "draft"
		if quiz.Published {
			status = "published"
		}
		fmt.Printf("%s  %-30s %s  %d questions, %d marks\n",
			quiz.ID, quiz.Title, status, quiz.TotalQuestions, quiz.TotalMarks)
	}
	return nil
}

type QuizQuestionsCmd struct {
	QuizID string `arg:"" help:"Quiz ID"`
}

func (q *QuizQuestionsCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	result, err := services.CBT.QuizQuestions(ctx, q.QuizID)
	if err != nil {
		return fmt.Errorf("failed to fetch questions: %w", err)
	}

	for _, question := range result.Data {
		fmt.Printf("%d. %s (%d marks)\n", question.Position, question.Text, question.Marks)
		for i, option := range question.Options {
			marker := " "
			if i == question.CorrectOption {
				marker = "*"
			}
			fmt.Printf("   %s %s\n", marker, option)
		}
	}
	return nil
}
