package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// CBTService covers computer-based-test assessments.
type CBTService struct {
	client *api.Client
}

// NewCBTService creates a CBTService on the shared client.
func NewCBTService(client *api.Client) *CBTService {
	return &CBTService{client: client}
}

// NewQuizQuestion is a question within a CreateQuizRequest.
type NewQuizQuestion struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correctOption,omitempty"`
	Marks         int      `json:"marks"`
}

// CreateQuizRequest is the quiz creation payload.
type CreateQuizRequest struct {
	Title           string            `json:"title"`
	Subject         string            `json:"subject"`
	ClassID         string            `json:"classId"`
	DurationMinutes int               `json:"durationMinutes"`
	Questions       []NewQuizQuestion `json:"questions"`
}

// CreateQuiz creates a quiz with its questions.
func (s *CBTService) CreateQuiz(ctx context.Context, req CreateQuizRequest) (*api.Result[models.Quiz], error) {
	return api.Do[models.Quiz](ctx, s.client, api.Request{
		Endpoint: "/teachers/assessments/cbt",
		Method:   http.MethodPost,
		Body:     req,
	})
}

// ListQuizzes lists the teacher's quizzes.
func (s *CBTService) ListQuizzes(ctx context.Context) (*api.Result[[]models.Quiz], error) {
	return api.Do[[]models.Quiz](ctx, s.client, api.Request{
		Endpoint: "/teachers/assessments/cbt",
		Method:   http.MethodGet,
	})
}

// QuizQuestions fetches the questions of one quiz.
func (s *CBTService) QuizQuestions(ctx context.Context, quizID string) (*api.Result[[]models.QuizQuestion], error) {
	return api.Do[[]models.QuizQuestion](ctx, s.client, api.Request{
		Endpoint: "/teachers/assessments/cbt/" + url.PathEscape(quizID) + "/questions",
		Method:   http.MethodGet,
	})
}

// AttemptAnswer is a single answer in a quiz submission.
type AttemptAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption int    `json:"selectedOption,omitempty"`
	Text           string `json:"text,omitempty"`
}

// SubmitAttemptRequest is a student's completed quiz submission.
type SubmitAttemptRequest struct {
	Answers []AttemptAnswer `json:"answers"`
}

// SubmitAttempt submits a student's answers for grading.
func (s *CBTService) SubmitAttempt(ctx context.Context, quizID string, req SubmitAttemptRequest) (*api.Result[models.QuizAttemptResult], error) {
	return api.Do[models.QuizAttemptResult](ctx, s.client, api.Request{
		Endpoint: "/students/assessments/cbt/" + url.PathEscape(quizID) + "/submit",
		Method:   http.MethodPost,
		Body:     req,
	})
}
