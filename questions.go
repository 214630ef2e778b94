package flashclass

import (
	"context"
	"strconv"
)

// Question is one drill item assigned to a student.
type Question struct {
	ID       string `json:"id,omitempty"`
	Concept  string `json:"concept,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// Concept describes one selectable drill concept.
type Concept struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	APIValue string `json:"apiValue"`
}

// QuestionFilters is the server's filter catalog, opaque to this client.
type QuestionFilters map[string]any

type assignQuestionsRequest struct {
	Concept           string `json:"concept"`
	LengthOfQuestion  string `json:"length_of_question"`
	NumberOfQuestions int    `json:"number_of_questions"`
	StudentID         string `json:"student_id"`
	TeacherID         string `json:"teacher_id"`
	ActivityName      string `json:"activity_name"`
}

type assignQuestionsResponse struct {
	AssignedQuestions []Question `json:"assigned_questions"`
	Message           string     `json:"message"`
}

type probeQuestionsRequest struct {
	Concept           string `json:"concept"`
	LengthOfQuestion  string `json:"length_of_question"`
	NumberOfQuestions int    `json:"number_of_questions"`
}

// knownConcepts is the fixed concept catalog; the backend has no listing
// endpoint, so availability is probed per concept.
var knownConcepts = []string{
	"Junior +3",
	"Junior +4",
	"Junior +5",
	"Senior +3",
	"Senior +4",
	"Senior +5",
	"Senior -3",
	"Senior -4",
	"Senior -5",
	"Multiplication",
	"Division",
	"Triple Digit Without Formula",
	"Triple Digit With Formula",
	"Double Digit Without Formula",
	"Double Digit With Formula",
}

// QuestionsService drives the drill-question endpoints through the shared
// authenticated client.
type QuestionsService struct {
	client *Client
	logger Logger
}

func NewQuestionsService(client *Client) *QuestionsService {
	return &QuestionsService{client: client, logger: defLogger{}}
}

func (s *QuestionsService) WithLogger(logger Logger) *QuestionsService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// GenerateQuestions assigns a batch of drill questions to a student. An
// empty batch with a bare server message is a success with no questions,
// not an error.
func (s *QuestionsService) GenerateQuestions(ctx context.Context, concept string, length, count int, studentID, teacherID, activityName string) ([]Question, error) {
	payload := assignQuestionsRequest{
		Concept:           concept,
		LengthOfQuestion:  strconv.Itoa(length),
		NumberOfQuestions: count,
		StudentID:         studentID,
		TeacherID:         teacherID,
		ActivityName:      activityName,
	}

	var resp assignQuestionsResponse
	if err := s.client.Post(ctx, "/assign-questions/", payload, &resp); err != nil {
		return nil, err
	}

	if resp.AssignedQuestions == nil {
		return []Question{}, nil
	}
	return resp.AssignedQuestions, nil
}

// QuestionFilters fetches the server's filter catalog.
func (s *QuestionsService) QuestionFilters(ctx context.Context) (QuestionFilters, error) {
	var filters QuestionFilters
	if err := s.client.Get(ctx, "/question-filters", &filters); err != nil {
		return nil, err
	}
	return filters, nil
}

// AvailableConcepts probes the known concept list one request at a time and
// keeps the concepts that answer. Concepts that error are skipped, not
// fatal.
func (s *QuestionsService) AvailableConcepts(ctx context.Context) ([]Concept, error) {
	available := make([]Concept, 0, len(knownConcepts))

	for _, concept := range knownConcepts {
		if err := ctx.Err(); err != nil {
			return available, err
		}

		probe := probeQuestionsRequest{
			Concept:           concept,
			LengthOfQuestion:  "8",
			NumberOfQuestions: 1,
		}

		var resp any
		if err := s.client.Post(ctx, "/questions/", probe, &resp); err != nil {
			s.logger.Debug("concept %q not available: %v", concept, err)
			continue
		}

		available = append(available, Concept{
			ID:       conceptID(concept),
			Label:    concept,
			APIValue: concept,
		})
	}

	return available, nil
}

func conceptID(label string) string {
	id := make([]rune, 0, len(label))
	for _, r := range label {
		switch {
		case r >= 'A' && r <= 'Z':
			id = append(id, r+('a'-'A'))
		case r == ' ':
			if len(id) > 0 && id[len(id)-1] != '_' {
				id = append(id, '_')
			}
		default:
			id = append(id, r)
		}
	}
	return string(id)
}
