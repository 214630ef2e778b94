package flashclass

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Assignment is the payload for creating a student assignment.
type Assignment struct {
	Concept           string `json:"concept"`
	LengthOfQuestion  string `json:"length_of_question"`
	NumberOfQuestions int    `json:"number_of_questions"`
	StudentID         string `json:"student_id"`
	TeacherID         string `json:"teacher_id"`
	ActivityName      string `json:"activity_name"`
}

// Validate will validate the payload
func (a Assignment) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Concept, validation.Required),
		validation.Field(&a.NumberOfQuestions, validation.Required, validation.Min(1)),
		validation.Field(&a.StudentID, validation.Required),
		validation.Field(&a.TeacherID, validation.Required),
	)
}

// AssignmentsService drives the assignment endpoints through the shared
// authenticated client.
type AssignmentsService struct {
	client *Client
	logger Logger
}

func NewAssignmentsService(client *Client) *AssignmentsService {
	return &AssignmentsService{client: client, logger: defLogger{}}
}

func (s *AssignmentsService) WithLogger(logger Logger) *AssignmentsService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Create submits a new assignment and returns the server's representation.
func (s *AssignmentsService) Create(ctx context.Context, assignment Assignment) (map[string]any, error) {
	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	var resp map[string]any
	if err := s.client.Post(ctx, "/assignments/", assignment, &resp); err != nil {
		s.logger.Info("assignment creation failed: %v", err)
		return nil, err
	}
	return resp, nil
}
