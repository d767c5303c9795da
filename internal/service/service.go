// Package service provides typed wrappers over the API client, one per
// backend domain area. Services share a single client (and through it a
// single session store); construct them once at application start via New.
package service

import "github.com/classpilot/classpilot-go/internal/api"

// Services is the composition root for all domain services.
type Services struct {
	Auth     *AuthService
	User     *UserService
	Teacher  *TeacherService
	Director *DirectorService
	Student  *StudentService
	CBT      *CBTService
	AIChat   *AIChatService
}

// New wires every domain service to one shared client.
func New(client *api.Client) *Services {
	return &Services{
		Auth:     NewAuthService(client),
		User:     NewUserService(client),
		Teacher:  NewTeacherService(client),
		Director: NewDirectorService(client),
		Student:  NewStudentService(client),
		CBT:      NewCBTService(client),
		AIChat:   NewAIChatService(client),
	}
}
