package flashclass

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up form payload.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TeacherID       string `json:"teacherId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// ProfileUpdate carries partial profile fields.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TeacherID string `json:"teacherId"`
}

type registerResponse struct {
	Token string `json:"token"`
	User  Claims `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}
