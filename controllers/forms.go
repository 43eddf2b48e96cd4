package controllers

type registerForm struct {
	Username string `json:"username" schema:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" schema:"email" validate:"required,email"`
	Password string `json:"password" schema:"password" validate:"required,min=6"`
}

type loginForm struct {
	Username string `json:"username" schema:"username" validate:"required"`
	Password string `json:"password" schema:"password" validate:"required"`
}

type profileForm struct {
	Username             string `json:"username" schema:"username" validate:"required,min=3,max=30"`
	Email                string `json:"email" schema:"email" validate:"required,email"`
	CurrentPassword      string `json:"currentPassword" schema:"currentPassword" validate:"required"`
	NewPassword          string `json:"newPassword" schema:"newPassword" validate:"omitempty,min=6"`
	PasswordConfirmation string `json:"passwordConfirmation" schema:"passwordConfirmation"`
}

type forgotForm struct {
	Email string `json:"email" schema:"email" validate:"required,email"`
}

type resetForm struct {
	Password string `json:"password" schema:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm" schema:"confirm" validate:"required"`
}

type postForm struct {
	Title        string   `json:"title" schema:"title" validate:"required,max=120"`
	Price        float64  `json:"price" schema:"price" validate:"gte=0"`
	Description  string   `json:"description" schema:"description" validate:"required"`
	Location     string   `json:"location" schema:"location" validate:"required"`
	DeleteImages []string `json:"deleteImages" schema:"deleteImages[]"`
}

type reviewForm struct {
	Body   string `json:"body" schema:"body" validate:"required"`
	Rating int    `json:"rating" schema:"rating" validate:"required,min=1,max=5"`
}
