package forms

import "github.com/gin-gonic/gin"

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"-" trim:"-" validate:"required"`
	Next     string `form:"next" json:"next"`
	Errors   Errors `form:"-" json:"errors"`
}

type SignupForm struct {
	FirstName string `form:"first_name" json:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" json:"last_name" validate:"max=150"`
	Username  string `form:"username" json:"username" validate:"required,max=150,username"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"-" trim:"-" validate:"required,min=8"`
	Errors    Errors `form:"-" json:"errors"`
}

func BindLogin(c *gin.Context) (form LoginForm) {
	form.Errors = Errors{}
	bind(c, &form, form.Errors)
	return
}

func BindSignup(c *gin.Context) (form SignupForm) {
	form.Errors = Errors{}
	bind(c, &form, form.Errors)
	return
}

func (f *LoginForm) Valid() bool {
	return len(f.Errors) == 0
}

func (f *SignupForm) Valid() bool {
	return len(f.Errors) == 0
}
