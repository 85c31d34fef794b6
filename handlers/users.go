package handlers

import (
	"errors"
	"net/http"
	"yatube/auth"
	"yatube/forms"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	badCredentials = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."
	usernameTaken  = "Пользователь с таким именем уже существует."
)

// Login returns the user to ?next= (local paths only) after a successful login
func Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		renderLogin(c, forms.LoginForm{Next: c.Query("next"), Errors: forms.Errors{}})
		return
	}
	form := forms.BindLogin(c)
	if !form.Valid() {
		renderLogin(c, form)
		return
	}
	user, err := models.UserLogin(form.Username, form.Password)
	if err != nil {
		form.Errors.Add(forms.NonFieldErrors, badCredentials)
		renderLogin(c, form)
		return
	}
	if err = auth.Login(c, &user); err != nil {
		serverError(c, "Login", err, NopeResponse)
		return
	}
	c.Redirect(http.StatusFound, auth.SafeNext(form.Next))
}

func renderLogin(c *gin.Context, form forms.LoginForm) {
	render(c, http.StatusOK, "users/login.html", gin.H{
		"title": "Войти",
		"form":  form,
	})
}

func Signup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		renderSignup(c, forms.SignupForm{Errors: forms.Errors{}})
		return
	}
	form := forms.BindSignup(c)
	if form.Valid() {
		_, err := models.UserByUsername(form.Username)
		if err == nil {
			form.Errors.Add("username", usernameTaken)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, "Signup", err, DBError1Response)
			return
		}
	}
	if !form.Valid() {
		renderSignup(c, form)
		return
	}
	user, err := models.UserCreate(form.Username, form.Email, form.Password, form.FirstName, form.LastName)
	if err != nil {
		serverError(c, "Signup", err, DBError2Response)
		return
	}
	if err = auth.Login(c, &user); err != nil {
		serverError(c, "Signup", err, NopeResponse)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func renderSignup(c *gin.Context, form forms.SignupForm) {
	render(c, http.StatusOK, "users/signup.html", gin.H{
		"title": "Зарегистрироваться",
		"form":  form,
	})
}

func Logout(c *gin.Context) {
	if err := auth.Logout(c); err != nil {
		serverError(c, "Logout", err, NopeResponse)
		return
	}
	render(c, http.StatusOK, "users/logged_out.html", gin.H{
		"title": "Вы вышли из своей учётной записи",
	})
}
