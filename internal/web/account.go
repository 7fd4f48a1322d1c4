package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"productadmin/internal/service"
	"productadmin/internal/viewmodels"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Routes(r gin.IRoutes) {
	r.GET("/Account/Register", h.RegisterForm)
	r.POST("/Account/Register", h.RegisterPost)
}

func (h *AccountHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", withUser(c, ViewData{"Form": viewmodels.RegisterVM{}}))
}

func (h *AccountHandler) RegisterPost(c *gin.Context) {
	var form viewmodels.RegisterVM
	errs := viewmodels.FieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		bindErrors(err, errs)
	}
	if errs.Any() {
		h.rerender(c, form, errs)
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Fullname: form.Fullname,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		errs.Add("username", "Username taken")
	case errors.Is(err, service.ErrEmailTaken):
		errs.Add("email", "Email already registered")
	case err != nil:
		fail(c, err)
		return
	}
	if errs.Any() {
		h.rerender(c, form, errs)
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, u.Username)
	_ = sess.Save()
	c.Redirect(http.StatusFound, productListPath)
}

// пароли обратно в форму не отдаём
func (h *AccountHandler) rerender(c *gin.Context, form viewmodels.RegisterVM, errs viewmodels.FieldErrors) {
	form.Password, form.ConfirmPassword = "", ""
	c.HTML(http.StatusOK, "register.tmpl", withUser(c, ViewData{"Form": form, "Errors": errs}))
}
