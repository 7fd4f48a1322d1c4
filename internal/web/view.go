package web

import (
	"fmt"
	"html/template"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"productadmin/internal/service"
	"productadmin/internal/textutil"
	"productadmin/internal/viewmodels"
)

type ViewData map[string]any

const (
	sessionUserKey = "user_username"
)

// withUser добавляет в данные шаблона имя пользователя из сессии и flash-сообщения
func withUser(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	sess := sessions.Default(c)
	if v, ok := sess.Get(sessionUserKey).(string); ok {
		data["UserName"] = v
	}
	if flashes := sess.Flashes(); len(flashes) > 0 {
		msgs := make([]string, 0, len(flashes))
		for _, f := range flashes {
			msgs = append(msgs, fmt.Sprint(f))
		}
		data["Flashes"] = msgs
		_ = sess.Save()
	}
	return data
}

func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// funcMap — функции, доступные в шаблонах
func funcMap(imageURL string) template.FuncMap {
	return template.FuncMap{
		"price":     func(d decimal.Decimal) string { return d.StringFixed(2) },
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"stripTags": textutil.StripTags,
		"img":       func(name string) string { return strings.TrimSuffix(imageURL, "/") + "/" + name },
		"fieldErr":  func(errs viewmodels.FieldErrors, field string) string { return errs[field] },
	}
}

// useFormTagNames — чтобы в ValidationErrors были имена полей формы, а не структуры
func useFormTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindErrors раскладывает ошибку биндинга по полям формы
func bindErrors(err error, errs viewmodels.FieldErrors) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", "The form could not be read: "+err.Error())
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			errs.Add(field, fmt.Sprintf("The %s field is required.", field))
		case "email":
			errs.Add(field, "E-Mail is not valid")
		case "eqfield":
			errs.Add(field, "Passwords do not match")
		case "min":
			errs.Add(field, fmt.Sprintf("The %s field must be at least %s.", field, fe.Param()))
		case "max":
			errs.Add(field, fmt.Sprintf("The %s field must be at most %s characters.", field, fe.Param()))
		default:
			errs.Add(field, fmt.Sprintf("The %s field is invalid.", field))
		}
	}
}

// parseID берёт id из пути или из query (?id=); ok=false — ответ 400
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail отвечает 404 для ненайденных записей и 500 для всего остального
func fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
